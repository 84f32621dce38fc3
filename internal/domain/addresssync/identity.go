package addresssync

// LinkedIdentity associates a store user with a CRM contact
type LinkedIdentity struct {
	UserID    int64
	ContactID int64
}

// IsValid returns true when both sides of the link are set
func (l *LinkedIdentity) IsValid() bool {
	return l != nil && l.UserID > 0 && l.ContactID > 0
}
