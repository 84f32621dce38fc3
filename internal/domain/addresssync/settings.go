package addresssync

import "strings"

// SettingSyncContactAddress is the option that switches address sync on
const SettingSyncContactAddress = "woocommerce_civicrm_sync_contact_address"

// ParseYesNo interprets a "yes"/"no" style option value
func ParseYesNo(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "y", "true", "1", "on":
		return true
	default:
		return false
	}
}
