package addresssync

// StoreAddress is one of a store customer's addresses
type StoreAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	State     string `json:"state"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// StoreCustomer is the store's view of a customer
type StoreCustomer struct {
	ID       int64        `json:"id"`
	Email    string       `json:"email"`
	Billing  StoreAddress `json:"billing"`
	Shipping StoreAddress `json:"shipping"`
}

// Address returns the customer's address for a classifier
func (c *StoreCustomer) Address(t AddressType) StoreAddress {
	if t == AddressTypeShipping {
		return c.Shipping
	}
	return c.Billing
}

// fieldAccessors reads a synced field from a StoreAddress
var fieldAccessors = map[AddressField]func(StoreAddress) string{
	FieldAddress1: func(a StoreAddress) string { return a.Address1 },
	FieldAddress2: func(a StoreAddress) string { return a.Address2 },
	FieldCity:     func(a StoreAddress) string { return a.City },
	FieldPostcode: func(a StoreAddress) string { return a.Postcode },
	FieldCountry:  func(a StoreAddress) string { return a.Country },
	FieldState:    func(a StoreAddress) string { return a.State },
}

// Get returns the value of a synced field. ok is false for unknown fields.
func (a StoreAddress) Get(field AddressField) (value string, ok bool) {
	get, ok := fieldAccessors[field]
	if !ok {
		return "", false
	}
	return get(a), true
}
