package models

import (
	"encoding/json"
	"strings"
)

// User types present on the platform.
const (
	UserTypeVendor   = "vendor"
	UserTypeCustomer = "customer"
)

// User is a registered platform user or vendor. The address book arrives as a
// serialized JSON string in the raw record and is parsed on demand.
type User struct {
	ID         int64  `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	UserType   string `json:"user_type"`
	RawAddress string `json:"address,omitempty"`
	IsDeleted  int    `json:"is_deleted"`
	CreatedAt  string `json:"created_at"`
}

// Address is an embedded, read-only address record.
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
	Type       string `json:"type,omitempty"`
	IsDefault  bool   `json:"is_default"`
}

// Addresses parses the serialized address field. A single-object payload is
// accepted as a one-element list; anything unparseable yields nil.
func (u *User) Addresses() []Address {
	raw := strings.TrimSpace(u.RawAddress)
	if raw == "" {
		return nil
	}

	var addrs []Address
	if err := json.Unmarshal([]byte(raw), &addrs); err == nil {
		return addrs
	}

	var single Address
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		return []Address{single}
	}
	return nil
}

// DefaultAddress returns the address flagged default, or the first one when
// none is flagged. The second return is false for an empty address book.
func DefaultAddress(addrs []Address) (Address, bool) {
	if len(addrs) == 0 {
		return Address{}, false
	}
	for _, a := range addrs {
		if a.IsDefault {
			return a, true
		}
	}
	return addrs[0], true
}

// AddressText flattens an address book into one searchable string.
func AddressText(addrs []Address) string {
	parts := make([]string, 0, len(addrs))
	for _, a := range addrs {
		fields := []string{a.Line1, a.Line2, a.City, a.State, a.Country, a.PostalCode}
		parts = append(parts, strings.Join(fields, " "))
	}
	return strings.Join(parts, " ")
}

// UserDetail is a user enriched with the parsed address book for display.
type UserDetail struct {
	User
	AddressList []Address `json:"addresses"`
}
