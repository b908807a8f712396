package customer

import "time"

// Customer types: online customers come from the storefront, offline
// customers are created for point-of-sale transactions and Wix orders
// that cannot be matched to an online customer.
const (
	TypeOnline  = "online"
	TypeOffline = "offline"
)

type Customer struct {
	CustomerID int64
	Type       string
	Name       string
	Mobile     string
	Email      string
	GSTNumber  string
	CreatedAt  time.Time
}

// Address belongs to exactly one customer of either kind.
type Address struct {
	AddressID         int64
	CustomerID        *int64
	OfflineCustomerID *int64
	Name              string
	Mobile            string
	Pincode           string
	Locality          string
	AddressLine       string
	City              string
	StateID           int64
	Landmark          string
	AlternatePhone    string
	AddressType       string
	IsAvailable       bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Label renders the dropdown display string for an address.
func (a Address) Label() string {
	return a.AddressLine + ", " + a.Locality + ", " + a.City + " - " + a.Pincode
}

// ValidType reports whether t is a known customer type.
func ValidType(t string) bool {
	return t == TypeOnline || t == TypeOffline
}
