package order

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Order is a purchase record from any sales channel. Exactly one of
// CustomerID / OfflineCustomerID is set.
type Order struct {
	OrderID           string
	CustomerID        *int64
	OfflineCustomerID *int64
	AddressID         int64
	TotalItems        int
	Subtotal          decimal.Decimal
	GST               decimal.Decimal
	DeliveryCharge    decimal.Decimal
	TotalAmount       decimal.Decimal
	Channel           string
	PaymentStatus     string
	DeliveryStatus    string
	OrderStatus       string
	AWBNumber         *string
	PaymentType       string
	OrderIndex        int64
	UploadWBN         *string
	InvoiceNumber     *string
	Remarks           *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Items             []Item
}

// Item is one order line. ProductID is nil only when product mapping
// failed entirely.
type Item struct {
	ItemID      int64
	OrderID     string
	ProductID   *int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

// ItemSerials groups the serial numbers assigned to one order line.
type ItemSerials struct {
	ItemID      int64
	ProductID   *int64
	ProductName string
	Quantity    int
	Serials     []string
}

// ListFilter narrows the order listing. Zero values mean "no filter".
type ListFilter struct {
	PaymentStatus  string
	DeliveryStatus string
	Channel        string
	Search         string
	DateFrom       *time.Time
	DateTo         *time.Time
}

// NewOfflineOrderID derives the point-of-sale order id from the creation
// time, formatted HHMMSSddmm.
func NewOfflineOrderID(now time.Time) string {
	return now.Format("1504050201")
}

// OfflineOrderIndex derives the numeric order index (HHMMSSdd) used by
// the point-of-sale path. Wix sync uses MAX+1 instead.
func OfflineOrderIndex(now time.Time) int64 {
	v, _ := strconv.ParseInt(now.Format("15040502"), 10, 64)
	return v
}

// HasCustomer reports whether the order references a customer of either kind.
func (o *Order) HasCustomer() bool {
	return o.CustomerID != nil || o.OfflineCustomerID != nil
}

// SerialStatus summarizes serial assignment across items given per-item
// assigned counts: "none", "partial" or "complete".
func SerialStatus(items []Item, assigned map[int64]int) string {
	totalRequired := 0
	totalAssigned := 0
	for _, it := range items {
		totalRequired += it.Quantity
		totalAssigned += assigned[it.ItemID]
	}
	switch {
	case totalAssigned == 0:
		return SerialNone
	case totalAssigned < totalRequired:
		return SerialPartial
	default:
		return SerialComplete
	}
}
