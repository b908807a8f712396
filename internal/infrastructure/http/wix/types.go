package wix

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Wix order payloads are not stable across store versions: amounts show
// up as numbers, strings or {amount: ...} objects, names as strings or
// {original, translated} objects, and contact details move between
// shipping, billing and buyer blocks. The types here absorb every
// variant seen in live payloads so the sync layer can stay simple.

// FlexString decodes a JSON string or number into a string.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	*s = FlexString(string(b))
	return nil
}

// FlexInt decodes a JSON number or numeric string into an int.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*n = 0
		return nil
	}
	raw := strings.Trim(string(b), `"`)
	if raw == "" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = FlexInt(int(v))
	return nil
}

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// Amount decodes a monetary value that may arrive as a number, a
// currency string ("₹1,299.00") or an {amount: ...} object.
type Amount struct {
	value decimal.Decimal
	set   bool
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '{' {
		var obj struct {
			Amount *Amount `json:"amount"`
			Value  *Amount `json:"value"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return nil
		}
		if obj.Amount != nil && obj.Amount.set {
			*a = *obj.Amount
		} else if obj.Value != nil && obj.Value.set {
			*a = *obj.Value
		}
		return nil
	}
	raw := strings.Trim(string(b), `"`)
	raw = nonNumeric.ReplaceAllString(raw, "")
	if raw == "" || raw == "-" || raw == "." {
		return nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	a.value = v
	a.set = true
	return nil
}

func (a Amount) Decimal() decimal.Decimal { return a.value }

func (a Amount) Present() bool { return a.set }

func (a Amount) Positive() bool { return a.set && a.value.IsPositive() }

// NameField decodes a plain string or an {original, translated} object.
type NameField string

func (n *NameField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*n = ""
		return nil
	}
	if b[0] == '{' {
		var obj struct {
			Original   string `json:"original"`
			Translated string `json:"translated"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return nil
		}
		if obj.Original != "" {
			*n = NameField(obj.Original)
		} else {
			*n = NameField(obj.Translated)
		}
		return nil
	}
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	*n = NameField(v)
	return nil
}

type Order struct {
	ID            string     `json:"id"`
	Number        FlexString `json:"number"`
	CreatedDate   string     `json:"createdDate"`
	DateCreated   string     `json:"dateCreated"`
	PurchasedDate string     `json:"purchasedDate"`
	UpdatedDate   string     `json:"updatedDate"`
	PaymentStatus string     `json:"paymentStatus"`

	BuyerInfo    *ContactBlock `json:"buyerInfo"`
	BillingInfo  *BillingInfo  `json:"billingInfo"`
	ShippingInfo *ShippingInfo `json:"shippingInfo"`

	LineItems []LineItem `json:"lineItems"`
	Items     []LineItem `json:"items"`

	Totals *Totals `json:"totals"`
}

type Totals struct {
	Subtotal Amount `json:"subtotal"`
	Shipping Amount `json:"shipping"`
	Tax      Amount `json:"tax"`
	Total    Amount `json:"total"`
	Paid     Amount `json:"paid"`
}

type BillingInfo struct {
	Address        *AddressBlock `json:"address"`
	ContactDetails *ContactBlock `json:"contactDetails"`
	PaidDate       string        `json:"paidDate"`
}

type ShippingInfo struct {
	ShipmentDetails *ShipmentDetails `json:"shipmentDetails"`
	Logistics       *Logistics       `json:"logistics"`
}

type ShipmentDetails struct {
	Address        *AddressBlock `json:"address"`
	ContactDetails *ContactBlock `json:"contactDetails"`
}

type Logistics struct {
	ShippingDestination *ShipmentDetails `json:"shippingDestination"`
}

type AddressBlock struct {
	FullName            *FullName  `json:"fullName"`
	FirstName           string     `json:"firstName"`
	LastName            string     `json:"lastName"`
	Phone               string     `json:"phone"`
	Email               string     `json:"email"`
	AddressLine         string     `json:"addressLine"`
	AddressLine1        string     `json:"addressLine1"`
	AddressLine2        string     `json:"addressLine2"`
	City                string     `json:"city"`
	PostalCode          FlexString `json:"postalCode"`
	ZipCode             FlexString `json:"zipCode"`
	Subdivision         string     `json:"subdivision"`
	SubdivisionFullname string     `json:"subdivisionFullname"`
	Country             string     `json:"country"`
}

type FullName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type ContactBlock struct {
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Phone     FlexString `json:"phone"`
	Email     string     `json:"email"`
}

type LineItem struct {
	SKU                string     `json:"sku"`
	VariantSKU         string     `json:"variantSku"`
	SkuID              FlexString `json:"skuId"`
	ProductID          FlexString `json:"productId"`
	PhysicalProperties *struct {
		SKU string `json:"sku"`
	} `json:"physicalProperties"`
	CatalogReference *struct {
		CatalogItemID string `json:"catalogItemId"`
	} `json:"catalogReference"`

	ProductName NameField `json:"productName"`
	Name        NameField `json:"name"`
	Title       NameField `json:"title"`

	Quantity FlexInt `json:"quantity"`
	Qty      FlexInt `json:"qty"`

	Price              Amount `json:"price"`
	LineItemPrice      Amount `json:"lineItemPrice"`
	TotalPriceAfterTax Amount `json:"totalPriceAfterTax"`
	TotalPrice         Amount `json:"totalPrice"`
	PriceData          *struct {
		Price Amount `json:"price"`
	} `json:"priceData"`
	UnitPriceField Amount `json:"unitPrice"`
	SellingPrice   Amount `json:"sellingPrice"`
	Total          Amount `json:"total"`
}

// AllLineItems merges the two field names line items arrive under.
func (o *Order) AllLineItems() []LineItem {
	if len(o.LineItems) > 0 {
		return o.LineItems
	}
	return o.Items
}

// CreatedAtRaw returns the first populated creation timestamp string.
func (o *Order) CreatedAtRaw() string {
	for _, v := range []string{o.CreatedDate, o.DateCreated, o.PurchasedDate} {
		if v != "" {
			return v
		}
	}
	return ""
}

// PaidAtRaw returns the gateway paid date, empty when absent.
func (o *Order) PaidAtRaw() string {
	if o.BillingInfo == nil {
		return ""
	}
	return o.BillingInfo.PaidDate
}

// Paid reports whether any of the independent payment signals says the
// order was paid: a positive paid total, an explicit PAID status, or a
// gateway paid date.
func (o *Order) Paid() bool {
	if o.Totals != nil && o.Totals.Paid.Positive() {
		return true
	}
	switch strings.ToUpper(o.PaymentStatus) {
	case "PAID", "FULLY_PAID":
		return true
	}
	if o.BillingInfo != nil && o.BillingInfo.PaidDate != "" {
		return true
	}
	return false
}

// UnitPrice returns the first populated amount across the price field
// variants a line item may carry.
func (li *LineItem) UnitPrice() decimal.Decimal {
	candidates := []Amount{
		li.Price,
		li.LineItemPrice,
		li.TotalPriceAfterTax,
		li.TotalPrice,
	}
	if li.PriceData != nil {
		candidates = append(candidates, li.PriceData.Price)
	}
	candidates = append(candidates, li.UnitPriceField, li.SellingPrice, li.Total)

	for _, c := range candidates {
		if c.Positive() {
			return c.Decimal()
		}
	}
	return decimal.Zero
}

// EffectiveQuantity normalizes the quantity variants, defaulting to 1.
func (li *LineItem) EffectiveQuantity() int {
	if li.Quantity > 0 {
		return int(li.Quantity)
	}
	if li.Qty > 0 {
		return int(li.Qty)
	}
	return 1
}

// EffectiveSKU returns the first populated SKU variant.
func (li *LineItem) EffectiveSKU() string {
	for _, v := range []string{li.SKU, li.VariantSKU, string(li.SkuID)} {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	if li.PhysicalProperties != nil {
		return strings.TrimSpace(li.PhysicalProperties.SKU)
	}
	return ""
}

// EffectiveProductID returns the Wix catalog id for the line item.
func (li *LineItem) EffectiveProductID() string {
	if li.ProductID != "" {
		return string(li.ProductID)
	}
	if li.CatalogReference != nil {
		return li.CatalogReference.CatalogItemID
	}
	return ""
}

// EffectiveName returns the first populated display name variant.
func (li *LineItem) EffectiveName() string {
	for _, v := range []NameField{li.ProductName, li.Name, li.Title} {
		if s := strings.TrimSpace(string(v)); s != "" {
			return s
		}
	}
	return ""
}

// Contact is the flattened buyer identity resolved from an order.
type Contact struct {
	Name        string
	Mobile      string
	Email       string
	AddressLine string
	City        string
	Pincode     string
	State       string
	HasAddress  bool
}

// ResolveContact coalesces contact details with shipping taking
// precedence over billing, and buyer info filling remaining gaps.
func (o *Order) ResolveContact() Contact {
	var c Contact

	blocks := make([]*ShipmentDetails, 0, 2)
	if o.ShippingInfo != nil {
		if o.ShippingInfo.ShipmentDetails != nil {
			blocks = append(blocks, o.ShippingInfo.ShipmentDetails)
		}
		if o.ShippingInfo.Logistics != nil && o.ShippingInfo.Logistics.ShippingDestination != nil {
			blocks = append(blocks, o.ShippingInfo.Logistics.ShippingDestination)
		}
	}
	if o.BillingInfo != nil {
		blocks = append(blocks, &ShipmentDetails{
			Address:        o.BillingInfo.Address,
			ContactDetails: o.BillingInfo.ContactDetails,
		})
	}

	for _, b := range blocks {
		c.mergeAddress(b.Address)
		c.mergeContact(b.ContactDetails)
	}
	if o.BuyerInfo != nil {
		c.mergeContact(o.BuyerInfo)
	}

	c.Name = strings.TrimSpace(c.Name)
	return c
}

func (c *Contact) mergeAddress(a *AddressBlock) {
	if a == nil {
		return
	}
	if c.Name == "" {
		if a.FullName != nil {
			c.Name = strings.TrimSpace(a.FullName.FirstName + " " + a.FullName.LastName)
		}
		if c.Name == "" {
			c.Name = strings.TrimSpace(a.FirstName + " " + a.LastName)
		}
	}
	if c.Mobile == "" {
		c.Mobile = strings.TrimSpace(a.Phone)
	}
	if c.Email == "" {
		c.Email = strings.TrimSpace(a.Email)
	}
	if c.AddressLine == "" {
		line := a.AddressLine
		if line == "" {
			line = a.AddressLine1
		}
		if line != "" && a.AddressLine2 != "" {
			line = line + ", " + a.AddressLine2
		}
		c.AddressLine = strings.TrimSpace(line)
	}
	if c.City == "" {
		c.City = strings.TrimSpace(a.City)
	}
	if c.Pincode == "" {
		pin := string(a.PostalCode)
		if pin == "" {
			pin = string(a.ZipCode)
		}
		c.Pincode = strings.TrimSpace(pin)
	}
	if c.State == "" {
		st := a.SubdivisionFullname
		if st == "" {
			st = a.Subdivision
		}
		c.State = strings.TrimSpace(st)
	}
	if c.AddressLine != "" || c.City != "" || c.Pincode != "" {
		c.HasAddress = true
	}
}

func (c *Contact) mergeContact(b *ContactBlock) {
	if b == nil {
		return
	}
	if c.Name == "" {
		c.Name = strings.TrimSpace(b.FirstName + " " + b.LastName)
	}
	if c.Mobile == "" {
		c.Mobile = strings.TrimSpace(string(b.Phone))
	}
	if c.Email == "" {
		c.Email = strings.TrimSpace(b.Email)
	}
}
