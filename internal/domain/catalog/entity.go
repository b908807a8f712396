package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ProductID   int64
	Name        string
	Description string
	CategoryID  int64
	ProductType string
	SKUID       string
	ZohoSKU     string
	HSNID       *int64
	CreatedAt   time.Time
}

// ProductDetails is the dropdown view of a product with its GST rate
// resolved through the HSN table (18% when unmapped).
type ProductDetails struct {
	ProductID  int64
	Name       string
	SKUID      string
	GSTPercent decimal.Decimal
}

type State struct {
	StateID      int64
	Name         string
	Abbreviation string
}
