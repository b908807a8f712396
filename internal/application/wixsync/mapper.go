package wixsync

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var digitsOnly = regexp.MustCompile(`[^0-9]`)

// NormalizeMobile strips everything but digits. Numbers shorter than 7
// digits are junk (extension fragments, "NA" placeholders) and are
// treated as missing.
func NormalizeMobile(raw string) string {
	digits := digitsOnly.ReplaceAllString(raw, "")
	if len(digits) < 7 {
		return ""
	}
	return digits
}

// SyntheticMobile formats the zero-padded placeholder assigned to
// contacts that arrived without a usable phone number.
func SyntheticMobile(seq int64) string {
	return fmt.Sprintf("%010d", seq)
}

// TimestampMobile is the last-resort placeholder when the synthetic
// sequence keeps colliding.
func TimestampMobile(now time.Time) string {
	return fmt.Sprintf("%010d", now.UnixNano()%1_000_000_000)
}

var stateAbbreviations = map[string]string{
	"up": "Uttar Pradesh",
	"mh": "Maharashtra",
	"mp": "Madhya Pradesh",
	"tn": "Tamil Nadu",
	"dl": "Delhi",
	"gj": "Gujarat",
	"rj": "Rajasthan",
	"wb": "West Bengal",
	"jk": "Jammu and Kashmir",
	"ka": "Karnataka",
	"br": "Bihar",
	"cg": "Chhattisgarh",
}

// NormalizeRegion cleans the free-text region Wix sends before the
// state lookup: country suffixes after a comma go, a trailing "state"
// word goes, and two-letter abbreviations expand to full names.
func NormalizeRegion(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, ","); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	s = strings.TrimSpace(strings.TrimSuffix(strings.ToLower(s), " state"))
	if full, ok := stateAbbreviations[s]; ok {
		return full
	}
	return s
}

var invalidSKUs = map[string]struct{}{
	"unknown": {},
	"misc":    {},
	"test":    {},
}

// ValidSKU rejects placeholder SKUs that must never drive product
// mapping.
func ValidSKU(sku string) bool {
	s := strings.ToLower(strings.TrimSpace(sku))
	if len(s) < 2 {
		return false
	}
	_, bad := invalidSKUs[s]
	return !bad
}

// DeliveryShare splits the delivery charge evenly across the total item
// quantity, rounded to paise. The remainder disappears into the
// subtotal recompute.
func DeliveryShare(deliveryCharge decimal.Decimal, totalQuantity int) decimal.Decimal {
	if totalQuantity <= 0 || !deliveryCharge.IsPositive() {
		return decimal.Zero
	}
	return deliveryCharge.Div(decimal.NewFromInt(int64(totalQuantity))).Round(2)
}

// ParseOrderTime accepts the timestamp layouts Wix emits, trying each
// candidate string in order so the updated or paid date can stand in
// for a missing creation date.
func ParseOrderTime(fallback time.Time, raws ...string) time.Time {
	for _, raw := range raws {
		if raw == "" {
			continue
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t
			}
		}
	}
	return fallback
}
