package models

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// LenientDecimal is a decimal that tolerates the upstream feed's loose
// serialization: numbers may arrive quoted, empty, null or garbled.
// Anything that does not parse decodes as zero instead of failing the
// whole payload.
type LenientDecimal struct {
	decimal.Decimal
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *LenientDecimal) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(bytes.Trim(bytes.TrimSpace(data), `"`)))
	if s == "" || s == "null" {
		d.Decimal = decimal.Zero
		return nil
	}
	parsed, err := decimal.NewFromString(s)
	if err != nil {
		d.Decimal = decimal.Zero
		return nil
	}
	d.Decimal = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d LenientDecimal) MarshalJSON() ([]byte, error) {
	return d.Decimal.MarshalJSON()
}
