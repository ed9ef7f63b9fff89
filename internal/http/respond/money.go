package respond

import "github.com/shopspring/decimal"

// Money renders a decimal as a JSON number with two decimals, e.g. 240.00.
type Money decimal.Decimal

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).StringFixed(2)), nil
}
