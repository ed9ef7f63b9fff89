package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LineInput is one billed entry as submitted, before totals are derived.
type LineInput struct {
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
}

type Totals struct {
	Items    []Item
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
	Paid     decimal.Decimal
	Balance  decimal.Decimal
}

// Calculate derives line and invoice totals from prices and discounts rounded
// to cents:
//
//	line.total = quantity*unit_price - discount
//	subtotal   = sum(quantity*unit_price)
//	discount   = sum(line.discount)
//	total      = subtotal - discount
//	balance    = max(0, total - paid)
func Calculate(lines []LineInput, paid decimal.Decimal) Totals {
	t := Totals{Items: make([]Item, 0, len(lines))}

	for _, l := range lines {
		var (
			price    = l.UnitPrice.Round(2)
			discount = l.Discount.Round(2)
			gross    = l.Quantity.Mul(price).Round(2)
		)

		t.Items = append(t.Items, Item{
			Name:      strings.TrimSpace(l.Name),
			Quantity:  l.Quantity,
			UnitPrice: price,
			Discount:  discount,
			Total:     gross.Sub(discount),
		})

		t.Subtotal = t.Subtotal.Add(gross)
		t.Discount = t.Discount.Add(discount)
	}

	t.Total = t.Subtotal.Sub(t.Discount)
	t.Paid = paid
	t.Balance = outstanding(t.Total, paid)

	return t
}

// ApplyStatus returns the paid amount and balance an invoice must carry in the
// given status. Paid settles the invoice, Draft clears any payment.
func ApplyStatus(status Status, total, paid decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	switch status {
	case StatusPaid:
		return total, decimal.Zero
	case StatusDraft:
		return decimal.Zero, outstanding(total, decimal.Zero)
	default:
		return paid, outstanding(total, paid)
	}
}

// ParseQuantity reads a line quantity, falling back to 1.
func ParseQuantity(raw string) decimal.Decimal {
	return parseOr(raw, decimal.NewFromInt(1))
}

// ParseMoney reads a price, discount or payment figure, falling back to 0.
func ParseMoney(raw string) decimal.Decimal {
	return parseOr(raw, decimal.Zero)
}

func parseOr(raw string, fallback decimal.Decimal) decimal.Decimal {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return fallback
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fallback
	}

	return d
}

func outstanding(total, paid decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, total.Sub(paid))
}
