package cleanse

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rpattn/medallion/internal/domain"
)

// Sales sanitizes and reconciles raw CRM sales lines. Dates arrive as
// YYYYMMDD integers and become nil unless they denote a real calendar date.
// Amount and unit price are reconciled independently, each computed from the
// original raw tuple so one correction can never feed the other:
//
//   - amount is recomputed as quantity * |price| when it is absent, not
//     positive, or contradicts that product (only checked when the raw price
//     is itself usable)
//   - price is recomputed as amount / quantity when it is absent or not
//     positive; with a zero quantity the price stays null
//
// Rows without an order number are dropped and counted.
func Sales(raw []domain.RawSalesLine) ([]domain.SalesLine, int) {
	dropped := 0
	out := make([]domain.SalesLine, 0, len(raw))
	for _, row := range raw {
		orderNumber := strings.TrimSpace(row.OrderNumber)
		if orderNumber == "" {
			dropped++
			continue
		}

		line := domain.SalesLine{
			OrderNumber: orderNumber,
			ProductKey:  strings.TrimSpace(row.ProductKey),
			OrderDate:   sanitizeDate(row.OrderDate),
			ShipDate:    sanitizeDate(row.ShipDate),
			DueDate:     sanitizeDate(row.DueDate),
		}
		if row.CustomerID != nil {
			line.CustomerID = *row.CustomerID
		}
		if row.Quantity != nil {
			line.Quantity = *row.Quantity
		}

		line.Amount = reconcileAmount(row)
		line.UnitPrice = reconcilePrice(row)
		out = append(out, line)
	}
	return out, dropped
}

func reconcileAmount(row domain.RawSalesLine) decimal.Decimal {
	quantity := decimal.NewFromInt(valueOrZero(row.Quantity))

	var expected decimal.Decimal
	if row.Price != nil {
		expected = quantity.Mul(decimal.NewFromInt(*row.Price).Abs())
	}
	priceUsable := row.Price != nil && *row.Price > 0

	switch {
	case row.Amount == nil || *row.Amount <= 0:
		return expected
	case priceUsable && !decimal.NewFromInt(*row.Amount).Equal(expected):
		// A provided amount is only second-guessed against a usable price;
		// an invalid price is corrected on its own and cannot invalidate
		// the amount.
		return expected
	default:
		return decimal.NewFromInt(*row.Amount)
	}
}

func reconcilePrice(row domain.RawSalesLine) decimal.NullDecimal {
	if row.Price != nil && *row.Price > 0 {
		return decimal.NewNullDecimal(decimal.NewFromInt(*row.Price))
	}
	// Derive from the original amount. A zero quantity leaves the price
	// undefined rather than raising.
	quantity := valueOrZero(row.Quantity)
	if row.Amount == nil || quantity == 0 {
		return decimal.NullDecimal{}
	}
	price := decimal.NewFromInt(*row.Amount).Div(decimal.NewFromInt(quantity))
	return decimal.NewNullDecimal(price)
}

func valueOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

// sanitizeDate decodes the source's YYYYMMDD integer encoding. Anything that
// is not a positive eight digit value denoting a real calendar date becomes
// nil; range policy beyond that belongs to the quality gate.
func sanitizeDate(encoded int64) *time.Time {
	if encoded < 10000101 || encoded > 99991231 {
		return nil
	}
	year := int(encoded / 10000)
	month := time.Month(encoded / 100 % 100)
	day := int(encoded % 100)
	if month < time.January || month > time.December {
		return nil
	}
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || date.Month() != month || date.Day() != day {
		return nil
	}
	return &date
}
