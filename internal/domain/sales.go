package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesLine is a cleansed, reconciled sales order line. After reconciliation
// Amount == Quantity * UnitPrice holds for every line with Quantity > 0.
// UnitPrice stays invalid (null) only when the quantity is zero and the price
// cannot be derived.
type SalesLine struct {
	OrderNumber string              `json:"order_number"`
	ProductKey  string              `json:"product_key"`
	CustomerID  int64               `json:"customer_id"`
	OrderDate   *time.Time          `json:"order_date,omitempty"`
	ShipDate    *time.Time          `json:"ship_date,omitempty"`
	DueDate     *time.Time          `json:"due_date,omitempty"`
	Quantity    int64               `json:"quantity"`
	UnitPrice   decimal.NullDecimal `json:"unit_price"`
	Amount      decimal.Decimal     `json:"amount"`
}
