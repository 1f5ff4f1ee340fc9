package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerDimension is a gold customer row. Surrogate keys are dense and
// assigned in customer ID order, so re-running a load over the same silver
// set yields the same keys.
type CustomerDimension struct {
	SurrogateKey  int64         `json:"customer_sk"`
	ID            int64         `json:"customer_id"`
	Key           string        `json:"customer_key"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	Country       string        `json:"country"`
	MaritalStatus MaritalStatus `json:"marital_status"`
	Gender        Gender        `json:"gender"`
	BirthDate     *time.Time    `json:"birth_date,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ProductDimension is a gold product row, restricted to currently active
// product versions. Surrogate keys are assigned in (ValidFrom, Key) order.
type ProductDimension struct {
	SurrogateKey int64           `json:"product_sk"`
	ID           int64           `json:"product_id"`
	Key          string          `json:"product_key"`
	Name         string          `json:"product_name"`
	CategoryCode string          `json:"category_code"`
	Category     string          `json:"category"`
	Subcategory  string          `json:"subcategory"`
	Maintenance  string          `json:"maintenance"`
	Cost         decimal.Decimal `json:"cost"`
	Line         ProductLine     `json:"product_line"`
	ValidFrom    time.Time       `json:"valid_from"`
}

// SalesFact is a gold fact row. Dimension references are nullable: a line
// whose customer or product has no dimension row keeps a nil surrogate key so
// the quality gate can report the orphan instead of losing the row.
type SalesFact struct {
	OrderNumber string              `json:"order_number"`
	ProductSK   *int64              `json:"product_sk,omitempty"`
	CustomerSK  *int64              `json:"customer_sk,omitempty"`
	OrderDate   *time.Time          `json:"order_date,omitempty"`
	ShipDate    *time.Time          `json:"ship_date,omitempty"`
	DueDate     *time.Time          `json:"due_date,omitempty"`
	Amount      decimal.Decimal     `json:"amount"`
	Quantity    int64               `json:"quantity"`
	UnitPrice   decimal.NullDecimal `json:"unit_price"`
}
