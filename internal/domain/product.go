package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductVersion is one cleansed, time-bounded version of a product. Several
// versions may share a Key; ValidTo is derived so the windows never overlap
// and the open-ended version (ValidTo == nil) is the currently active one.
type ProductVersion struct {
	ID           int64           `json:"product_id"`
	CategoryCode string          `json:"category_code"`
	Key          string          `json:"product_key"`
	Name         string          `json:"product_name"`
	Cost         decimal.Decimal `json:"cost"`
	Line         ProductLine     `json:"product_line"`
	ValidFrom    time.Time       `json:"valid_from"`
	ValidTo      *time.Time      `json:"valid_to,omitempty"`
}

// Active reports whether this version is the open-ended one.
func (p ProductVersion) Active() bool {
	return p.ValidTo == nil
}

// ProductCategory is a cleansed ERP category record.
type ProductCategory struct {
	Code        string `json:"category_code"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Maintenance string `json:"maintenance"`
}
