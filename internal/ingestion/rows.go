package ingestion

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rpattn/medallion/internal/domain"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
}

// columnIndex maps sanitized header names to their positions.
type columnIndex map[string]int

func indexColumns(headers []string) columnIndex {
	index := make(columnIndex, len(headers))
	for i, h := range headers {
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}
	return index
}

func (c columnIndex) text(row []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (c columnIndex) int64Ptr(row []string, name string) *int64 {
	raw := c.text(row, name)
	if raw == "" {
		return nil
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return &v
	}
	// Some exports render integers as floats; accept lossless conversions.
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == float64(int64(f)) {
		v := int64(f)
		return &v
	}
	return nil
}

func (c columnIndex) int64Value(row []string, name string) int64 {
	if v := c.int64Ptr(row, name); v != nil {
		return *v
	}
	return 0
}

func (c columnIndex) datePtr(row []string, name string) *time.Time {
	raw := c.text(row, name)
	if raw == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return &ts
		}
	}
	return nil
}

func buildCustomer(index columnIndex, row []string) domain.RawCustomer {
	return domain.RawCustomer{
		ID:            index.int64Ptr(row, "cst_id"),
		Key:           index.text(row, "cst_key"),
		FirstName:     index.text(row, "cst_firstname"),
		LastName:      index.text(row, "cst_lastname"),
		MaritalStatus: index.text(row, "cst_marital_status"),
		Gender:        index.text(row, "cst_gndr"),
		CreatedAt:     index.datePtr(row, "cst_create_date"),
	}
}

func buildProduct(index columnIndex, row []string) domain.RawProduct {
	return domain.RawProduct{
		ID:        index.int64Ptr(row, "prd_id"),
		Key:       index.text(row, "prd_key"),
		Name:      index.text(row, "prd_nm"),
		Cost:      index.int64Ptr(row, "prd_cost"),
		Line:      index.text(row, "prd_line"),
		StartDate: index.datePtr(row, "prd_start_dt"),
		EndDate:   index.datePtr(row, "prd_end_dt"),
	}
}

func buildSalesLine(index columnIndex, row []string) domain.RawSalesLine {
	return domain.RawSalesLine{
		OrderNumber: index.text(row, "sls_ord_num"),
		ProductKey:  index.text(row, "sls_prd_key"),
		CustomerID:  index.int64Ptr(row, "sls_cust_id"),
		OrderDate:   index.int64Value(row, "sls_order_dt"),
		ShipDate:    index.int64Value(row, "sls_ship_dt"),
		DueDate:     index.int64Value(row, "sls_due_dt"),
		Amount:      index.int64Ptr(row, "sls_sales"),
		Quantity:    index.int64Ptr(row, "sls_quantity"),
		Price:       index.int64Ptr(row, "sls_price"),
	}
}

func buildDemographic(index columnIndex, row []string) domain.RawCustomerDemographic {
	return domain.RawCustomerDemographic{
		Key:       index.text(row, "cid"),
		BirthDate: index.datePtr(row, "bdate"),
		Gender:    index.text(row, "gen"),
	}
}

func buildLocation(index columnIndex, row []string) domain.RawCustomerLocation {
	return domain.RawCustomerLocation{
		Key:     index.text(row, "cid"),
		Country: index.text(row, "cntry"),
	}
}

func buildCategory(index columnIndex, row []string) domain.RawProductCategory {
	return domain.RawProductCategory{
		Code:        index.text(row, "id"),
		Category:    index.text(row, "cat"),
		Subcategory: index.text(row, "subcat"),
		Maintenance: index.text(row, "maintenance"),
	}
}

// requireColumns verifies the extract carries the columns the bronze table
// needs; ingesting a file against the wrong table should fail loudly, not
// load a table of empty rows.
func requireColumns(index columnIndex, names ...string) error {
	var missing []string
	for _, name := range names {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("extract is missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
