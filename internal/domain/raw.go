package domain

import "time"

// Raw rows mirror the bronze tables one to one. Every field that the source
// extracts may omit is a pointer; cleansing decides how absence is handled.

// RawCustomer is a CRM customer row as ingested.
type RawCustomer struct {
	ID            *int64     `json:"cst_id"`
	Key           string     `json:"cst_key"`
	FirstName     string     `json:"cst_firstname"`
	LastName      string     `json:"cst_lastname"`
	MaritalStatus string     `json:"cst_marital_status"`
	Gender        string     `json:"cst_gndr"`
	CreatedAt     *time.Time `json:"cst_create_date"`
}

// RawProduct is a CRM product row as ingested. Key carries the composite
// category/product code the source concatenates into one field.
type RawProduct struct {
	ID        *int64     `json:"prd_id"`
	Key       string     `json:"prd_key"`
	Name      string     `json:"prd_nm"`
	Cost      *int64     `json:"prd_cost"`
	Line      string     `json:"prd_line"`
	StartDate *time.Time `json:"prd_start_dt"`
	EndDate   *time.Time `json:"prd_end_dt"`
}

// RawSalesLine is a CRM sales detail row as ingested. Dates are the source's
// YYYYMMDD integer encoding; zero or malformed values mean absent.
type RawSalesLine struct {
	OrderNumber string `json:"sls_ord_num"`
	ProductKey  string `json:"sls_prd_key"`
	CustomerID  *int64 `json:"sls_cust_id"`
	OrderDate   int64  `json:"sls_order_dt"`
	ShipDate    int64  `json:"sls_ship_dt"`
	DueDate     int64  `json:"sls_due_dt"`
	Amount      *int64 `json:"sls_sales"`
	Quantity    *int64 `json:"sls_quantity"`
	Price       *int64 `json:"sls_price"`
}

// RawCustomerDemographic is an ERP customer demographic row as ingested.
type RawCustomerDemographic struct {
	Key       string     `json:"cid"`
	BirthDate *time.Time `json:"bdate"`
	Gender    string     `json:"gen"`
}

// RawCustomerLocation is an ERP customer location row as ingested.
type RawCustomerLocation struct {
	Key     string `json:"cid"`
	Country string `json:"cntry"`
}

// RawProductCategory is an ERP product category row as ingested.
type RawProductCategory struct {
	Code        string `json:"id"`
	Category    string `json:"cat"`
	Subcategory string `json:"subcat"`
	Maintenance string `json:"maintenance"`
}
