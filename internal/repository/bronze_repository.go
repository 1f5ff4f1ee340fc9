package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rpattn/medallion/internal/db"
	"github.com/rpattn/medallion/internal/domain"
)

// bronzeRepository implements BronzeRepository over the bronze schema.
type bronzeRepository struct {
	conn *db.Connection
}

// NewBronzeRepository creates a new bronze repository.
func NewBronzeRepository(conn *db.Connection) BronzeRepository {
	return &bronzeRepository{conn: conn}
}

// replaceTable truncates one bronze table and bulk-copies the new extract
// into it, all inside one transaction. Full refresh, never append.
func (r *bronzeRepository) replaceTable(ctx context.Context, table string, columns []string, rowCount int, values func(i int) ([]any, error)) error {
	return r.conn.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE bronze.%s", table)); err != nil {
			return fmt.Errorf("failed to truncate bronze.%s: %w", table, err)
		}
		if rowCount == 0 {
			return nil
		}
		_, err := tx.CopyFrom(ctx, pgx.Identifier{"bronze", table}, columns, pgx.CopyFromSlice(rowCount, values))
		if err != nil {
			return fmt.Errorf("failed to copy into bronze.%s: %w", table, err)
		}
		return nil
	})
}

func (r *bronzeRepository) ReplaceCustomers(ctx context.Context, rows []domain.RawCustomer) error {
	columns := []string{"cst_id", "cst_key", "cst_firstname", "cst_lastname", "cst_marital_status", "cst_gndr", "cst_create_date"}
	return r.replaceTable(ctx, "crm_customers", columns, len(rows), func(i int) ([]any, error) {
		row := rows[i]
		return []any{row.ID, row.Key, row.FirstName, row.LastName, row.MaritalStatus, row.Gender, row.CreatedAt}, nil
	})
}

func (r *bronzeRepository) ReplaceProducts(ctx context.Context, rows []domain.RawProduct) error {
	columns := []string{"prd_id", "prd_key", "prd_nm", "prd_cost", "prd_line", "prd_start_dt", "prd_end_dt"}
	return r.replaceTable(ctx, "crm_products", columns, len(rows), func(i int) ([]any, error) {
		row := rows[i]
		return []any{row.ID, row.Key, row.Name, row.Cost, row.Line, row.StartDate, row.EndDate}, nil
	})
}

func (r *bronzeRepository) ReplaceSales(ctx context.Context, rows []domain.RawSalesLine) error {
	columns := []string{"sls_ord_num", "sls_prd_key", "sls_cust_id", "sls_order_dt", "sls_ship_dt", "sls_due_dt", "sls_sales", "sls_quantity", "sls_price"}
	return r.replaceTable(ctx, "crm_sales", columns, len(rows), func(i int) ([]any, error) {
		row := rows[i]
		return []any{row.OrderNumber, row.ProductKey, row.CustomerID, row.OrderDate, row.ShipDate, row.DueDate, row.Amount, row.Quantity, row.Price}, nil
	})
}

func (r *bronzeRepository) ReplaceDemographics(ctx context.Context, rows []domain.RawCustomerDemographic) error {
	columns := []string{"cid", "bdate", "gen"}
	return r.replaceTable(ctx, "erp_customers", columns, len(rows), func(i int) ([]any, error) {
		row := rows[i]
		return []any{row.Key, row.BirthDate, row.Gender}, nil
	})
}

func (r *bronzeRepository) ReplaceLocations(ctx context.Context, rows []domain.RawCustomerLocation) error {
	columns := []string{"cid", "cntry"}
	return r.replaceTable(ctx, "erp_locations", columns, len(rows), func(i int) ([]any, error) {
		row := rows[i]
		return []any{row.Key, row.Country}, nil
	})
}

func (r *bronzeRepository) ReplaceCategories(ctx context.Context, rows []domain.RawProductCategory) error {
	columns := []string{"id", "cat", "subcat", "maintenance"}
	return r.replaceTable(ctx, "erp_product_categories", columns, len(rows), func(i int) ([]any, error) {
		row := rows[i]
		return []any{row.Code, row.Category, row.Subcategory, row.Maintenance}, nil
	})
}

func (r *bronzeRepository) LoadCustomers(ctx context.Context) ([]domain.RawCustomer, error) {
	rows, err := r.conn.Pool.Query(ctx, `
		SELECT cst_id, cst_key, cst_firstname, cst_lastname, cst_marital_status, cst_gndr, cst_create_date
		FROM bronze.crm_customers`)
	if err != nil {
		return nil, fmt.Errorf("failed to load bronze customers: %w", err)
	}
	defer rows.Close()

	var result []domain.RawCustomer
	for rows.Next() {
		var row domain.RawCustomer
		var key, first, last, marital, gender *string
		if err := rows.Scan(&row.ID, &key, &first, &last, &marital, &gender, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bronze customer: %w", err)
		}
		row.Key = stringOrEmpty(key)
		row.FirstName = stringOrEmpty(first)
		row.LastName = stringOrEmpty(last)
		row.MaritalStatus = stringOrEmpty(marital)
		row.Gender = stringOrEmpty(gender)
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *bronzeRepository) LoadProducts(ctx context.Context) ([]domain.RawProduct, error) {
	rows, err := r.conn.Pool.Query(ctx, `
		SELECT prd_id, prd_key, prd_nm, prd_cost, prd_line, prd_start_dt, prd_end_dt
		FROM bronze.crm_products`)
	if err != nil {
		return nil, fmt.Errorf("failed to load bronze products: %w", err)
	}
	defer rows.Close()

	var result []domain.RawProduct
	for rows.Next() {
		var row domain.RawProduct
		var key, name, line *string
		if err := rows.Scan(&row.ID, &key, &name, &row.Cost, &line, &row.StartDate, &row.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan bronze product: %w", err)
		}
		row.Key = stringOrEmpty(key)
		row.Name = stringOrEmpty(name)
		row.Line = stringOrEmpty(line)
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *bronzeRepository) LoadSales(ctx context.Context) ([]domain.RawSalesLine, error) {
	rows, err := r.conn.Pool.Query(ctx, `
		SELECT sls_ord_num, sls_prd_key, sls_cust_id, sls_order_dt, sls_ship_dt, sls_due_dt, sls_sales, sls_quantity, sls_price
		FROM bronze.crm_sales`)
	if err != nil {
		return nil, fmt.Errorf("failed to load bronze sales: %w", err)
	}
	defer rows.Close()

	var result []domain.RawSalesLine
	for rows.Next() {
		var row domain.RawSalesLine
		var orderNumber, productKey *string
		var orderDate, shipDate, dueDate *int64
		if err := rows.Scan(&orderNumber, &productKey, &row.CustomerID, &orderDate, &shipDate, &dueDate, &row.Amount, &row.Quantity, &row.Price); err != nil {
			return nil, fmt.Errorf("failed to scan bronze sales line: %w", err)
		}
		row.OrderNumber = stringOrEmpty(orderNumber)
		row.ProductKey = stringOrEmpty(productKey)
		row.OrderDate = int64OrZero(orderDate)
		row.ShipDate = int64OrZero(shipDate)
		row.DueDate = int64OrZero(dueDate)
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *bronzeRepository) LoadDemographics(ctx context.Context) ([]domain.RawCustomerDemographic, error) {
	rows, err := r.conn.Pool.Query(ctx, `SELECT cid, bdate, gen FROM bronze.erp_customers`)
	if err != nil {
		return nil, fmt.Errorf("failed to load bronze demographics: %w", err)
	}
	defer rows.Close()

	var result []domain.RawCustomerDemographic
	for rows.Next() {
		var row domain.RawCustomerDemographic
		var key, gender *string
		if err := rows.Scan(&key, &row.BirthDate, &gender); err != nil {
			return nil, fmt.Errorf("failed to scan bronze demographic: %w", err)
		}
		row.Key = stringOrEmpty(key)
		row.Gender = stringOrEmpty(gender)
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *bronzeRepository) LoadLocations(ctx context.Context) ([]domain.RawCustomerLocation, error) {
	rows, err := r.conn.Pool.Query(ctx, `SELECT cid, cntry FROM bronze.erp_locations`)
	if err != nil {
		return nil, fmt.Errorf("failed to load bronze locations: %w", err)
	}
	defer rows.Close()

	var result []domain.RawCustomerLocation
	for rows.Next() {
		var row domain.RawCustomerLocation
		var key, country *string
		if err := rows.Scan(&key, &country); err != nil {
			return nil, fmt.Errorf("failed to scan bronze location: %w", err)
		}
		row.Key = stringOrEmpty(key)
		row.Country = stringOrEmpty(country)
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *bronzeRepository) LoadCategories(ctx context.Context) ([]domain.RawProductCategory, error) {
	rows, err := r.conn.Pool.Query(ctx, `SELECT id, cat, subcat, maintenance FROM bronze.erp_product_categories`)
	if err != nil {
		return nil, fmt.Errorf("failed to load bronze categories: %w", err)
	}
	defer rows.Close()

	var result []domain.RawProductCategory
	for rows.Next() {
		var row domain.RawProductCategory
		var code, category, subcategory, maintenance *string
		if err := rows.Scan(&code, &category, &subcategory, &maintenance); err != nil {
			return nil, fmt.Errorf("failed to scan bronze category: %w", err)
		}
		row.Code = stringOrEmpty(code)
		row.Category = stringOrEmpty(category)
		row.Subcategory = stringOrEmpty(subcategory)
		row.Maintenance = stringOrEmpty(maintenance)
		result = append(result, row)
	}
	return result, rows.Err()
}

func stringOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func int64OrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
