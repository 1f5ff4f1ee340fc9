package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rpattn/medallion/internal/db"
	"github.com/rpattn/medallion/internal/domain"
)

// silverRepository implements SilverRepository over the silver schema.
type silverRepository struct {
	conn *db.Connection
}

// NewSilverRepository creates a new silver repository.
func NewSilverRepository(conn *db.Connection) SilverRepository {
	return &silverRepository{conn: conn}
}

// Publish replaces all six silver tables in one transaction. If any copy
// fails the transaction rolls back and the previously published silver layer
// stays in place.
func (r *silverRepository) Publish(ctx context.Context, set domain.SilverSet) error {
	return r.conn.WithTx(ctx, func(tx pgx.Tx) error {
		tables := []string{"crm_customers", "crm_products", "crm_sales", "erp_customers", "erp_locations", "erp_product_categories"}
		for _, table := range tables {
			if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE silver.%s", table)); err != nil {
				return fmt.Errorf("failed to truncate silver.%s: %w", table, err)
			}
		}

		if err := copyRows(ctx, tx, pgx.Identifier{"silver", "crm_customers"},
			[]string{"customer_id", "customer_key", "first_name", "last_name", "marital_status", "gender", "created_at"},
			len(set.Customers), func(i int) ([]any, error) {
				c := set.Customers[i]
				return []any{c.ID, c.Key, c.FirstName, c.LastName, string(c.MaritalStatus), string(c.Gender), c.CreatedAt}, nil
			}); err != nil {
			return err
		}

		if err := copyRows(ctx, tx, pgx.Identifier{"silver", "crm_products"},
			[]string{"product_id", "category_code", "product_key", "product_name", "cost", "product_line", "valid_from", "valid_to"},
			len(set.Products), func(i int) ([]any, error) {
				p := set.Products[i]
				return []any{p.ID, p.CategoryCode, p.Key, p.Name, p.Cost, string(p.Line), p.ValidFrom, p.ValidTo}, nil
			}); err != nil {
			return err
		}

		if err := copyRows(ctx, tx, pgx.Identifier{"silver", "crm_sales"},
			[]string{"order_number", "product_key", "customer_id", "order_date", "ship_date", "due_date", "quantity", "unit_price", "amount"},
			len(set.Sales), func(i int) ([]any, error) {
				s := set.Sales[i]
				return []any{s.OrderNumber, s.ProductKey, s.CustomerID, s.OrderDate, s.ShipDate, s.DueDate, s.Quantity, s.UnitPrice, s.Amount}, nil
			}); err != nil {
			return err
		}

		if err := copyRows(ctx, tx, pgx.Identifier{"silver", "erp_customers"},
			[]string{"customer_key", "birth_date", "gender"},
			len(set.Demographics), func(i int) ([]any, error) {
				d := set.Demographics[i]
				return []any{d.Key, d.BirthDate, string(d.Gender)}, nil
			}); err != nil {
			return err
		}

		if err := copyRows(ctx, tx, pgx.Identifier{"silver", "erp_locations"},
			[]string{"customer_key", "country"},
			len(set.Locations), func(i int) ([]any, error) {
				l := set.Locations[i]
				return []any{l.Key, l.Country}, nil
			}); err != nil {
			return err
		}

		return copyRows(ctx, tx, pgx.Identifier{"silver", "erp_product_categories"},
			[]string{"category_code", "category", "subcategory", "maintenance"},
			len(set.Categories), func(i int) ([]any, error) {
				c := set.Categories[i]
				return []any{c.Code, c.Category, c.Subcategory, c.Maintenance}, nil
			})
	})
}

// copyRows bulk-copies rows into a table, skipping the copy entirely for an
// empty set.
func copyRows(ctx context.Context, tx pgx.Tx, table pgx.Identifier, columns []string, rowCount int, values func(i int) ([]any, error)) error {
	if rowCount == 0 {
		return nil
	}
	if _, err := tx.CopyFrom(ctx, table, columns, pgx.CopyFromSlice(rowCount, values)); err != nil {
		return fmt.Errorf("failed to copy into %s: %w", table.Sanitize(), err)
	}
	return nil
}
