package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rpattn/medallion/internal/db"
	"github.com/rpattn/medallion/internal/domain"
)

// goldRepository implements GoldRepository over the gold schema.
type goldRepository struct {
	conn *db.Connection
}

// NewGoldRepository creates a new gold repository.
func NewGoldRepository(conn *db.Connection) GoldRepository {
	return &goldRepository{conn: conn}
}

// Publish replaces the dimensional model in one transaction, dimensions
// first. The fact table's surrogate references stay nullable on purpose so
// orphaned lines survive the load for the quality gate to find.
func (r *goldRepository) Publish(ctx context.Context, set domain.GoldSet) error {
	return r.conn.WithTx(ctx, func(tx pgx.Tx) error {
		// One statement: the fact references both dimensions, so the
		// tables must be truncated together.
		if _, err := tx.Exec(ctx, "TRUNCATE TABLE gold.fact_sales, gold.dim_customers, gold.dim_products"); err != nil {
			return fmt.Errorf("failed to truncate gold layer: %w", err)
		}

		if err := copyRows(ctx, tx, pgx.Identifier{"gold", "dim_customers"},
			[]string{"customer_sk", "customer_id", "customer_key", "first_name", "last_name", "country", "marital_status", "gender", "birth_date", "created_at"},
			len(set.CustomerDim), func(i int) ([]any, error) {
				c := set.CustomerDim[i]
				return []any{c.SurrogateKey, c.ID, c.Key, c.FirstName, c.LastName, c.Country, string(c.MaritalStatus), string(c.Gender), c.BirthDate, c.CreatedAt}, nil
			}); err != nil {
			return err
		}

		if err := copyRows(ctx, tx, pgx.Identifier{"gold", "dim_products"},
			[]string{"product_sk", "product_id", "product_key", "product_name", "category_code", "category", "subcategory", "maintenance", "cost", "product_line", "valid_from"},
			len(set.ProductDim), func(i int) ([]any, error) {
				p := set.ProductDim[i]
				return []any{p.SurrogateKey, p.ID, p.Key, p.Name, p.CategoryCode, p.Category, p.Subcategory, p.Maintenance, p.Cost, string(p.Line), p.ValidFrom}, nil
			}); err != nil {
			return err
		}

		return copyRows(ctx, tx, pgx.Identifier{"gold", "fact_sales"},
			[]string{"order_number", "product_sk", "customer_sk", "order_date", "ship_date", "due_date", "amount", "quantity", "unit_price"},
			len(set.SalesFact), func(i int) ([]any, error) {
				f := set.SalesFact[i]
				return []any{f.OrderNumber, f.ProductSK, f.CustomerSK, f.OrderDate, f.ShipDate, f.DueDate, f.Amount, f.Quantity, f.UnitPrice}, nil
			})
	})
}
