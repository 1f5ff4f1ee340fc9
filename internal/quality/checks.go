package quality

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Expect states how a check's row count is judged.
type Expect string

const (
	// ExpectZeroRows passes when the query finds nothing.
	ExpectZeroRows Expect = "zero_rows"
	// ExpectNonZeroRows passes when the query finds at least one row.
	ExpectNonZeroRows Expect = "nonzero_rows"
)

// CheckDefinition is one quality check. Query must be a SELECT whose result
// rows are the violations (or, for nonzero_rows, the required evidence).
type CheckDefinition struct {
	Name   string `yaml:"name"`
	Query  string `yaml:"query"`
	Expect Expect `yaml:"expect"`
}

type checksFile struct {
	Checks []CheckDefinition `yaml:"checks"`
}

// LoadChecks reads additional check definitions from a yaml file. A missing
// file yields no extra checks.
func LoadChecks(path string) ([]CheckDefinition, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read checks file: %w", err)
	}

	var file checksFile
	if err := yaml.Unmarshal(payload, &file); err != nil {
		return nil, fmt.Errorf("failed to parse checks file: %w", err)
	}

	for i, check := range file.Checks {
		if check.Name == "" || check.Query == "" {
			return nil, fmt.Errorf("check %d is missing a name or query", i+1)
		}
		if check.Expect == "" {
			file.Checks[i].Expect = ExpectZeroRows
		} else if check.Expect != ExpectZeroRows && check.Expect != ExpectNonZeroRows {
			return nil, fmt.Errorf("check %s has unknown expectation %q", check.Name, check.Expect)
		}
	}
	return file.Checks, nil
}

// builtinChecks encode the model's invariants: surrogate uniqueness,
// one row per business key, referential completeness, reconciliation
// arithmetic, enum domain membership, and the data-quality candidates the
// cleansing stage deliberately passes through (negative numerics).
var builtinChecks = []CheckDefinition{
	{
		Name:   "dim_customers_unique_surrogate",
		Query:  `SELECT customer_sk FROM gold.dim_customers GROUP BY customer_sk HAVING COUNT(*) > 1`,
		Expect: ExpectZeroRows,
	},
	{
		Name:   "dim_customers_one_row_per_customer",
		Query:  `SELECT customer_id FROM gold.dim_customers GROUP BY customer_id HAVING COUNT(*) > 1`,
		Expect: ExpectZeroRows,
	},
	{
		Name:   "dim_products_unique_surrogate",
		Query:  `SELECT product_sk FROM gold.dim_products GROUP BY product_sk HAVING COUNT(*) > 1`,
		Expect: ExpectZeroRows,
	},
	{
		Name:   "dim_products_one_row_per_product_key",
		Query:  `SELECT product_key FROM gold.dim_products GROUP BY product_key HAVING COUNT(*) > 1`,
		Expect: ExpectZeroRows,
	},
	{
		Name:   "fact_sales_orphan_customers",
		Query:  `SELECT order_number FROM gold.fact_sales WHERE customer_sk IS NULL`,
		Expect: ExpectZeroRows,
	},
	{
		Name:   "fact_sales_orphan_products",
		Query:  `SELECT order_number FROM gold.fact_sales WHERE product_sk IS NULL`,
		Expect: ExpectZeroRows,
	},
	{
		Name: "fact_sales_amount_consistency",
		Query: `SELECT order_number FROM gold.fact_sales
			WHERE unit_price IS NOT NULL AND quantity > 0
			  AND ABS(amount - quantity * unit_price) > 0.01`,
		Expect: ExpectZeroRows,
	},
	{
		Name:   "silver_products_negative_cost",
		Query:  `SELECT product_key FROM silver.crm_products WHERE cost < 0`,
		Expect: ExpectZeroRows,
	},
	{
		Name:   "silver_sales_nonpositive_quantity",
		Query:  `SELECT order_number FROM silver.crm_sales WHERE quantity <= 0`,
		Expect: ExpectZeroRows,
	},
	{
		Name: "dim_customers_gender_domain",
		Query: `SELECT customer_id FROM gold.dim_customers
			WHERE gender NOT IN ('Male', 'Female', 'Unknown')`,
		Expect: ExpectZeroRows,
	},
	{
		Name: "dim_customers_marital_status_domain",
		Query: `SELECT customer_id FROM gold.dim_customers
			WHERE marital_status NOT IN ('Married', 'Single', 'Unknown')`,
		Expect: ExpectZeroRows,
	},
	{
		Name: "dim_products_line_domain",
		Query: `SELECT product_key FROM gold.dim_products
			WHERE product_line NOT IN ('Mountain', 'Road', 'Other Sales', 'Touring', 'Unknown')`,
		Expect: ExpectZeroRows,
	},
}
