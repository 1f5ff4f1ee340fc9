// Package ingestion bulk-loads raw source extracts into the bronze layer.
// Files are parsed as-is: values that do not parse become null rather than
// failing the load, because bronze holds the extract verbatim and judgment is
// the cleansing stage's job.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/rpattn/medallion/internal/repository"
)

// Table names one bronze extract table.
type Table string

const (
	TableCRMCustomers  Table = "crm_customers"
	TableCRMProducts   Table = "crm_products"
	TableCRMSales      Table = "crm_sales"
	TableERPCustomers  Table = "erp_customers"
	TableERPLocations  Table = "erp_locations"
	TableERPCategories Table = "erp_product_categories"
)

// ErrUnknownTable is returned when a file cannot be matched to a bronze table.
var ErrUnknownTable = errors.New("unknown bronze table")

// tableByFileName recognizes the source system's extract file names.
var tableByFileName = map[string]Table{
	"cust_info":     TableCRMCustomers,
	"prd_info":      TableCRMProducts,
	"sales_details": TableCRMSales,
	"cust_az12":     TableERPCustomers,
	"loc_a101":      TableERPLocations,
	"px_cat_g1v2":   TableERPCategories,
}

// Service loads extracts into bronze tables.
type Service struct {
	bronze repository.BronzeRepository
	log    *zap.Logger
}

// NewService creates a new ingestion service.
func NewService(bronze repository.BronzeRepository, log *zap.Logger) *Service {
	return &Service{bronze: bronze, log: log}
}

// Summary returns ingestion level metrics for one extract.
type Summary struct {
	Table    Table `json:"table"`
	RowsRead int   `json:"rowsRead"`
	RowsKept int   `json:"rowsKept"`
}

// DetectTable maps an extract file name to its bronze table.
func DetectTable(fileName string) (Table, error) {
	base := strings.ToLower(strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName)))
	if table, ok := tableByFileName[base]; ok {
		return table, nil
	}
	return "", fmt.Errorf("%w for file %s", ErrUnknownTable, fileName)
}

// Load parses one extract and fully replaces the matching bronze table.
func (s *Service) Load(ctx context.Context, table Table, fileName string, data io.Reader) (Summary, error) {
	summary := Summary{Table: table}

	payload, err := io.ReadAll(data)
	if err != nil {
		return summary, fmt.Errorf("failed to read extract: %w", err)
	}
	if len(payload) == 0 {
		return summary, errors.New("extract file is empty")
	}

	parsed, err := parseFile(fileName, payload)
	if err != nil {
		return summary, err
	}
	summary.RowsRead = len(parsed.rows)
	index := indexColumns(parsed.headers)

	switch table {
	case TableCRMCustomers:
		if err := requireColumns(index, "cst_id", "cst_key"); err != nil {
			return summary, err
		}
		rows := collectRows(parsed, index, buildCustomer)
		summary.RowsKept = len(rows)
		err = s.bronze.ReplaceCustomers(ctx, rows)
	case TableCRMProducts:
		if err := requireColumns(index, "prd_id", "prd_key"); err != nil {
			return summary, err
		}
		rows := collectRows(parsed, index, buildProduct)
		summary.RowsKept = len(rows)
		err = s.bronze.ReplaceProducts(ctx, rows)
	case TableCRMSales:
		if err := requireColumns(index, "sls_ord_num", "sls_prd_key", "sls_cust_id"); err != nil {
			return summary, err
		}
		rows := collectRows(parsed, index, buildSalesLine)
		summary.RowsKept = len(rows)
		err = s.bronze.ReplaceSales(ctx, rows)
	case TableERPCustomers:
		if err := requireColumns(index, "cid"); err != nil {
			return summary, err
		}
		rows := collectRows(parsed, index, buildDemographic)
		summary.RowsKept = len(rows)
		err = s.bronze.ReplaceDemographics(ctx, rows)
	case TableERPLocations:
		if err := requireColumns(index, "cid", "cntry"); err != nil {
			return summary, err
		}
		rows := collectRows(parsed, index, buildLocation)
		summary.RowsKept = len(rows)
		err = s.bronze.ReplaceLocations(ctx, rows)
	case TableERPCategories:
		if err := requireColumns(index, "id", "cat"); err != nil {
			return summary, err
		}
		rows := collectRows(parsed, index, buildCategory)
		summary.RowsKept = len(rows)
		err = s.bronze.ReplaceCategories(ctx, rows)
	default:
		return summary, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	if err != nil {
		return summary, err
	}

	s.log.Info("loaded bronze extract",
		zap.String("table", string(table)),
		zap.String("file", fileName),
		zap.Int("rows", summary.RowsKept),
	)
	return summary, nil
}

// collectRows converts every non-empty data row. Empty rows are dropped here;
// everything else is bronze's problem to carry and silver's to judge.
func collectRows[T any](parsed tableData, index columnIndex, build func(columnIndex, []string) T) []T {
	rows := make([]T, 0, len(parsed.rows))
	for _, row := range parsed.rows {
		if len(cleanRow(row)) == 0 {
			continue
		}
		rows = append(rows, build(index, row))
	}
	return rows
}
