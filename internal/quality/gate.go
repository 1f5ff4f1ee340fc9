// Package quality runs invariant checks against the published warehouse.
// The gate is a consumer of the model, not part of the transformation core:
// it reports, it never repairs.
package quality

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rpattn/medallion/internal/db"
)

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Rows   int64  `json:"rows"`
	Detail string `json:"detail,omitempty"`
}

// Gate executes quality checks.
type Gate struct {
	conn *db.Connection
	log  *zap.Logger
}

// NewGate creates a quality gate.
func NewGate(conn *db.Connection, log *zap.Logger) *Gate {
	return &Gate{conn: conn, log: log}
}

// Run executes the built-in checks plus any definitions loaded from
// checksPath. A failing check is a result, not an error; errors mean a check
// could not be executed at all.
func (g *Gate) Run(ctx context.Context, checksPath string) ([]CheckResult, error) {
	extra, err := LoadChecks(checksPath)
	if err != nil {
		return nil, err
	}
	checks := append(append([]CheckDefinition(nil), builtinChecks...), extra...)

	results := make([]CheckResult, 0, len(checks))
	for _, check := range checks {
		result, err := g.execute(ctx, check)
		if err != nil {
			return results, fmt.Errorf("check %s: %w", check.Name, err)
		}
		if !result.Passed {
			g.log.Warn("quality check failed",
				zap.String("check", result.Name),
				zap.Int64("rows", result.Rows),
			)
		}
		results = append(results, result)
	}
	return results, nil
}

// Passed reports whether every result passed.
func Passed(results []CheckResult) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

func (g *Gate) execute(ctx context.Context, check CheckDefinition) (CheckResult, error) {
	var rows int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM (%s) AS violations", check.Query)
	if err := g.conn.Pool.QueryRow(ctx, query).Scan(&rows); err != nil {
		return CheckResult{}, err
	}

	result := CheckResult{Name: check.Name, Rows: rows}
	switch check.Expect {
	case ExpectNonZeroRows:
		result.Passed = rows > 0
		if !result.Passed {
			result.Detail = "expected at least one row, found none"
		}
	default:
		result.Passed = rows == 0
		if !result.Passed {
			result.Detail = fmt.Sprintf("found %d offending rows", rows)
		}
	}
	return result, nil
}
