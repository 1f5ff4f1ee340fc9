package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stage identifies one step of the batch run.
type Stage string

const (
	StageLoadBronze          Stage = "load_bronze"
	StageCleanseCustomers    Stage = "cleanse_customers"
	StageCleanseProducts     Stage = "cleanse_products"
	StageCleanseSales        Stage = "cleanse_sales"
	StageCleanseDemographics Stage = "cleanse_demographics"
	StageCleanseLocations    Stage = "cleanse_locations"
	StageCleanseCategories   Stage = "cleanse_categories"
	StagePublishSilver       Stage = "publish_silver"
	StageCustomerDimension   Stage = "build_customer_dimension"
	StageProductDimension    Stage = "build_product_dimension"
	StageSalesFact           Stage = "build_sales_fact"
	StagePublishGold         Stage = "publish_gold"
)

// StageResult reports what one stage did. Dropped counts records discarded by
// explicit cleansing rules (missing natural keys); anything else that goes
// wrong is a StageError, not a drop.
type StageResult struct {
	Stage    Stage         `json:"stage"`
	Rows     int           `json:"rows"`
	Dropped  int           `json:"dropped"`
	Duration time.Duration `json:"duration"`
}

// BatchReport aggregates the per-stage results of one run.
type BatchReport struct {
	RunID      uuid.UUID     `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Stages     []StageResult `json:"stages"`
}

// Duration is the total wall time of the run.
func (r BatchReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// StageError marks a fault that aborts the whole run. Key carries the natural
// key of the offending record when one is known.
type StageError struct {
	Stage Stage
	Key   string
	Err   error
}

func (e *StageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("stage %s: key %s: %v", e.Stage, e.Key, e.Err)
	}
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError wraps err with the failing stage and offending key.
func NewStageError(stage Stage, key string, err error) *StageError {
	return &StageError{Stage: stage, Key: key, Err: err}
}
