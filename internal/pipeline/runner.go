// Package pipeline orchestrates one full batch run: bronze extracts in,
// silver entities published, gold star schema published. The run is a strict
// linear sequence of stages; each stage either completes and contributes a
// result to the batch report or fails the whole run. Publishing is
// transactional per layer, so a failed run never leaves a half-written layer
// behind.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rpattn/medallion/internal/assemble"
	"github.com/rpattn/medallion/internal/cleanse"
	"github.com/rpattn/medallion/internal/domain"
	"github.com/rpattn/medallion/internal/repository"
)

// Runner executes batch runs.
type Runner struct {
	bronze  repository.BronzeRepository
	silver  repository.SilverRepository
	gold    repository.GoldRepository
	log     *zap.Logger
	now     func() time.Time
	observe func(domain.StageResult)
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock overrides the runner's clock. The clock is called from the
// concurrent cleanse stages, so it must be safe for concurrent use.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// WithObserver registers a per-stage result hook (metrics).
func WithObserver(observe func(domain.StageResult)) Option {
	return func(r *Runner) { r.observe = observe }
}

// NewRunner creates a batch runner.
func NewRunner(
	bronze repository.BronzeRepository,
	silver repository.SilverRepository,
	gold repository.GoldRepository,
	log *zap.Logger,
	opts ...Option,
) *Runner {
	r := &Runner{
		bronze: bronze,
		silver: silver,
		gold:   gold,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// rawSet is the fully materialized bronze input of one run.
type rawSet struct {
	customers    []domain.RawCustomer
	products     []domain.RawProduct
	sales        []domain.RawSalesLine
	demographics []domain.RawCustomerDemographic
	locations    []domain.RawCustomerLocation
	categories   []domain.RawProductCategory
}

// Run executes one batch. It returns the report of the stages that ran; on
// failure the report covers the stages completed before the fault.
func (r *Runner) Run(ctx context.Context) (domain.BatchReport, error) {
	report := domain.BatchReport{
		RunID:     uuid.New(),
		StartedAt: r.now(),
	}
	log := r.log.With(zap.String("run_id", report.RunID.String()))
	log.Info("starting batch run")

	err := r.run(ctx, log, &report)
	report.FinishedAt = r.now()

	if err != nil {
		log.Error("batch run failed", zap.Error(err))
		return report, err
	}
	log.Info("batch run complete",
		zap.Duration("duration", report.Duration()),
		zap.Int("stages", len(report.Stages)),
	)
	return report, nil
}

func (r *Runner) run(ctx context.Context, log *zap.Logger, report *domain.BatchReport) error {
	raw, err := r.loadBronze(ctx, log, report)
	if err != nil {
		return err
	}

	silverSet, err := r.cleanseAll(log, report, raw)
	if err != nil {
		return err
	}

	if err := r.publish(ctx, log, report, domain.StagePublishSilver, countSilver(silverSet), func() error {
		return r.silver.Publish(ctx, silverSet)
	}); err != nil {
		return err
	}

	goldSet := r.assembleAll(log, report, silverSet)

	return r.publish(ctx, log, report, domain.StagePublishGold, countGold(goldSet), func() error {
		return r.gold.Publish(ctx, goldSet)
	})
}

func (r *Runner) loadBronze(ctx context.Context, log *zap.Logger, report *domain.BatchReport) (rawSet, error) {
	started := r.now()
	var raw rawSet
	var err error

	if raw.customers, err = r.bronze.LoadCustomers(ctx); err == nil {
		if raw.products, err = r.bronze.LoadProducts(ctx); err == nil {
			if raw.sales, err = r.bronze.LoadSales(ctx); err == nil {
				if raw.demographics, err = r.bronze.LoadDemographics(ctx); err == nil {
					if raw.locations, err = r.bronze.LoadLocations(ctx); err == nil {
						raw.categories, err = r.bronze.LoadCategories(ctx)
					}
				}
			}
		}
	}
	if err != nil {
		return rawSet{}, domain.NewStageError(domain.StageLoadBronze, "", err)
	}

	rows := len(raw.customers) + len(raw.products) + len(raw.sales) +
		len(raw.demographics) + len(raw.locations) + len(raw.categories)
	r.record(log, report, domain.StageResult{
		Stage:    domain.StageLoadBronze,
		Rows:     rows,
		Duration: r.now().Sub(started),
	})
	return raw, nil
}

// cleanseAll runs the six entity cleansers concurrently. They share no state
// until the results are collected, so each goroutine owns its output slot.
func (r *Runner) cleanseAll(log *zap.Logger, report *domain.BatchReport, raw rawSet) (domain.SilverSet, error) {
	var set domain.SilverSet
	var productsErr error
	results := make([]domain.StageResult, 6)
	now := r.now()

	var wg sync.WaitGroup
	stage := func(i int, fn func() domain.StageResult) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = fn()
		}()
	}

	stage(0, func() domain.StageResult {
		started := r.now()
		var dropped int
		set.Customers, dropped = cleanse.Customers(raw.customers)
		return domain.StageResult{Stage: domain.StageCleanseCustomers, Rows: len(set.Customers), Dropped: dropped, Duration: r.now().Sub(started)}
	})
	stage(1, func() domain.StageResult {
		started := r.now()
		var dropped int
		set.Products, dropped, productsErr = cleanse.Products(raw.products)
		return domain.StageResult{Stage: domain.StageCleanseProducts, Rows: len(set.Products), Dropped: dropped, Duration: r.now().Sub(started)}
	})
	stage(2, func() domain.StageResult {
		started := r.now()
		var dropped int
		set.Sales, dropped = cleanse.Sales(raw.sales)
		return domain.StageResult{Stage: domain.StageCleanseSales, Rows: len(set.Sales), Dropped: dropped, Duration: r.now().Sub(started)}
	})
	stage(3, func() domain.StageResult {
		started := r.now()
		var dropped int
		set.Demographics, dropped = cleanse.Demographics(raw.demographics, now)
		return domain.StageResult{Stage: domain.StageCleanseDemographics, Rows: len(set.Demographics), Dropped: dropped, Duration: r.now().Sub(started)}
	})
	stage(4, func() domain.StageResult {
		started := r.now()
		var dropped int
		set.Locations, dropped = cleanse.Locations(raw.locations)
		return domain.StageResult{Stage: domain.StageCleanseLocations, Rows: len(set.Locations), Dropped: dropped, Duration: r.now().Sub(started)}
	})
	stage(5, func() domain.StageResult {
		started := r.now()
		var dropped int
		set.Categories, dropped = cleanse.Categories(raw.categories)
		return domain.StageResult{Stage: domain.StageCleanseCategories, Rows: len(set.Categories), Dropped: dropped, Duration: r.now().Sub(started)}
	})
	wg.Wait()

	if productsErr != nil {
		return domain.SilverSet{}, productsErr
	}
	for _, result := range results {
		r.record(log, report, result)
	}
	return set, nil
}

func (r *Runner) assembleAll(log *zap.Logger, report *domain.BatchReport, silver domain.SilverSet) domain.GoldSet {
	var gold domain.GoldSet

	started := r.now()
	gold.CustomerDim = assemble.CustomerDimension(silver.Customers, silver.Demographics, silver.Locations)
	r.record(log, report, domain.StageResult{Stage: domain.StageCustomerDimension, Rows: len(gold.CustomerDim), Duration: r.now().Sub(started)})

	started = r.now()
	gold.ProductDim = assemble.ProductDimension(silver.Products, silver.Categories)
	r.record(log, report, domain.StageResult{Stage: domain.StageProductDimension, Rows: len(gold.ProductDim), Duration: r.now().Sub(started)})

	started = r.now()
	gold.SalesFact = assemble.SalesFact(silver.Sales, gold.CustomerDim, gold.ProductDim)
	r.record(log, report, domain.StageResult{Stage: domain.StageSalesFact, Rows: len(gold.SalesFact), Duration: r.now().Sub(started)})

	return gold
}

func (r *Runner) publish(ctx context.Context, log *zap.Logger, report *domain.BatchReport, stage domain.Stage, rows int, fn func() error) error {
	started := r.now()
	if err := fn(); err != nil {
		return domain.NewStageError(stage, "", err)
	}
	r.record(log, report, domain.StageResult{Stage: stage, Rows: rows, Duration: r.now().Sub(started)})
	return nil
}

func (r *Runner) record(log *zap.Logger, report *domain.BatchReport, result domain.StageResult) {
	report.Stages = append(report.Stages, result)
	if r.observe != nil {
		r.observe(result)
	}
	log.Info("stage complete",
		zap.String("stage", string(result.Stage)),
		zap.Int("rows", result.Rows),
		zap.Int("dropped", result.Dropped),
		zap.Duration("duration", result.Duration),
	)
}

func countSilver(set domain.SilverSet) int {
	return len(set.Customers) + len(set.Products) + len(set.Sales) +
		len(set.Demographics) + len(set.Locations) + len(set.Categories)
}

func countGold(set domain.GoldSet) int {
	return len(set.CustomerDim) + len(set.ProductDim) + len(set.SalesFact)
}
