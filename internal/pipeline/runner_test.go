package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rpattn/medallion/internal/domain"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

// stubBronze serves a fixed raw set and can fail any single load.
type stubBronze struct {
	customers    []domain.RawCustomer
	products     []domain.RawProduct
	sales        []domain.RawSalesLine
	demographics []domain.RawCustomerDemographic
	locations    []domain.RawCustomerLocation
	categories   []domain.RawProductCategory
	salesErr     error
}

func (s *stubBronze) ReplaceCustomers(context.Context, []domain.RawCustomer) error { return nil }
func (s *stubBronze) ReplaceProducts(context.Context, []domain.RawProduct) error   { return nil }
func (s *stubBronze) ReplaceSales(context.Context, []domain.RawSalesLine) error    { return nil }
func (s *stubBronze) ReplaceDemographics(context.Context, []domain.RawCustomerDemographic) error {
	return nil
}
func (s *stubBronze) ReplaceLocations(context.Context, []domain.RawCustomerLocation) error {
	return nil
}
func (s *stubBronze) ReplaceCategories(context.Context, []domain.RawProductCategory) error {
	return nil
}

func (s *stubBronze) LoadCustomers(context.Context) ([]domain.RawCustomer, error) {
	return s.customers, nil
}
func (s *stubBronze) LoadProducts(context.Context) ([]domain.RawProduct, error) {
	return s.products, nil
}
func (s *stubBronze) LoadSales(context.Context) ([]domain.RawSalesLine, error) {
	return s.sales, s.salesErr
}
func (s *stubBronze) LoadDemographics(context.Context) ([]domain.RawCustomerDemographic, error) {
	return s.demographics, nil
}
func (s *stubBronze) LoadLocations(context.Context) ([]domain.RawCustomerLocation, error) {
	return s.locations, nil
}
func (s *stubBronze) LoadCategories(context.Context) ([]domain.RawProductCategory, error) {
	return s.categories, nil
}

type stubSilver struct {
	published *domain.SilverSet
	err       error
}

func (s *stubSilver) Publish(_ context.Context, set domain.SilverSet) error {
	if s.err != nil {
		return s.err
	}
	s.published = &set
	return nil
}

type stubGold struct {
	published *domain.GoldSet
	err       error
}

func (s *stubGold) Publish(_ context.Context, set domain.GoldSet) error {
	if s.err != nil {
		return s.err
	}
	s.published = &set
	return nil
}

func fixtureBronze() *stubBronze {
	return &stubBronze{
		customers: []domain.RawCustomer{
			{ID: int64Ptr(1), Key: "AW00011000", FirstName: "Ann", Gender: "F", MaritalStatus: "S", CreatedAt: datePtr(2022, time.January, 1)},
			{ID: int64Ptr(1), Key: "AW00011000", FirstName: "Anna", Gender: "F", MaritalStatus: "M", CreatedAt: datePtr(2022, time.June, 1)},
			{ID: int64Ptr(2), Key: "AW00011001", FirstName: "Bob", Gender: "M", MaritalStatus: "S", CreatedAt: datePtr(2022, time.February, 1)},
		},
		products: []domain.RawProduct{
			{ID: int64Ptr(10), Key: "CO-RF-FR-R92B-58", Name: "Road Frame", Cost: int64Ptr(100), Line: "R", StartDate: datePtr(2021, time.January, 1)},
			{ID: int64Ptr(11), Key: "CO-RF-FR-R92B-58", Name: "Road Frame v2", Cost: int64Ptr(120), Line: "R", StartDate: datePtr(2022, time.January, 1)},
		},
		sales: []domain.RawSalesLine{
			{OrderNumber: "SO1", ProductKey: "FR-R92B-58", CustomerID: int64Ptr(1), OrderDate: 20230110, Quantity: int64Ptr(2), Price: int64Ptr(120)},
		},
		demographics: []domain.RawCustomerDemographic{
			{Key: "NASAW00011000", BirthDate: datePtr(1980, time.May, 5), Gender: "Female"},
		},
		locations: []domain.RawCustomerLocation{
			{Key: "AW-00011000", Country: "DE"},
		},
		categories: []domain.RawProductCategory{
			{Code: "CO_RF", Category: "Components", Subcategory: "Road Frames", Maintenance: "Yes"},
		},
	}
}

func TestRunnerExecutesAllStages(t *testing.T) {
	silver := &stubSilver{}
	gold := &stubGold{}
	runner := NewRunner(fixtureBronze(), silver, gold, zap.NewNop())

	report, err := runner.Run(context.Background())

	require.NoError(t, err)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", report.RunID.String())

	stages := make([]domain.Stage, 0, len(report.Stages))
	for _, s := range report.Stages {
		stages = append(stages, s.Stage)
	}
	assert.Equal(t, []domain.Stage{
		domain.StageLoadBronze,
		domain.StageCleanseCustomers,
		domain.StageCleanseProducts,
		domain.StageCleanseSales,
		domain.StageCleanseDemographics,
		domain.StageCleanseLocations,
		domain.StageCleanseCategories,
		domain.StagePublishSilver,
		domain.StageCustomerDimension,
		domain.StageProductDimension,
		domain.StageSalesFact,
		domain.StagePublishGold,
	}, stages)

	require.NotNil(t, silver.published)
	assert.Len(t, silver.published.Customers, 2)
	assert.Len(t, silver.published.Products, 2)

	require.NotNil(t, gold.published)
	require.Len(t, gold.published.CustomerDim, 2)
	// The duplicate resolved to the latest row, enriched with ERP data.
	first := gold.published.CustomerDim[0]
	assert.Equal(t, "Anna", first.FirstName)
	assert.Equal(t, "Germany", first.Country)
	require.NotNil(t, first.BirthDate)

	// Only the open-ended product version reaches the dimension.
	require.Len(t, gold.published.ProductDim, 1)
	assert.Equal(t, int64(11), gold.published.ProductDim[0].ID)
	assert.Equal(t, "Components", gold.published.ProductDim[0].Category)

	require.Len(t, gold.published.SalesFact, 1)
	fact := gold.published.SalesFact[0]
	require.NotNil(t, fact.CustomerSK)
	require.NotNil(t, fact.ProductSK)
	assert.True(t, fact.Amount.IntPart() == 240)
}

func TestRunnerFailsWhenBronzeLoadFails(t *testing.T) {
	bronze := fixtureBronze()
	bronze.salesErr = errors.New("connection reset")
	silver := &stubSilver{}
	runner := NewRunner(bronze, silver, &stubGold{}, zap.NewNop())

	report, err := runner.Run(context.Background())

	require.Error(t, err)
	var stageErr *domain.StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, domain.StageLoadBronze, stageErr.Stage)
	assert.Empty(t, report.Stages)
	assert.Nil(t, silver.published)
}

func TestRunnerFailsBeforeSilverOnCleanseError(t *testing.T) {
	bronze := fixtureBronze()
	bronze.products = []domain.RawProduct{
		{ID: int64Ptr(10), Key: "CO-RF-X1", StartDate: nil},
	}
	silver := &stubSilver{}
	runner := NewRunner(bronze, silver, &stubGold{}, zap.NewNop())

	_, err := runner.Run(context.Background())

	require.Error(t, err)
	var stageErr *domain.StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, domain.StageCleanseProducts, stageErr.Stage)
	assert.Nil(t, silver.published)
}

func TestRunnerStopsWhenSilverPublishFails(t *testing.T) {
	silver := &stubSilver{err: errors.New("deadlock detected")}
	gold := &stubGold{}
	runner := NewRunner(fixtureBronze(), silver, gold, zap.NewNop())

	_, err := runner.Run(context.Background())

	require.Error(t, err)
	var stageErr *domain.StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, domain.StagePublishSilver, stageErr.Stage)
	assert.Nil(t, gold.published)
}

func TestRunnerNotifiesObserver(t *testing.T) {
	var observed []domain.Stage
	runner := NewRunner(fixtureBronze(), &stubSilver{}, &stubGold{}, zap.NewNop(),
		WithObserver(func(result domain.StageResult) {
			observed = append(observed, result.Stage)
		}),
	)

	report, err := runner.Run(context.Background())

	require.NoError(t, err)
	assert.Len(t, observed, len(report.Stages))
}

func TestRunnerUsesInjectedClock(t *testing.T) {
	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	// The cleanse stages call the clock from concurrent goroutines.
	var tick atomic.Int64
	runner := NewRunner(fixtureBronze(), &stubSilver{}, &stubGold{}, zap.NewNop(),
		WithClock(func() time.Time {
			return base.Add(time.Duration(tick.Add(1)) * time.Second)
		}),
	)

	report, err := runner.Run(context.Background())

	require.NoError(t, err)
	assert.True(t, report.FinishedAt.After(report.StartedAt))
	assert.Positive(t, report.Duration())
}
