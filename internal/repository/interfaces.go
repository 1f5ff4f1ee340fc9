// Package repository persists the three warehouse layers in Postgres. Bronze
// tables hold raw extracts verbatim; silver and gold are replaced wholesale
// inside a single transaction per layer, which is what makes a failed run
// leave the previous output untouched.
package repository

import (
	"context"

	"github.com/rpattn/medallion/internal/domain"
)

// BronzeRepository stores and reads the raw extract tables.
type BronzeRepository interface {
	ReplaceCustomers(ctx context.Context, rows []domain.RawCustomer) error
	ReplaceProducts(ctx context.Context, rows []domain.RawProduct) error
	ReplaceSales(ctx context.Context, rows []domain.RawSalesLine) error
	ReplaceDemographics(ctx context.Context, rows []domain.RawCustomerDemographic) error
	ReplaceLocations(ctx context.Context, rows []domain.RawCustomerLocation) error
	ReplaceCategories(ctx context.Context, rows []domain.RawProductCategory) error

	LoadCustomers(ctx context.Context) ([]domain.RawCustomer, error)
	LoadProducts(ctx context.Context) ([]domain.RawProduct, error)
	LoadSales(ctx context.Context) ([]domain.RawSalesLine, error)
	LoadDemographics(ctx context.Context) ([]domain.RawCustomerDemographic, error)
	LoadLocations(ctx context.Context) ([]domain.RawCustomerLocation, error)
	LoadCategories(ctx context.Context) ([]domain.RawProductCategory, error)
}

// SilverRepository publishes the cleansed layer.
type SilverRepository interface {
	Publish(ctx context.Context, set domain.SilverSet) error
}

// GoldRepository publishes the dimensional model.
type GoldRepository interface {
	Publish(ctx context.Context, set domain.GoldSet) error
}
