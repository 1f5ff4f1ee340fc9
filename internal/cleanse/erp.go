package cleanse

import (
	"strings"
	"time"

	"github.com/rpattn/medallion/internal/domain"
)

// demographicKeyPrefix is a legacy system marker some ERP extracts prepend to
// the customer key. It never appears in the CRM key, so it is stripped before
// the sources are joined.
const demographicKeyPrefix = "NAS"

// Demographics standardizes raw ERP customer demographics. Keys are aligned
// with the CRM customer key, birth dates in the future are nulled, and rows
// without a key are dropped and counted.
func Demographics(raw []domain.RawCustomerDemographic, now time.Time) ([]domain.CustomerDemographic, int) {
	dropped := 0
	out := make([]domain.CustomerDemographic, 0, len(raw))
	for _, row := range raw {
		key := strings.TrimSpace(row.Key)
		key = strings.TrimPrefix(key, demographicKeyPrefix)
		if key == "" {
			dropped++
			continue
		}
		birth := row.BirthDate
		if birth != nil && birth.After(now) {
			birth = nil
		}
		out = append(out, domain.CustomerDemographic{
			Key:       key,
			BirthDate: birth,
			Gender:    domain.NormalizeGender(row.Gender),
		})
	}
	return out, dropped
}

// Locations standardizes raw ERP customer locations. The extract hyphenates
// the customer key; hyphens are removed so it joins against the CRM key.
func Locations(raw []domain.RawCustomerLocation) ([]domain.CustomerLocation, int) {
	dropped := 0
	out := make([]domain.CustomerLocation, 0, len(raw))
	for _, row := range raw {
		key := strings.ReplaceAll(strings.TrimSpace(row.Key), "-", "")
		if key == "" {
			dropped++
			continue
		}
		out = append(out, domain.CustomerLocation{
			Key:     key,
			Country: domain.NormalizeCountry(row.Country),
		})
	}
	return out, dropped
}

// Categories trims raw ERP product category rows. Rows without a category
// code are dropped and counted.
func Categories(raw []domain.RawProductCategory) ([]domain.ProductCategory, int) {
	dropped := 0
	out := make([]domain.ProductCategory, 0, len(raw))
	for _, row := range raw {
		code := strings.TrimSpace(row.Code)
		if code == "" {
			dropped++
			continue
		}
		out = append(out, domain.ProductCategory{
			Code:        code,
			Category:    strings.TrimSpace(row.Category),
			Subcategory: strings.TrimSpace(row.Subcategory),
			Maintenance: strings.TrimSpace(row.Maintenance),
		})
	}
	return out, dropped
}
