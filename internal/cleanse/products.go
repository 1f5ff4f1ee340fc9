package cleanse

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rpattn/medallion/internal/domain"
)

// ErrMissingValidityStart marks a product row whose validity start date is
// absent. The temporal derivation has no place to anchor such a row, so the
// stage fails instead of guessing.
var ErrMissingValidityStart = errors.New("product row has no validity start date")

// Products standardizes raw CRM products and derives the validity windows.
// The raw composite key is split into the ERP category code (first segment,
// hyphens folded to underscores) and the product business key (remainder).
// Missing costs default to zero; negative costs pass through for the quality
// gate to judge. Rows without a product ID are dropped and counted.
func Products(raw []domain.RawProduct) ([]domain.ProductVersion, int, error) {
	dropped := 0
	versions := make([]domain.ProductVersion, 0, len(raw))
	for _, row := range raw {
		if row.ID == nil {
			dropped++
			continue
		}
		key := strings.TrimSpace(row.Key)
		category, productKey := splitProductKey(key)
		if row.StartDate == nil {
			return nil, dropped, domain.NewStageError(domain.StageCleanseProducts, key, ErrMissingValidityStart)
		}

		cost := decimal.Zero
		if row.Cost != nil {
			cost = decimal.NewFromInt(*row.Cost)
		}

		versions = append(versions, domain.ProductVersion{
			ID:           *row.ID,
			CategoryCode: category,
			Key:          productKey,
			Name:         strings.TrimSpace(row.Name),
			Cost:         cost,
			Line:         domain.NormalizeProductLine(row.Line),
			ValidFrom:    *row.StartDate,
		})
	}

	versions, err := DeriveValidity(versions)
	if err != nil {
		return nil, dropped, err
	}
	return versions, dropped, nil
}

// splitProductKey separates the composite source key "CC-XX-rest" into the
// category code ("CC_XX") and the product key ("rest"). Keys too short to
// carry a category segment are returned whole.
func splitProductKey(key string) (category string, productKey string) {
	const segment = 5
	if len(key) <= segment+1 {
		return "", key
	}
	category = strings.ReplaceAll(key[:segment], "-", "_")
	productKey = key[segment+1:]
	return category, productKey
}
