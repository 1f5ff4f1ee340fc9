package assemble

import (
	"sort"

	"github.com/rpattn/medallion/internal/domain"
)

// ProductDimension builds the gold product dimension from the currently
// active product versions (ValidTo == nil), left-joined to the ERP category
// set on the category code. A missing category match leaves the category
// fields empty. Surrogate keys follow ascending (ValidFrom, Key), which is a
// total order once validity derivation has run: only one open-ended version
// exists per key.
func ProductDimension(
	versions []domain.ProductVersion,
	categories []domain.ProductCategory,
) []domain.ProductDimension {
	categoryByCode := make(map[string]domain.ProductCategory, len(categories))
	for _, c := range categories {
		if _, ok := categoryByCode[c.Code]; !ok {
			categoryByCode[c.Code] = c
		}
	}

	active := make([]domain.ProductVersion, 0, len(versions))
	for _, v := range versions {
		if v.Active() {
			active = append(active, v)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		if !active[i].ValidFrom.Equal(active[j].ValidFrom) {
			return active[i].ValidFrom.Before(active[j].ValidFrom)
		}
		return active[i].Key < active[j].Key
	})

	dimension := make([]domain.ProductDimension, 0, len(active))
	for i, version := range active {
		row := domain.ProductDimension{
			SurrogateKey: int64(i + 1),
			ID:           version.ID,
			Key:          version.Key,
			Name:         version.Name,
			CategoryCode: version.CategoryCode,
			Cost:         version.Cost,
			Line:         version.Line,
			ValidFrom:    version.ValidFrom,
		}
		if category, ok := categoryByCode[version.CategoryCode]; ok {
			row.Category = category.Category
			row.Subcategory = category.Subcategory
			row.Maintenance = category.Maintenance
		}
		dimension = append(dimension, row)
	}
	return dimension
}
