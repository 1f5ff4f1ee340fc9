package assemble

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpattn/medallion/internal/domain"
)

func activeVersion(id int64, key, categoryCode string, from time.Time) domain.ProductVersion {
	return domain.ProductVersion{
		ID:           id,
		Key:          key,
		CategoryCode: categoryCode,
		Cost:         decimal.NewFromInt(100),
		Line:         domain.ProductLineRoad,
		ValidFrom:    from,
	}
}

func TestProductDimensionKeepsOnlyActiveVersions(t *testing.T) {
	closed := activeVersion(1, "P1", "CO_RF", date(2020, time.January, 1))
	end := date(2020, time.December, 31)
	closed.ValidTo = &end

	versions := []domain.ProductVersion{
		closed,
		activeVersion(2, "P1", "CO_RF", date(2021, time.January, 1)),
	}

	dim := ProductDimension(versions, nil)

	require.Len(t, dim, 1)
	assert.Equal(t, int64(2), dim[0].ID)
}

func TestProductDimensionOrdersByValidFromThenKey(t *testing.T) {
	versions := []domain.ProductVersion{
		activeVersion(3, "P3", "", date(2022, time.January, 1)),
		activeVersion(1, "P2", "", date(2021, time.January, 1)),
		activeVersion(2, "P1", "", date(2021, time.January, 1)),
	}

	dim := ProductDimension(versions, nil)

	require.Len(t, dim, 3)
	assert.Equal(t, "P1", dim[0].Key)
	assert.Equal(t, "P2", dim[1].Key)
	assert.Equal(t, "P3", dim[2].Key)
	for i, row := range dim {
		assert.Equal(t, int64(i+1), row.SurrogateKey)
	}
}

func TestProductDimensionJoinsCategory(t *testing.T) {
	versions := []domain.ProductVersion{
		activeVersion(1, "P1", "CO_RF", date(2021, time.January, 1)),
		activeVersion(2, "P2", "XX_YY", date(2021, time.February, 1)),
	}
	categories := []domain.ProductCategory{
		{Code: "CO_RF", Category: "Components", Subcategory: "Road Frames", Maintenance: "Yes"},
	}

	dim := ProductDimension(versions, categories)

	require.Len(t, dim, 2)
	assert.Equal(t, "Components", dim[0].Category)
	assert.Equal(t, "Road Frames", dim[0].Subcategory)
	assert.Equal(t, "Yes", dim[0].Maintenance)
	// A missing category match leaves the category fields empty.
	assert.Empty(t, dim[1].Category)
	assert.Empty(t, dim[1].Subcategory)
}
