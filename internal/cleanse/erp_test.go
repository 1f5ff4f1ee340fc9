package cleanse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpattn/medallion/internal/domain"
)

func TestDemographicsStripsLegacyPrefix(t *testing.T) {
	now := date(2024, time.January, 1)
	raw := []domain.RawCustomerDemographic{
		{Key: "NASAW00011000", Gender: "Male"},
		{Key: "AW00011001", Gender: "female"},
	}

	out, dropped := Demographics(raw, now)

	require.Len(t, out, 2)
	assert.Equal(t, 0, dropped)
	assert.Equal(t, "AW00011000", out[0].Key)
	assert.Equal(t, domain.GenderMale, out[0].Gender)
	assert.Equal(t, "AW00011001", out[1].Key)
	assert.Equal(t, domain.GenderFemale, out[1].Gender)
}

func TestDemographicsNullsFutureBirthDates(t *testing.T) {
	now := date(2024, time.January, 1)
	raw := []domain.RawCustomerDemographic{
		{Key: "AW1", BirthDate: datePtr(2030, time.May, 5)},
		{Key: "AW2", BirthDate: datePtr(1990, time.May, 5)},
	}

	out, _ := Demographics(raw, now)

	require.Len(t, out, 2)
	assert.Nil(t, out[0].BirthDate)
	require.NotNil(t, out[1].BirthDate)
	assert.Equal(t, date(1990, time.May, 5), *out[1].BirthDate)
}

func TestDemographicsDropsEmptyKeys(t *testing.T) {
	raw := []domain.RawCustomerDemographic{
		{Key: "  "},
		{Key: "NAS"},
	}

	out, dropped := Demographics(raw, date(2024, time.January, 1))

	assert.Empty(t, out)
	assert.Equal(t, 2, dropped)
}

func TestLocationsRemovesKeyHyphens(t *testing.T) {
	raw := []domain.RawCustomerLocation{
		{Key: "AW-00011000", Country: "DE"},
		{Key: "AW00011001", Country: "United States"},
		{Key: "AW00011002", Country: ""},
	}

	out, dropped := Locations(raw)

	require.Len(t, out, 3)
	assert.Equal(t, 0, dropped)
	assert.Equal(t, "AW00011000", out[0].Key)
	assert.Equal(t, "Germany", out[0].Country)
	assert.Equal(t, "United States", out[1].Country)
	assert.Equal(t, domain.UnknownCountry, out[2].Country)
}

func TestCategoriesTrimsAndDrops(t *testing.T) {
	raw := []domain.RawProductCategory{
		{Code: " CO_RF ", Category: " Components ", Subcategory: " Road Frames ", Maintenance: " Yes "},
		{Code: ""},
	}

	out, dropped := Categories(raw)

	require.Len(t, out, 1)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "CO_RF", out[0].Code)
	assert.Equal(t, "Components", out[0].Category)
	assert.Equal(t, "Road Frames", out[0].Subcategory)
	assert.Equal(t, "Yes", out[0].Maintenance)
}
