package assemble

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpattn/medallion/internal/domain"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func profile(id int64, key string, gender domain.Gender) domain.CustomerProfile {
	return domain.CustomerProfile{
		ID:            id,
		Key:           key,
		MaritalStatus: domain.MaritalStatusSingle,
		Gender:        gender,
		CreatedAt:     date(2022, time.January, 1),
	}
}

func TestCustomerDimensionAssignsDenseKeysByID(t *testing.T) {
	profiles := []domain.CustomerProfile{
		profile(30, "C", domain.GenderMale),
		profile(10, "A", domain.GenderFemale),
		profile(20, "B", domain.GenderMale),
	}

	dim := CustomerDimension(profiles, nil, nil)

	require.Len(t, dim, 3)
	for i, row := range dim {
		assert.Equal(t, int64(i+1), row.SurrogateKey)
	}
	assert.Equal(t, int64(10), dim[0].ID)
	assert.Equal(t, int64(20), dim[1].ID)
	assert.Equal(t, int64(30), dim[2].ID)
}

func TestCustomerDimensionGenderFallback(t *testing.T) {
	profiles := []domain.CustomerProfile{
		profile(1, "A", domain.GenderMale),
		profile(2, "B", domain.GenderUnknown),
		profile(3, "C", domain.GenderUnknown),
	}
	demographics := []domain.CustomerDemographic{
		{Key: "A", Gender: domain.GenderFemale},
		{Key: "B", Gender: domain.GenderFemale},
	}

	dim := CustomerDimension(profiles, demographics, nil)

	require.Len(t, dim, 3)
	// The CRM gender wins when known.
	assert.Equal(t, domain.GenderMale, dim[0].Gender)
	assert.Equal(t, domain.GenderFemale, dim[1].Gender)
	assert.Equal(t, domain.GenderUnknown, dim[2].Gender)
}

func TestCustomerDimensionJoinsLocationAndBirthDate(t *testing.T) {
	profiles := []domain.CustomerProfile{
		profile(1, "A", domain.GenderMale),
		profile(2, "B", domain.GenderMale),
	}
	demographics := []domain.CustomerDemographic{
		{Key: "A", BirthDate: datePtr(1985, time.April, 9), Gender: domain.GenderMale},
	}
	locations := []domain.CustomerLocation{
		{Key: "A", Country: "Germany"},
	}

	dim := CustomerDimension(profiles, demographics, locations)

	require.Len(t, dim, 2)
	assert.Equal(t, "Germany", dim[0].Country)
	require.NotNil(t, dim[0].BirthDate)
	assert.Equal(t, date(1985, time.April, 9), *dim[0].BirthDate)
	// Unmatched profiles still get a row, with the Unknown country sentinel.
	assert.Equal(t, domain.UnknownCountry, dim[1].Country)
	assert.Nil(t, dim[1].BirthDate)
}

func TestCustomerDimensionIsTotal(t *testing.T) {
	profiles := []domain.CustomerProfile{
		profile(5, "X", domain.GenderUnknown),
		profile(6, "Y", domain.GenderUnknown),
	}

	dim := CustomerDimension(profiles, nil, nil)

	require.Len(t, dim, len(profiles))
	seen := make(map[int64]bool)
	for _, row := range dim {
		assert.False(t, seen[row.SurrogateKey])
		seen[row.SurrogateKey] = true
	}
}
