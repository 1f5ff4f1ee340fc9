// Package assemble builds the gold star schema from the silver entity sets.
// Builders are pure functions; surrogate keys are assigned from total orders
// over the inputs so repeated runs over the same silver data agree.
package assemble

import (
	"sort"

	"github.com/rpattn/medallion/internal/domain"
)

// CustomerDimension joins cleansed customer profiles with ERP demographics
// and locations on the shared customer key. The CRM profile is the master
// record: its gender wins unless it is Unknown, in which case the ERP
// demographic gender is used. Country comes solely from the location match.
// Surrogate keys follow ascending customer ID.
func CustomerDimension(
	profiles []domain.CustomerProfile,
	demographics []domain.CustomerDemographic,
	locations []domain.CustomerLocation,
) []domain.CustomerDimension {
	demographicByKey := make(map[string]domain.CustomerDemographic, len(demographics))
	for _, d := range demographics {
		if _, ok := demographicByKey[d.Key]; !ok {
			demographicByKey[d.Key] = d
		}
	}
	locationByKey := make(map[string]domain.CustomerLocation, len(locations))
	for _, l := range locations {
		if _, ok := locationByKey[l.Key]; !ok {
			locationByKey[l.Key] = l
		}
	}

	ordered := append([]domain.CustomerProfile(nil), profiles...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	dimension := make([]domain.CustomerDimension, 0, len(ordered))
	for i, profile := range ordered {
		row := domain.CustomerDimension{
			SurrogateKey:  int64(i + 1),
			ID:            profile.ID,
			Key:           profile.Key,
			FirstName:     profile.FirstName,
			LastName:      profile.LastName,
			Country:       domain.UnknownCountry,
			MaritalStatus: profile.MaritalStatus,
			Gender:        profile.Gender,
			CreatedAt:     profile.CreatedAt,
		}

		if demographic, ok := demographicByKey[profile.Key]; ok {
			row.BirthDate = demographic.BirthDate
			if row.Gender == domain.GenderUnknown {
				row.Gender = demographic.Gender
			}
		}
		if location, ok := locationByKey[profile.Key]; ok {
			row.Country = location.Country
		}

		dimension = append(dimension, row)
	}
	return dimension
}
