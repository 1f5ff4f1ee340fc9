// Package cleanse turns raw bronze rows into the silver entity sets. Every
// function is pure: it reads a fully materialized input slice and returns a
// fresh output slice, leaving the input untouched.
package cleanse

import (
	"strings"
	"time"

	"github.com/rpattn/medallion/internal/domain"
)

// Customers deduplicates and standardizes raw CRM customers. Rows without a
// customer ID are dropped and counted. When an ID repeats, the row with the
// most recent creation date wins; on equal dates the first row in input order
// wins, so the result is deterministic for a given extract.
func Customers(raw []domain.RawCustomer) ([]domain.CustomerProfile, int) {
	dropped := 0
	latest := make(map[int64]domain.RawCustomer)
	ids := make([]int64, 0, len(raw))

	for _, row := range raw {
		if row.ID == nil {
			dropped++
			continue
		}
		id := *row.ID
		current, seen := latest[id]
		if !seen {
			latest[id] = row
			ids = append(ids, id)
			continue
		}
		if createdAfter(row.CreatedAt, current.CreatedAt) {
			latest[id] = row
		}
	}

	profiles := make([]domain.CustomerProfile, 0, len(ids))
	for _, id := range ids {
		row := latest[id]
		profile := domain.CustomerProfile{
			ID:            id,
			Key:           strings.TrimSpace(row.Key),
			FirstName:     strings.TrimSpace(row.FirstName),
			LastName:      strings.TrimSpace(row.LastName),
			MaritalStatus: domain.NormalizeMaritalStatus(row.MaritalStatus),
			Gender:        domain.NormalizeGender(row.Gender),
		}
		if row.CreatedAt != nil {
			profile.CreatedAt = *row.CreatedAt
		}
		profiles = append(profiles, profile)
	}
	return profiles, dropped
}

// createdAfter reports whether a is strictly newer than b. A missing date
// loses against any present date.
func createdAfter(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}
