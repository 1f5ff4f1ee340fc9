package cleanse

import (
	"fmt"
	"sort"

	"github.com/rpattn/medallion/internal/domain"
)

// DeriveValidity closes the validity window of every product version from the
// start date of its successor: versions sharing a key are sorted by ValidFrom
// and each one ends the day before the next begins. The last version of each
// key stays open-ended (ValidTo == nil), which marks it as currently active.
//
// Two versions of one key with an identical ValidFrom have no defined order,
// so that input is rejected rather than silently ordered.
func DeriveValidity(versions []domain.ProductVersion) ([]domain.ProductVersion, error) {
	groups := make(map[string][]int)
	keys := make([]string, 0, len(versions))
	for i, v := range versions {
		if _, seen := groups[v.Key]; !seen {
			keys = append(keys, v.Key)
		}
		groups[v.Key] = append(groups[v.Key], i)
	}

	out := make([]domain.ProductVersion, 0, len(versions))
	for _, key := range keys {
		indices := groups[key]
		group := make([]domain.ProductVersion, len(indices))
		for i, idx := range indices {
			group[i] = versions[idx]
		}
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].ValidFrom.Before(group[j].ValidFrom)
		})

		for i := range group {
			if i+1 == len(group) {
				group[i].ValidTo = nil
				continue
			}
			next := group[i+1].ValidFrom
			if !group[i].ValidFrom.Before(next) {
				return nil, domain.NewStageError(domain.StageCleanseProducts, key,
					fmt.Errorf("two versions share validity start %s", next.Format("2006-01-02")))
			}
			end := next.AddDate(0, 0, -1)
			group[i].ValidTo = &end
		}
		out = append(out, group...)
	}
	return out, nil
}
