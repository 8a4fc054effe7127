package engine

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hstraker/deal-sourcing-saas-sub001/internal/models"
)

// distanceTieMiles is the band within which two comparable distances are
// treated as equal and ordering falls through to sale-date recency.
const distanceTieMiles = 0.1

// daysPerMonth approximates a calendar month for comparable-age checks.
const daysPerMonth = 30

// FilterComparables narrows a raw comparable set to the most relevant
// subset: recent enough, within bedroom tolerance, loosely matching the
// target property type. The survivors are ordered by distance ascending
// (sale date descending within the distance tie band, unknown distances
// last) and truncated to opts.MaxResults. Empty input yields empty
// output; there are no error conditions.
func FilterComparables(comps []models.ComparableSale, targetBedrooms int, targetType string, now time.Time, opts Options) []models.ComparableSale {
	maxAge := time.Duration(opts.MaxAgeMonths) * daysPerMonth * 24 * time.Hour

	out := make([]models.ComparableSale, 0, len(comps))
	for _, c := range comps {
		if now.Sub(c.SaleDate) > maxAge {
			continue
		}
		// A comparable with unknown bedrooms is never dropped on the
		// bedroom criterion.
		if targetBedrooms > 0 && c.Bedrooms > 0 {
			if abs(c.Bedrooms-targetBedrooms) > opts.BedroomTolerance {
				continue
			}
		}
		if !typesCompatible(c.PropertyType, targetType) {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].DistanceMiles, out[j].DistanceMiles
		switch {
		case di != nil && dj == nil:
			return true
		case di == nil && dj != nil:
			return false
		case di != nil && dj != nil:
			if math.Abs(*di-*dj) > distanceTieMiles {
				return *di < *dj
			}
		}
		return out[i].SaleDate.After(out[j].SaleDate)
	})

	if len(out) > opts.MaxResults {
		out = out[:opts.MaxResults]
	}
	return out
}

// typesCompatible reports whether a comparable's property type loosely
// matches the target type: either string contains the other, or both are
// some kind of house, or both are some kind of flat. Unknown types on
// either side always match.
func typesCompatible(compType, targetType string) bool {
	if compType == "" || targetType == "" {
		return true
	}
	ct := strings.ToLower(compType)
	tt := strings.ToLower(targetType)
	if strings.Contains(ct, tt) || strings.Contains(tt, ct) {
		return true
	}
	if strings.Contains(ct, "house") && strings.Contains(tt, "house") {
		return true
	}
	if strings.Contains(ct, "flat") && strings.Contains(tt, "flat") {
		return true
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
