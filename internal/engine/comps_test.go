package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hstraker/deal-sourcing-saas-sub001/internal/models"
)

var testNow = time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

func comp(price float64, ageDays int, bedrooms int, propType string, distance *float64) models.ComparableSale {
	return models.ComparableSale{
		SalePrice:     price,
		SaleDate:      testNow.AddDate(0, 0, -ageDays),
		Bedrooms:      bedrooms,
		PropertyType:  propType,
		DistanceMiles: distance,
	}
}

func miles(d float64) *float64 { return &d }

func TestFilterComparables_EmptyInput(t *testing.T) {
	out := FilterComparables(nil, 3, "house", testNow, DefaultOptions())
	assert.Empty(t, out)
}

func TestFilterComparables_DropsStaleSales(t *testing.T) {
	comps := []models.ComparableSale{
		comp(100000, 30, 3, "house", nil),
		comp(110000, 359, 3, "house", nil),
		// 12 months x 30 days = 360 days; 361 is over the line.
		comp(120000, 361, 3, "house", nil),
	}

	out := FilterComparables(comps, 3, "house", testNow, DefaultOptions())

	require.Len(t, out, 2)
	for _, c := range out {
		assert.NotEqual(t, 120000.0, c.SalePrice)
	}
}

func TestFilterComparables_BedroomTolerance(t *testing.T) {
	comps := []models.ComparableSale{
		comp(100000, 10, 2, "house", nil),
		comp(110000, 10, 3, "house", nil),
		comp(120000, 10, 4, "house", nil),
		comp(130000, 10, 5, "house", nil), // outside tolerance
		comp(140000, 10, 0, "house", nil), // unknown bedrooms, always kept
	}

	out := FilterComparables(comps, 3, "house", testNow, DefaultOptions())

	require.Len(t, out, 4)
	for _, c := range out {
		assert.NotEqual(t, 130000.0, c.SalePrice)
	}
}

func TestFilterComparables_NoTargetBedrooms_KeepsAll(t *testing.T) {
	comps := []models.ComparableSale{
		comp(100000, 10, 1, "house", nil),
		comp(110000, 10, 5, "house", nil),
	}

	out := FilterComparables(comps, 0, "house", testNow, DefaultOptions())
	assert.Len(t, out, 2)
}

func TestFilterComparables_PropertyTypeMatching(t *testing.T) {
	tests := []struct {
		name     string
		compType string
		target   string
		kept     bool
	}{
		{"exact match", "terraced house", "terraced house", true},
		{"substring either way", "house", "terraced house", true},
		{"both contain house", "Detached House", "semi-detached house", true},
		{"both contain flat", "Ground floor flat", "purpose-built flat", true},
		{"house vs flat", "terraced house", "studio flat", false},
		{"unknown comparable type kept", "", "house", true},
		{"unknown target type kept", "bungalow", "", true},
		{"case insensitive", "TERRACED HOUSE", "terraced house", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comps := []models.ComparableSale{comp(100000, 10, 3, tt.compType, nil)}
			out := FilterComparables(comps, 3, tt.target, testNow, DefaultOptions())
			if tt.kept {
				assert.Len(t, out, 1)
			} else {
				assert.Empty(t, out)
			}
		})
	}
}

func TestFilterComparables_OrdersByDistanceThenRecency(t *testing.T) {
	comps := []models.ComparableSale{
		comp(1, 100, 3, "house", miles(2.0)),
		comp(2, 10, 3, "house", miles(0.5)),
		comp(3, 200, 3, "house", nil), // unknown distance sorts last
		comp(4, 5, 3, "house", miles(0.55)), // within 0.1mi of comp 2, newer
	}

	out := FilterComparables(comps, 3, "house", testNow, DefaultOptions())

	require.Len(t, out, 4)
	// 0.5 and 0.55 tie on distance, so the more recent sale leads.
	assert.Equal(t, 4.0, out[0].SalePrice)
	assert.Equal(t, 2.0, out[1].SalePrice)
	assert.Equal(t, 1.0, out[2].SalePrice)
	assert.Equal(t, 3.0, out[3].SalePrice)
}

func TestFilterComparables_TruncatesToMaxResults(t *testing.T) {
	var comps []models.ComparableSale
	for i := 0; i < 10; i++ {
		comps = append(comps, comp(float64(100000+i), 10, 3, "house", miles(float64(i))))
	}

	opts := DefaultOptions()
	out := FilterComparables(comps, 3, "house", testNow, opts)
	assert.Len(t, out, opts.MaxResults)

	opts.MaxResults = 2
	out = FilterComparables(comps, 3, "house", testNow, opts)
	require.Len(t, out, 2)
	assert.Equal(t, 100000.0, out[0].SalePrice)
}

func TestFilterComparables_EveryElementSatisfiesPredicates(t *testing.T) {
	comps := []models.ComparableSale{
		comp(100000, 400, 3, "house", nil),
		comp(110000, 20, 7, "house", nil),
		comp(120000, 20, 3, "flat", nil),
		comp(130000, 20, 3, "semi-detached house", miles(1.2)),
		comp(140000, 340, 2, "detached house", miles(0.3)),
	}

	opts := DefaultOptions()
	out := FilterComparables(comps, 3, "terraced house", testNow, opts)

	assert.LessOrEqual(t, len(out), opts.MaxResults)
	maxAge := time.Duration(opts.MaxAgeMonths) * 30 * 24 * time.Hour
	for _, c := range out {
		assert.LessOrEqual(t, testNow.Sub(c.SaleDate), maxAge)
		if c.Bedrooms > 0 {
			assert.LessOrEqual(t, abs(c.Bedrooms-3), opts.BedroomTolerance)
		}
		assert.True(t, typesCompatible(c.PropertyType, "terraced house"))
	}
}
