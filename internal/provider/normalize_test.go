package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hstraker/deal-sourcing-saas-sub001/internal/models"
)

func TestNormalizeComparable_CanonicalRecord(t *testing.T) {
	raw := map[string]interface{}{
		"address":  "12 High Street",
		"postcode": "M1 2AB",
		"price":    float64(185000),
		"date":     "2026-03-15",
		"bedrooms": float64(3),
		"type":     "terraced house",
		"distance": 0.4,
	}

	comp, ok := normalizeComparable(raw, 0.7)

	require.True(t, ok)
	assert.Equal(t, "12 High Street", comp.Address)
	assert.Equal(t, 185000.0, comp.SalePrice)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), comp.SaleDate)
	assert.Equal(t, 3, comp.Bedrooms)
	require.NotNil(t, comp.DistanceMiles)
	assert.Equal(t, 0.4, *comp.DistanceMiles)
	assert.Nil(t, comp.Confidence)
}

func TestNormalizeComparable_FallbackFieldNames(t *testing.T) {
	raw := map[string]interface{}{
		"display_address":  "4 Mill Lane",
		"sold_price":       "£210,500",
		"date_of_transfer": "01/02/2026",
		"beds":             float64(2),
		"property_type":    "flat",
		"distance_miles":   1.1,
	}

	comp, ok := normalizeComparable(raw, 0.7)

	require.True(t, ok)
	assert.Equal(t, "4 Mill Lane", comp.Address)
	assert.Equal(t, 210500.0, comp.SalePrice)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), comp.SaleDate)
	assert.Equal(t, 2, comp.Bedrooms)
	assert.Equal(t, "flat", comp.PropertyType)
}

func TestNormalizeComparable_RejectsUnusableRecords(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
	}{
		{"missing price", map[string]interface{}{"date": "2026-01-10"}},
		{"zero price", map[string]interface{}{"price": float64(0), "date": "2026-01-10"}},
		{"missing date", map[string]interface{}{"price": float64(100000)}},
		{"garbage date", map[string]interface{}{"price": float64(100000), "date": "soon"}},
		{"garbage price string", map[string]interface{}{"price": "n/a", "date": "2026-01-10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := normalizeComparable(tt.raw, 0.7)
			assert.False(t, ok)
		})
	}
}

func TestNormalizeComparable_ConfidenceFloor(t *testing.T) {
	raw := map[string]interface{}{
		"price":      float64(150000),
		"date":       "2026-01-10",
		"confidence": 0.5,
	}

	_, ok := normalizeComparable(raw, 0.7)
	assert.False(t, ok)

	raw["confidence"] = 0.8
	comp, ok := normalizeComparable(raw, 0.7)
	require.True(t, ok)
	require.NotNil(t, comp.Confidence)
	assert.Equal(t, 0.8, *comp.Confidence)
}

func TestNormalizeRentalEstimate(t *testing.T) {
	est := normalizeRentalEstimate(map[string]interface{}{
		"median": float64(250),
		"25pc":   float64(230),
		"75pc":   float64(270),
	})

	require.NotNil(t, est)
	assert.Equal(t, 250.0, est.WeeklyRent)
	assert.Equal(t, 1083.0, est.MonthlyRent)
	assert.Equal(t, models.RentalSourceAPI, est.Source)
	require.NotNil(t, est.ConfidenceRange)
	assert.Equal(t, 997.0, est.ConfidenceRange.Min)
	assert.Equal(t, 1170.0, est.ConfidenceRange.Max)
}

func TestNormalizeRentalEstimate_FallbackNames(t *testing.T) {
	est := normalizeRentalEstimate(map[string]interface{}{
		"estimate": "275",
		"lower":    float64(250),
		"upper":    float64(300),
	})

	require.NotNil(t, est)
	assert.Equal(t, 275.0, est.WeeklyRent)
}

func TestNormalizeRentalEstimate_Unusable(t *testing.T) {
	assert.Nil(t, normalizeRentalEstimate(nil))
	assert.Nil(t, normalizeRentalEstimate(map[string]interface{}{}))
	assert.Nil(t, normalizeRentalEstimate(map[string]interface{}{"median": float64(0)}))
}

func TestPickFloat_FormattedStrings(t *testing.T) {
	raw := map[string]interface{}{"price": "£1,250,000"}
	v, ok := pickFloat(raw, "price")
	require.True(t, ok)
	assert.Equal(t, 1250000.0, v)
}
