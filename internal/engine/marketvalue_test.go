package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hstraker/deal-sourcing-saas-sub001/internal/models"
)

func score(n int) *int         { return &n }
func money(v float64) *float64 { return &v }

func TestEstimateMarketValue_ComparableMean(t *testing.T) {
	subject := &models.SubjectProperty{AskingPrice: 100000}
	comps := []models.ComparableSale{
		{SalePrice: 120000},
		{SalePrice: 118000},
		{SalePrice: 122000},
	}

	value, source := EstimateMarketValue(subject, comps)

	assert.Equal(t, 120000.0, value)
	assert.Equal(t, models.SourceComparableSales, source)
}

func TestEstimateMarketValue_MeanIsRounded(t *testing.T) {
	subject := &models.SubjectProperty{AskingPrice: 100000}
	comps := []models.ComparableSale{
		{SalePrice: 100001},
		{SalePrice: 100002},
	}

	value, _ := EstimateMarketValue(subject, comps)
	assert.Equal(t, 100002.0, value)
}

func TestEstimateMarketValue_ComparablesBeatManualEntry(t *testing.T) {
	subject := &models.SubjectProperty{
		AskingPrice:       100000,
		ManualMarketValue: money(150000),
	}
	comps := []models.ComparableSale{{SalePrice: 110000}}

	value, source := EstimateMarketValue(subject, comps)

	assert.Equal(t, 110000.0, value)
	assert.Equal(t, models.SourceComparableSales, source)
}

func TestEstimateMarketValue_ManualEntry(t *testing.T) {
	subject := &models.SubjectProperty{
		AskingPrice:       100000,
		ManualMarketValue: money(135000),
	}

	value, source := EstimateMarketValue(subject, nil)

	assert.Equal(t, 135000.0, value)
	assert.Equal(t, models.SourceManualEntry, source)
}

func TestEstimateMarketValue_FallbackMultipliers(t *testing.T) {
	tests := []struct {
		name       string
		motivation *int
		condition  models.Condition
		want       float64
	}{
		{"no motivation no condition", nil, "", 120000},
		{"no motivation excellent condition", nil, models.ConditionExcellent, 126000},
		{"high motivation", score(8), "", 130000},
		{"medium motivation", score(6), "", 120000},
		{"low motivation", score(4), "", 115000},
		{"floor motivation", score(2), "", 110000},
		{"high motivation poor condition", score(9), models.ConditionPoor, 123500},
		{"medium motivation needs modernisation", score(7), models.ConditionNeedsModernisation, 114000},
		{"good condition has no scale", score(6), models.ConditionGood, 120000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject := &models.SubjectProperty{
				AskingPrice:     100000,
				MotivationScore: tt.motivation,
				Condition:       tt.condition,
			}

			value, source := EstimateMarketValue(subject, nil)

			assert.Equal(t, models.SourceEstimated, source)
			assert.Equal(t, tt.want, value)
		})
	}
}

func TestBMVScore(t *testing.T) {
	assert.InDelta(t, 16.67, BMVScore(120000, 100000), 0.01)
	assert.InDelta(t, -20.0, BMVScore(100000, 120000), 0.001)
	assert.Zero(t, BMVScore(0, 100000))
}
