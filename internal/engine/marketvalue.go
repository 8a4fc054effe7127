package engine

import (
	"math"

	"github.com/hstraker/deal-sourcing-saas-sub001/internal/models"
)

// Fallback multiplier table for the no-evidence estimate. The base
// multiplier applies when the vendor has not been motivation-scored.
const (
	fallbackBaseMultiplier = 1.20

	motivationHighMultiplier   = 1.30 // score >= 8
	motivationMediumMultiplier = 1.20 // score >= 6
	motivationLowMultiplier    = 1.15 // score >= 4
	motivationFloorMultiplier  = 1.10 // score < 4

	conditionExcellentScale = 1.05
	conditionPoorScale      = 0.95
)

// EstimateMarketValue combines comparable evidence, a manual entry, and a
// condition/motivation-driven fallback into one market value figure with
// a source tag. Precedence is strict: comparable mean, then manual entry,
// then the asking-price multiplier estimate. The estimator never fails:
// with an asking price present it always returns a number.
//
// Callers must reject the calculation before invoking this when the
// asking price is absent; that precondition is not re-checked here.
func EstimateMarketValue(subject *models.SubjectProperty, comps []models.ComparableSale) (float64, models.MarketValueSource) {
	if len(comps) > 0 {
		var sum float64
		for i := range comps {
			sum += comps[i].SalePrice
		}
		return math.Round(sum / float64(len(comps))), models.SourceComparableSales
	}

	if subject.ManualMarketValue != nil && *subject.ManualMarketValue > 0 {
		return *subject.ManualMarketValue, models.SourceManualEntry
	}

	multiplier := fallbackBaseMultiplier
	if subject.MotivationScore != nil {
		switch score := *subject.MotivationScore; {
		case score >= 8:
			multiplier = motivationHighMultiplier
		case score >= 6:
			multiplier = motivationMediumMultiplier
		case score >= 4:
			multiplier = motivationLowMultiplier
		default:
			multiplier = motivationFloorMultiplier
		}
	}

	switch subject.Condition {
	case models.ConditionExcellent:
		multiplier *= conditionExcellentScale
	case models.ConditionPoor, models.ConditionNeedsModernisation:
		multiplier *= conditionPoorScale
	}

	return math.Round(subject.AskingPrice * multiplier), models.SourceEstimated
}

// BMVScore is the below-market-value percentage of an asking price
// against a market value, signed: negative when asking exceeds value.
func BMVScore(marketValue, askingPrice float64) float64 {
	if marketValue <= 0 {
		return 0
	}
	return (marketValue - askingPrice) / marketValue * 100
}
