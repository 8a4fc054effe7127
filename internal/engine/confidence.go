package engine

import "github.com/hstraker/deal-sourcing-saas-sub001/internal/models"

// Confidence tier thresholds over (count, mean per-item confidence).
const (
	highTierMinCount        = 5
	highTierMinConfidence   = 0.8
	mediumTierMinCount      = 3
	mediumTierMinConfidence = 0.6
)

// ScoreConfidence assigns a coarse reliability label to a comparable set
// from its size and mean per-item confidence. First matching tier wins.
func ScoreConfidence(comps []models.ComparableSale) models.ConfidenceTier {
	count := len(comps)
	mean := meanConfidence(comps)

	switch {
	case count >= highTierMinCount && mean >= highTierMinConfidence:
		return models.ConfidenceHigh
	case count >= mediumTierMinCount && mean >= mediumTierMinConfidence:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

func meanConfidence(comps []models.ComparableSale) float64 {
	if len(comps) == 0 {
		return 0
	}
	var sum float64
	for i := range comps {
		sum += comps[i].ConfidenceOrDefault()
	}
	return sum / float64(len(comps))
}
