package engine

import "github.com/hstraker/deal-sourcing-saas-sub001/internal/models"

// Offer policy band and adjustment table, as percentages of market value.
const (
	baseOfferPercentage = 78.0

	// Motivation tiers override the base rather than adjust it. Scores
	// strictly between 4 and 6 fall through every branch and keep the
	// base; that neutral band is deliberate.
	motivationHighOfferPct = 72.0 // score >= 8
	motivationMidOfferPct  = 75.0 // score >= 6
	motivationLowOfferPct  = 82.0 // score <= 4

	conditionPoorAdjust      = -5.0
	conditionNeedsWorkAdjust = -3.0
	conditionExcellentAdjust = 3.0

	urgencyUrgentAdjust   = -3.0
	urgencyFlexibleAdjust = 2.0

	// MinOfferPercentage and MaxOfferPercentage bound the final offer
	// regardless of adjustment stacking.
	MinOfferPercentage = 65.0
	MaxOfferPercentage = 85.0
)

// OfferTerms are the recommended acquisition terms for a deal.
type OfferTerms struct {
	Percentage      float64
	Amount          float64
	ProfitPotential float64
}

// CalculateOffer computes the recommended offer as a percentage of market
// value biased by motivation, condition and urgency, clamped to the
// policy band. Profit potential nets off the estimated refurb cost and
// may be negative.
func CalculateOffer(marketValue float64, subject *models.SubjectProperty) OfferTerms {
	pct := baseOfferPercentage

	if subject.MotivationScore != nil {
		switch score := *subject.MotivationScore; {
		case score >= 8:
			pct = motivationHighOfferPct
		case score >= 6:
			pct = motivationMidOfferPct
		case score <= 4:
			pct = motivationLowOfferPct
		}
	}

	switch subject.Condition {
	case models.ConditionPoor, models.ConditionNeedsModernisation:
		pct += conditionPoorAdjust
	case models.ConditionNeedsWork:
		pct += conditionNeedsWorkAdjust
	case models.ConditionExcellent:
		pct += conditionExcellentAdjust
	}

	switch subject.UrgencyLevel {
	case models.UrgencyUrgent:
		pct += urgencyUrgentAdjust
	case models.UrgencyFlexible:
		pct += urgencyFlexibleAdjust
	}

	pct = clamp(pct, MinOfferPercentage, MaxOfferPercentage)

	amount := marketValue * pct / 100
	return OfferTerms{
		Percentage:      pct,
		Amount:          amount,
		ProfitPotential: marketValue - amount - subject.EstimatedRefurbCost,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
