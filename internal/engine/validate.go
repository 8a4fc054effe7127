package engine

import "fmt"

// Deal pass/fail thresholds.
const (
	MinBMVScore       = 15.0
	MinProfitPotential = 10000.0
)

// Qualitative rating tiers for validated deals.
const (
	ratingExcellentBMV = 25.0
	ratingStrongBMV    = 20.0

	RatingExcellent  = "Excellent opportunity"
	RatingStrong     = "Strong deal"
	RatingAcceptable = "Acceptable deal"
)

// Verdict is the deal classification: a single pass/fail predicate
// re-evaluated fresh on every calculation, with a qualitative rating on
// pass and itemized failure reasons on rejection. Both shortfall reasons
// may appear together.
type Verdict struct {
	Passed  bool
	Rating  string
	Reasons []string
}

// ValidateDeal classifies a deal from its BMV score and profit potential.
func ValidateDeal(bmvScore, profitPotential float64) Verdict {
	var v Verdict

	if bmvScore < MinBMVScore {
		v.Reasons = append(v.Reasons, fmt.Sprintf(
			"BMV of %.2f%% is below the %.0f%% minimum", bmvScore, MinBMVScore))
	}
	if profitPotential < MinProfitPotential {
		v.Reasons = append(v.Reasons, fmt.Sprintf(
			"Profit potential of £%.0f is below the £%.0f minimum", profitPotential, MinProfitPotential))
	}

	if len(v.Reasons) > 0 {
		return v
	}

	v.Passed = true
	switch {
	case bmvScore >= ratingExcellentBMV:
		v.Rating = RatingExcellent
	case bmvScore >= ratingStrongBMV:
		v.Rating = RatingStrong
	default:
		v.Rating = RatingAcceptable
	}
	return v
}
