package models

import "math"

// WeeksPerMonth is the weekly-to-monthly rent conversion factor used by
// the rental data provider (52 weeks spread over 12 months).
const WeeksPerMonth = 4.333

// RentRange is a monthly-rent confidence interval.
type RentRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// RentalEstimate is the resolved area rent signal for a subject property.
type RentalEstimate struct {
	WeeklyRent  float64 `json:"weekly_rent"`
	MonthlyRent float64 `json:"monthly_rent"`

	// ConfidenceRange is nil when the source provides a point estimate
	// only (manual entry).
	ConfidenceRange *RentRange `json:"confidence_range,omitempty"`

	Source RentalSource `json:"source"`
}

// MonthlyFromWeekly converts a weekly rent figure to a rounded monthly
// figure.
func MonthlyFromWeekly(weekly float64) float64 {
	return math.Round(weekly * WeeksPerMonth)
}

// RentalEstimateFromWeekly builds a RentalEstimate from a weekly rent
// point value and an optional weekly confidence range, applying the same
// weekly-to-monthly conversion to the point value and both bounds.
func RentalEstimateFromWeekly(weekly, rangeMinWeekly, rangeMaxWeekly float64, source RentalSource) RentalEstimate {
	est := RentalEstimate{
		WeeklyRent:  weekly,
		MonthlyRent: MonthlyFromWeekly(weekly),
		Source:      source,
	}
	if rangeMinWeekly > 0 || rangeMaxWeekly > 0 {
		est.ConfidenceRange = &RentRange{
			Min: MonthlyFromWeekly(rangeMinWeekly),
			Max: MonthlyFromWeekly(rangeMaxWeekly),
		}
	}
	return est
}
