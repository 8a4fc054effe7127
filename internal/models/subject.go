package models

// SubjectProperty is the property under evaluation. It is owned by the
// caller; the engine reads it and never mutates it. Optional numeric
// signals are pointers so "not provided" is distinguishable from zero.
type SubjectProperty struct {
	AskingPrice  float64      `json:"asking_price"`
	Postcode     string       `json:"postcode,omitempty"`
	Bedrooms     int          `json:"bedrooms,omitempty"`
	PropertyType string       `json:"property_type,omitempty"`
	SquareFeet   float64      `json:"square_feet,omitempty"`
	Condition    Condition    `json:"condition,omitempty"`
	UrgencyLevel UrgencyLevel `json:"urgency_level,omitempty"`

	// MotivationScore is a 0-10 vendor motivation signal. Nil means the
	// sourcing team has not scored the vendor yet.
	MotivationScore *int `json:"motivation_score,omitempty"`

	EstimatedRefurbCost float64 `json:"estimated_refurb_cost,omitempty"`

	// Manual overrides entered by the sourcing team.
	ManualMarketValue *float64 `json:"manual_market_value,omitempty"`
	ManualMonthlyRent *float64 `json:"manual_monthly_rent,omitempty"`
	ManualAnnualRent  *float64 `json:"manual_annual_rent,omitempty"`

	LocalAverageRent float64 `json:"local_average_rent,omitempty"`
}

// HasManualRent reports whether the sourcing team entered a rent figure
// (monthly or annual) for this property.
func (s *SubjectProperty) HasManualRent() bool {
	if s.ManualMonthlyRent != nil && *s.ManualMonthlyRent > 0 {
		return true
	}
	return s.ManualAnnualRent != nil && *s.ManualAnnualRent > 0
}

// ManualRentMonthly returns the manually entered rent normalized to a
// monthly figure, or 0 when none was entered. A monthly entry wins over
// an annual one when both are present.
func (s *SubjectProperty) ManualRentMonthly() float64 {
	if s.ManualMonthlyRent != nil && *s.ManualMonthlyRent > 0 {
		return *s.ManualMonthlyRent
	}
	if s.ManualAnnualRent != nil && *s.ManualAnnualRent > 0 {
		return *s.ManualAnnualRent / 12
	}
	return 0
}
