package models

import "time"

// ComparableSale is a previously sold property used as market evidence.
// Instances are immutable once constructed; their lifetime is a single
// calculation call.
type ComparableSale struct {
	Address      string    `json:"address,omitempty"`
	Postcode     string    `json:"postcode,omitempty"`
	SalePrice    float64   `json:"sale_price"`
	SaleDate     time.Time `json:"sale_date"`
	Bedrooms     int       `json:"bedrooms,omitempty"`
	PropertyType string    `json:"property_type,omitempty"`

	// DistanceMiles is nil when the data source did not report a distance
	// from the subject property.
	DistanceMiles *float64 `json:"distance_miles,omitempty"`

	// Confidence is the provider's 0-1 reliability score for this record.
	// Nil is treated as full confidence.
	Confidence *float64 `json:"confidence,omitempty"`

	// Rental enrichment, populated only when the record has been joined
	// against area rent data.
	MonthlyRent    float64 `json:"monthly_rent,omitempty"`
	RentalYield    float64 `json:"rental_yield,omitempty"`
	RentalYieldMin float64 `json:"rental_yield_min,omitempty"`
	RentalYieldMax float64 `json:"rental_yield_max,omitempty"`
}

// ConfidenceOrDefault returns the provider confidence, defaulting to 1
// when the record carries none.
func (c *ComparableSale) ConfidenceOrDefault() float64 {
	if c.Confidence == nil {
		return 1
	}
	return *c.Confidence
}
