package models

import (
	"time"

	"github.com/google/uuid"
)

// ValuationResult is the engine's complete output for one calculation.
// It is a pure function of the subject property plus the resolved
// comparable and rental data; the caller decides whether it replaces a
// prior result.
type ValuationResult struct {
	ID uuid.UUID `json:"id"`

	MarketValue       float64           `json:"market_value"`
	MarketValueSource MarketValueSource `json:"market_value_source"`

	// BMVScore is the below-market-value percentage, signed: negative
	// when the asking price exceeds the estimated market value.
	BMVScore float64 `json:"bmv_score"`

	OfferAmount     float64 `json:"offer_amount"`
	OfferPercentage float64 `json:"offer_percentage"`
	ProfitPotential float64 `json:"profit_potential"`

	ValidationPassed bool   `json:"validation_passed"`
	ValidationNotes  string `json:"validation_notes"`

	ComparablesCount     int            `json:"comparables_count"`
	ComparableConfidence ConfidenceTier `json:"comparable_confidence"`
	CreditsUsed          int            `json:"credits_used"`

	GrossYield          float64      `json:"gross_yield"`
	NetYield            float64      `json:"net_yield"`
	MonthlyRent         float64      `json:"monthly_rent"`
	WeeklyRent          float64      `json:"weekly_rent"`
	AnnualRent          float64      `json:"annual_rent"`
	RentPerSquareFoot   float64      `json:"rent_per_square_foot"`
	HasGoodYield        bool         `json:"has_good_yield"`
	RentalDataSource    RentalSource `json:"rental_data_source"`
	RentConfidenceRange *RentRange   `json:"rent_confidence_range,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
