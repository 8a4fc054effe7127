package engine

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hstraker/deal-sourcing-saas-sub001/internal/logger"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/models"
)

// ErrMissingAskingPrice is the engine's single precondition failure: no
// calculation is possible without an asking price.
var ErrMissingAskingPrice = errors.New("asking price is required for valuation")

// Engine is the deal valuation and scoring core. It is a synchronous
// computation over already-resolved inputs: the service layer resolves
// comparable and rental data before calling Calculate, so the engine
// itself never blocks on I/O.
type Engine struct {
	opts Options
	log  *logger.Logger
}

// New creates an Engine with the given policy. The logger is an injected
// observability capability; the arithmetic itself has no side effects.
func New(opts Options, log *logger.Logger) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Engine{opts: opts, log: log}, nil
}

// Options returns the engine's active policy.
func (e *Engine) Options() Options {
	return e.opts
}

// Input carries everything a calculation needs. Comparables is the raw
// (unfiltered) evidence set; Rental is nil when no rent signal resolved.
type Input struct {
	Subject     *models.SubjectProperty
	Comparables []models.ComparableSale
	Rental      *models.RentalEstimate
	CreditsUsed int

	// Now anchors comparable-age checks; the zero value means the wall
	// clock. Tests pin it for determinism.
	Now time.Time
}

// Calculate runs the full valuation: filter and rank the comparable
// evidence, estimate market value, derive rental yield, compute the
// recommended offer, classify the deal, and render the rationale.
// Identical inputs always yield identical results apart from the
// generated ID and timestamp.
func (e *Engine) Calculate(in Input) (*models.ValuationResult, error) {
	subject := in.Subject
	if subject == nil || subject.AskingPrice <= 0 {
		return nil, ErrMissingAskingPrice
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	comps := FilterComparables(in.Comparables, subject.Bedrooms, subject.PropertyType, now, e.opts)
	confidence := ScoreConfidence(comps)

	marketValue, source := EstimateMarketValue(subject, comps)
	if source != models.SourceComparableSales {
		e.log.Debug("No comparable evidence, using fallback valuation", map[string]interface{}{
			"source":       string(source),
			"market_value": marketValue,
		})
	}

	bmv := BMVScore(marketValue, subject.AskingPrice)

	monthlyRent, rentalSource, rentRange := resolveRent(subject, in.Rental)
	yield := CalculateYield(subject.AskingPrice, monthlyRent, subject.SquareFeet, subject.LocalAverageRent)

	offer := CalculateOffer(marketValue, subject)
	verdict := ValidateDeal(bmv, offer.ProfitPotential)

	notes := RenderReport(ReportData{
		Subject:           subject,
		Comparables:       comps,
		Confidence:        confidence,
		MarketValue:       marketValue,
		MarketValueSource: source,
		BMVScore:          bmv,
		Offer:             offer,
		Yield:             yield,
		RentalSource:      rentalSource,
		RentRange:         rentRange,
		CreditsUsed:       in.CreditsUsed,
		Verdict:           verdict,
	})

	result := &models.ValuationResult{
		ID:                   uuid.New(),
		MarketValue:          marketValue,
		MarketValueSource:    source,
		BMVScore:             bmv,
		OfferAmount:          offer.Amount,
		OfferPercentage:      offer.Percentage,
		ProfitPotential:      offer.ProfitPotential,
		ValidationPassed:     verdict.Passed,
		ValidationNotes:      notes,
		ComparablesCount:     len(comps),
		ComparableConfidence: confidence,
		CreditsUsed:          in.CreditsUsed,
		GrossYield:           yield.GrossYield,
		NetYield:             yield.NetYield,
		MonthlyRent:          yield.MonthlyRent,
		WeeklyRent:           weeklyRent(in.Rental, monthlyRent),
		AnnualRent:           yield.AnnualRent,
		RentPerSquareFoot:    yield.RentPerSquareFoot,
		HasGoodYield:         yield.HasGoodYield,
		RentalDataSource:     rentalSource,
		RentConfidenceRange:  rentRange,
		CreatedAt:            now.UTC(),
	}

	e.log.Info("Valuation calculated", map[string]interface{}{
		"market_value":     marketValue,
		"source":           string(source),
		"bmv_score":        bmv,
		"offer_percentage": offer.Percentage,
		"passed":           verdict.Passed,
		"comparables":      len(comps),
		"credits_used":     in.CreditsUsed,
	})

	return result, nil
}

// resolveRent picks the monthly rent figure and its provenance. Manual
// entry wins over the resolved rental estimate; with neither the source
// is "none" and all yield fields stay zero.
func resolveRent(subject *models.SubjectProperty, rental *models.RentalEstimate) (float64, models.RentalSource, *models.RentRange) {
	if subject.HasManualRent() {
		return subject.ManualRentMonthly(), models.RentalSourceManual, nil
	}
	if rental != nil && rental.MonthlyRent > 0 {
		return rental.MonthlyRent, rental.Source, rental.ConfidenceRange
	}
	return 0, models.RentalSourceNone, nil
}

func weeklyRent(rental *models.RentalEstimate, monthlyRent float64) float64 {
	if rental != nil && rental.WeeklyRent > 0 {
		return rental.WeeklyRent
	}
	if monthlyRent > 0 {
		return monthlyRent * 12 / 52
	}
	return 0
}
