package models

import (
	"time"

	"github.com/google/uuid"
)

// PipelineEvent is an append-only audit record emitted once per
// calculation. Events are write-once and never mutated.
type PipelineEvent struct {
	ID          uuid.UUID     `json:"id"`
	ValuationID uuid.UUID     `json:"valuation_id"`
	EventType   EventType     `json:"event_type"`
	Snapshot    EventSnapshot `json:"snapshot"`
	CreatedAt   time.Time     `json:"created_at"`
}

// EventSnapshot captures the key numbers of a calculation at the moment
// the verdict was reached.
type EventSnapshot struct {
	AskingPrice       float64           `json:"asking_price"`
	MarketValue       float64           `json:"market_value"`
	MarketValueSource MarketValueSource `json:"market_value_source"`
	BMVScore          float64           `json:"bmv_score"`
	OfferAmount       float64           `json:"offer_amount"`
	OfferPercentage   float64           `json:"offer_percentage"`
	ProfitPotential   float64           `json:"profit_potential"`
	GrossYield        float64           `json:"gross_yield"`
	ComparablesCount  int               `json:"comparables_count"`
	CreditsUsed       int               `json:"credits_used"`
}

// NewPipelineEvent builds the audit event for a finished calculation.
func NewPipelineEvent(subject *SubjectProperty, result *ValuationResult) PipelineEvent {
	eventType := EventDealRejected
	if result.ValidationPassed {
		eventType = EventDealValidated
	}
	return PipelineEvent{
		ID:          uuid.New(),
		ValuationID: result.ID,
		EventType:   eventType,
		Snapshot: EventSnapshot{
			AskingPrice:       subject.AskingPrice,
			MarketValue:       result.MarketValue,
			MarketValueSource: result.MarketValueSource,
			BMVScore:          result.BMVScore,
			OfferAmount:       result.OfferAmount,
			OfferPercentage:   result.OfferPercentage,
			ProfitPotential:   result.ProfitPotential,
			GrossYield:        result.GrossYield,
			ComparablesCount:  result.ComparablesCount,
			CreditsUsed:       result.CreditsUsed,
		},
		CreatedAt: time.Now().UTC(),
	}
}
