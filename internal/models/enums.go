package models

// Condition describes the reported state of repair of a subject property.
type Condition string

const (
	ConditionExcellent          Condition = "excellent"
	ConditionGood               Condition = "good"
	ConditionNeedsWork          Condition = "needs_work"
	ConditionNeedsModernisation Condition = "needs_modernisation"
	ConditionPoor               Condition = "poor"
)

// Valid reports whether the condition is one of the recognized values.
// An empty condition is valid and means "not reported".
func (c Condition) Valid() bool {
	switch c {
	case "", ConditionExcellent, ConditionGood, ConditionNeedsWork,
		ConditionNeedsModernisation, ConditionPoor:
		return true
	}
	return false
}

// UrgencyLevel describes how quickly the vendor needs to complete.
type UrgencyLevel string

const (
	UrgencyUrgent   UrgencyLevel = "urgent"
	UrgencySoon     UrgencyLevel = "soon"
	UrgencyFlexible UrgencyLevel = "flexible"
)

// Valid reports whether the urgency level is recognized.
// An empty urgency is valid and means "not reported".
func (u UrgencyLevel) Valid() bool {
	switch u {
	case "", UrgencyUrgent, UrgencySoon, UrgencyFlexible:
		return true
	}
	return false
}

// MarketValueSource labels where a market value figure came from, in
// decreasing order of evidential strength.
type MarketValueSource string

const (
	SourceComparableSales MarketValueSource = "comparable_sales"
	SourceManualEntry     MarketValueSource = "manual_entry"
	SourceEstimated       MarketValueSource = "estimated"
)

// RentalSource labels where the area rent signal came from.
type RentalSource string

const (
	RentalSourceManual RentalSource = "manual_entry"
	RentalSourceAPI    RentalSource = "propertydata_api"
	RentalSourceNone   RentalSource = "none"
)

// ConfidenceTier is a coarse reliability label for a comparable set.
type ConfidenceTier string

const (
	ConfidenceHigh   ConfidenceTier = "HIGH"
	ConfidenceMedium ConfidenceTier = "MEDIUM"
	ConfidenceLow    ConfidenceTier = "LOW"
)

// EventType discriminates pipeline audit events.
type EventType string

const (
	EventDealValidated EventType = "deal_validated"
	EventDealRejected  EventType = "deal_rejected"
)
