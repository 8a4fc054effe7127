package provider

import (
	"strconv"
	"strings"
	"time"

	"github.com/hstraker/deal-sourcing-saas-sub001/internal/models"
)

// Provider payloads are loosely typed: numeric fields arrive as numbers
// or formatted strings, and field names differ between the provider's
// underlying data sources. This file maps them into canonical model
// values; the engine never sees raw payloads.

// normalizeComparable builds a canonical ComparableSale from one raw
// sold-price record. It rejects records without a positive price or a
// parseable sale date, and records whose confidence is below the
// configured floor.
func normalizeComparable(raw map[string]interface{}, minConfidence float64) (models.ComparableSale, bool) {
	price, ok := pickFloat(raw, "price", "sale_price", "sold_price", "amount")
	if !ok || price <= 0 {
		return models.ComparableSale{}, false
	}

	saleDate, ok := pickDate(raw, "date", "sale_date", "date_of_transfer")
	if !ok {
		return models.ComparableSale{}, false
	}

	comp := models.ComparableSale{
		SalePrice: price,
		SaleDate:  saleDate,
	}

	comp.Address, _ = pickString(raw, "address", "display_address")
	comp.Postcode, _ = pickString(raw, "postcode", "postal_code")
	comp.PropertyType, _ = pickString(raw, "type", "property_type", "propertyType")

	if bedrooms, ok := pickFloat(raw, "bedrooms", "beds"); ok && bedrooms > 0 {
		comp.Bedrooms = int(bedrooms)
	}
	if distance, ok := pickFloat(raw, "distance", "distance_miles"); ok && distance >= 0 {
		d := distance
		comp.DistanceMiles = &d
	}
	if confidence, ok := pickFloat(raw, "confidence", "accuracy"); ok {
		if confidence < minConfidence {
			return models.ComparableSale{}, false
		}
		cf := confidence
		comp.Confidence = &cf
	}

	return comp, true
}

// normalizeRentalEstimate builds a RentalEstimate from the long-let
// block. The point estimate and both confidence bounds are weekly
// figures; the monthly conversion happens in the model constructor.
func normalizeRentalEstimate(longLet map[string]interface{}) *models.RentalEstimate {
	if len(longLet) == 0 {
		return nil
	}

	weekly, ok := pickFloat(longLet, "median", "estimate", "rent")
	if !ok || weekly <= 0 {
		return nil
	}

	rangeMin, _ := pickFloat(longLet, "25pc", "lower", "min")
	rangeMax, _ := pickFloat(longLet, "75pc", "upper", "max")

	est := models.RentalEstimateFromWeekly(weekly, rangeMin, rangeMax, models.RentalSourceAPI)
	return &est
}

// pickFloat returns the first of the named fields that parses as a
// number. String values tolerate currency symbols and thousands
// separators.
func pickFloat(raw map[string]interface{}, keys ...string) (float64, bool) {
	for _, key := range keys {
		value, exists := raw[key]
		if !exists {
			continue
		}
		switch v := value.(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case string:
			cleaned := strings.NewReplacer("£", "", "$", "", ",", "", " ", "").Replace(v)
			if cleaned == "" {
				continue
			}
			if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

// pickString returns the first of the named fields holding a non-empty
// string.
func pickString(raw map[string]interface{}, keys ...string) (string, bool) {
	for _, key := range keys {
		if value, exists := raw[key]; exists {
			if s, ok := value.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s), true
			}
		}
	}
	return "", false
}

// saleDateLayouts are the date formats observed across provider data
// sources.
var saleDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
	"2006-01",
	"January 2006",
}

// pickDate returns the first of the named fields that parses under any
// known layout.
func pickDate(raw map[string]interface{}, keys ...string) (time.Time, bool) {
	value, ok := pickString(raw, keys...)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range saleDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
