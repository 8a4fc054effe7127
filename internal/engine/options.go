package engine

import "fmt"

// Default engine policy values.
const (
	DefaultSearchRadiusMiles  = 3.0
	DefaultMaxResults         = 5
	DefaultMaxAgeMonths       = 12
	DefaultBedroomTolerance   = 1
	DefaultMinConfidenceScore = 0.7
)

// Policy bounds for configurable options.
const (
	MaxSearchRadiusMiles = 20.0
	MaxMaxResults        = 20
	MaxMaxAgeMonths      = 36
)

// Options is the engine's tunable policy. The zero value is not usable;
// construct with DefaultOptions and override fields as needed.
type Options struct {
	// SearchRadiusMiles bounds the comparable-sales lookup radius.
	SearchRadiusMiles float64

	// MaxResults caps the filtered comparable set.
	MaxResults int

	// MaxAgeMonths drops comparables older than this many calendar
	// months (approximated as 30-day months).
	MaxAgeMonths int

	// BedroomTolerance is the allowed bedroom-count difference between
	// subject and comparable.
	BedroomTolerance int

	// MinConfidenceScore is the floor below which externally fetched
	// comparables are discarded at the normalization boundary.
	MinConfidenceScore float64
}

// DefaultOptions returns the engine policy defaults.
func DefaultOptions() Options {
	return Options{
		SearchRadiusMiles:  DefaultSearchRadiusMiles,
		MaxResults:         DefaultMaxResults,
		MaxAgeMonths:       DefaultMaxAgeMonths,
		BedroomTolerance:   DefaultBedroomTolerance,
		MinConfidenceScore: DefaultMinConfidenceScore,
	}
}

// Validate rejects out-of-policy option values with a field-level message.
// It runs at configuration time, before any calculation.
func (o Options) Validate() error {
	if o.SearchRadiusMiles <= 0 || o.SearchRadiusMiles > MaxSearchRadiusMiles {
		return fmt.Errorf("searchRadiusMiles must be in (0, %.0f], got %g", MaxSearchRadiusMiles, o.SearchRadiusMiles)
	}
	if o.MaxResults < 1 || o.MaxResults > MaxMaxResults {
		return fmt.Errorf("maxResults must be in [1, %d], got %d", MaxMaxResults, o.MaxResults)
	}
	if o.MaxAgeMonths < 1 || o.MaxAgeMonths > MaxMaxAgeMonths {
		return fmt.Errorf("maxAgeMonths must be in [1, %d], got %d", MaxMaxAgeMonths, o.MaxAgeMonths)
	}
	if o.BedroomTolerance < 0 {
		return fmt.Errorf("bedroomTolerance must be non-negative, got %d", o.BedroomTolerance)
	}
	if o.MinConfidenceScore < 0 || o.MinConfidenceScore > 1 {
		return fmt.Errorf("minConfidenceScore must be in [0, 1], got %g", o.MinConfidenceScore)
	}
	return nil
}
