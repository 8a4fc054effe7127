package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/hstraker/deal-sourcing-saas-sub001/internal/cache"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/engine"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/logger"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/models"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/repository"
)

// Service-level errors
var (
	// ErrMissingAskingPrice mirrors the engine precondition so handlers
	// can match on a single sentinel.
	ErrMissingAskingPrice = engine.ErrMissingAskingPrice

	ErrValuationNotFound = errors.New("valuation not found")
)

// PropertyDataClient is the metered external provider surface the
// service depends on.
type PropertyDataClient interface {
	FetchComparableSales(ctx context.Context, postcode string, bedrooms int, radiusMiles float64, maxResults int) ([]models.ComparableSale, int, error)
	FetchRentalEstimate(ctx context.Context, postcode string, bedrooms int, propertyType string) (*models.RentalEstimate, int, error)
}

// DataCache is the zero-cost store checked before any metered lookup.
type DataCache interface {
	GetComparables(ctx context.Context, key string) ([]models.ComparableSale, bool, error)
	SetComparables(ctx context.Context, key string, comps []models.ComparableSale) error
	GetRental(ctx context.Context, key string) (*models.RentalEstimate, bool, error)
	SetRental(ctx context.Context, key string, est *models.RentalEstimate) error
}

// CreditRecorder tracks metered usage for the month.
type CreditRecorder interface {
	Record(ctx context.Context, used int) int64
}

// ValuationService runs deal valuations: it resolves external data,
// invokes the engine, and persists the result with its audit event.
type ValuationService interface {
	// Calculate values a subject property. cachedComparables, when
	// non-empty, is caller-vetted evidence used verbatim at zero credit
	// cost. Returns ErrMissingAskingPrice when the precondition fails.
	Calculate(ctx context.Context, subject *models.SubjectProperty, cachedComparables []models.ComparableSale) (*models.ValuationResult, error)

	// GetValuation returns a stored result.
	// Returns ErrValuationNotFound when no result exists.
	GetValuation(ctx context.Context, id uuid.UUID) (*models.ValuationResult, error)
}

type valuationService struct {
	eng      *engine.Engine
	provider PropertyDataClient
	cache    DataCache
	meter    CreditRecorder
	results  repository.ValuationRepository
	events   repository.EventRepository
	log      *logger.Logger
}

// NewValuationService wires the valuation pipeline.
func NewValuationService(
	eng *engine.Engine,
	provider PropertyDataClient,
	dataCache DataCache,
	meter CreditRecorder,
	results repository.ValuationRepository,
	events repository.EventRepository,
	log *logger.Logger,
) ValuationService {
	return &valuationService{
		eng:      eng,
		provider: provider,
		cache:    dataCache,
		meter:    meter,
		results:  results,
		events:   events,
		log:      log,
	}
}

func (s *valuationService) Calculate(ctx context.Context, subject *models.SubjectProperty, cachedComparables []models.ComparableSale) (*models.ValuationResult, error) {
	// Reject the precondition failure before spending any credits.
	if subject == nil || subject.AskingPrice <= 0 {
		return nil, ErrMissingAskingPrice
	}

	// The two external lookups are independent; issue them concurrently
	// and join before the dependent computations run. Each degrades on
	// its own: comparables fall back to the estimator chain, rental
	// falls back to source "none".
	var (
		wg            sync.WaitGroup
		comps         []models.ComparableSale
		compsCredits  int
		rental        *models.RentalEstimate
		rentalCredits int
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		comps, compsCredits = s.resolveComparables(ctx, subject, cachedComparables)
	}()
	go func() {
		defer wg.Done()
		rental, rentalCredits = s.resolveRental(ctx, subject)
	}()
	wg.Wait()

	creditsUsed := compsCredits + rentalCredits

	result, err := s.eng.Calculate(engine.Input{
		Subject:     subject,
		Comparables: comps,
		Rental:      rental,
		CreditsUsed: creditsUsed,
	})
	if err != nil {
		return nil, err
	}

	if creditsUsed > 0 {
		s.meter.Record(ctx, creditsUsed)
	}

	if err := s.results.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to persist valuation: %w", err)
	}

	// Audit loss must not fail a calculation that already completed and
	// persisted; it is surfaced through logs instead.
	event := models.NewPipelineEvent(subject, result)
	if err := s.events.Append(ctx, &event); err != nil {
		s.log.Error("Failed to append pipeline event", err, map[string]interface{}{
			"valuation_id": result.ID.String(),
			"event_type":   string(event.EventType),
		})
	}

	return result, nil
}

func (s *valuationService) GetValuation(ctx context.Context, id uuid.UUID) (*models.ValuationResult, error) {
	result, err := s.results.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load valuation: %w", err)
	}
	if result == nil {
		return nil, ErrValuationNotFound
	}
	return result, nil
}

// resolveComparables finds comparable evidence at the lowest available
// cost: caller-supplied set, then the 24h cache, then the metered
// provider. Lookup failures degrade to no evidence.
func (s *valuationService) resolveComparables(ctx context.Context, subject *models.SubjectProperty, cached []models.ComparableSale) ([]models.ComparableSale, int) {
	if len(cached) > 0 {
		s.log.Debug("Using caller-supplied comparables", map[string]interface{}{
			"count": len(cached),
		})
		return cached, 0
	}
	if subject.Postcode == "" {
		return nil, 0
	}

	opts := s.eng.Options()
	key := cache.ComparablesKey(subject.Postcode, subject.Bedrooms, opts.SearchRadiusMiles)

	comps, hit, err := s.cache.GetComparables(ctx, key)
	if err != nil {
		s.log.Warn("Comparables cache unavailable", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
	if hit {
		s.log.Info("Comparables cache hit", map[string]interface{}{
			"key":   key,
			"count": len(comps),
		})
		return comps, 0
	}

	comps, creditsUsed, err := s.provider.FetchComparableSales(ctx, subject.Postcode, subject.Bedrooms, opts.SearchRadiusMiles, opts.MaxResults)
	if err != nil {
		s.log.Warn("Comparable lookup failed, degrading to fallback valuation", map[string]interface{}{
			"postcode": subject.Postcode,
			"error":    err.Error(),
		})
		return nil, creditsUsed
	}

	if len(comps) > 0 {
		if err := s.cache.SetComparables(ctx, key, comps); err != nil {
			s.log.Warn("Failed to cache comparables", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	return comps, creditsUsed
}

// resolveRental finds the area rent signal. A manual entry wins without
// cost; otherwise cache, then the metered provider. Lookup failures
// degrade to no signal.
func (s *valuationService) resolveRental(ctx context.Context, subject *models.SubjectProperty) (*models.RentalEstimate, int) {
	if subject.HasManualRent() || subject.Postcode == "" {
		return nil, 0
	}

	key := cache.RentalKey(subject.Postcode, subject.Bedrooms, subject.PropertyType)

	est, hit, err := s.cache.GetRental(ctx, key)
	if err != nil {
		s.log.Warn("Rental cache unavailable", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
	if hit {
		s.log.Info("Rental cache hit", map[string]interface{}{"key": key})
		return est, 0
	}

	est, creditsUsed, err := s.provider.FetchRentalEstimate(ctx, subject.Postcode, subject.Bedrooms, subject.PropertyType)
	if err != nil {
		s.log.Warn("Rental lookup failed, continuing without rent signal", map[string]interface{}{
			"postcode": subject.Postcode,
			"error":    err.Error(),
		})
		return nil, creditsUsed
	}

	if est != nil {
		if err := s.cache.SetRental(ctx, key, est); err != nil {
			s.log.Warn("Failed to cache rental estimate", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	return est, creditsUsed
}
