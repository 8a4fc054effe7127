package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hstraker/deal-sourcing-saas-sub001/internal/database"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/models"
)

// ValuationRepository defines data access for persisted valuation results.
type ValuationRepository interface {
	// Create persists a valuation result.
	Create(ctx context.Context, result *models.ValuationResult) error

	// FindByID returns the stored valuation result, or nil, nil when no
	// result exists (not an error).
	FindByID(ctx context.Context, id uuid.UUID) (*models.ValuationResult, error)
}

type valuationRepository struct {
	db *database.Database
}

// NewValuationRepository creates a ValuationRepository over the database.
func NewValuationRepository(db *database.Database) ValuationRepository {
	return &valuationRepository{db: db}
}

func (r *valuationRepository) Create(ctx context.Context, result *models.ValuationResult) error {
	query := `
		INSERT INTO valuation_results (
			id, market_value, market_value_source, bmv_score,
			offer_amount, offer_percentage, profit_potential,
			validation_passed, validation_notes,
			comparables_count, comparable_confidence, credits_used,
			gross_yield, net_yield, monthly_rent, weekly_rent, annual_rent,
			rent_per_square_foot, has_good_yield, rental_data_source,
			rent_range_min, rent_range_max, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23
		)
	`

	var rentMin, rentMax *float64
	if result.RentConfidenceRange != nil {
		rentMin = &result.RentConfidenceRange.Min
		rentMax = &result.RentConfidenceRange.Max
	}

	_, err := r.db.Pool.Exec(ctx, query,
		result.ID,
		result.MarketValue,
		result.MarketValueSource,
		result.BMVScore,
		result.OfferAmount,
		result.OfferPercentage,
		result.ProfitPotential,
		result.ValidationPassed,
		result.ValidationNotes,
		result.ComparablesCount,
		result.ComparableConfidence,
		result.CreditsUsed,
		result.GrossYield,
		result.NetYield,
		result.MonthlyRent,
		result.WeeklyRent,
		result.AnnualRent,
		result.RentPerSquareFoot,
		result.HasGoodYield,
		result.RentalDataSource,
		rentMin,
		rentMax,
		result.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert valuation result %s: %w", result.ID, err)
	}
	return nil
}

func (r *valuationRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ValuationResult, error) {
	query := `
		SELECT
			id, market_value, market_value_source, bmv_score,
			offer_amount, offer_percentage, profit_potential,
			validation_passed, validation_notes,
			comparables_count, comparable_confidence, credits_used,
			gross_yield, net_yield, monthly_rent, weekly_rent, annual_rent,
			rent_per_square_foot, has_good_yield, rental_data_source,
			rent_range_min, rent_range_max, created_at
		FROM valuation_results
		WHERE id = $1
	`

	var result models.ValuationResult
	var rentMin, rentMax *float64

	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.MarketValue,
		&result.MarketValueSource,
		&result.BMVScore,
		&result.OfferAmount,
		&result.OfferPercentage,
		&result.ProfitPotential,
		&result.ValidationPassed,
		&result.ValidationNotes,
		&result.ComparablesCount,
		&result.ComparableConfidence,
		&result.CreditsUsed,
		&result.GrossYield,
		&result.NetYield,
		&result.MonthlyRent,
		&result.WeeklyRent,
		&result.AnnualRent,
		&result.RentPerSquareFoot,
		&result.HasGoodYield,
		&result.RentalDataSource,
		&rentMin,
		&rentMax,
		&result.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query valuation result %s: %w", id, err)
	}

	if rentMin != nil && rentMax != nil {
		result.RentConfidenceRange = &models.RentRange{Min: *rentMin, Max: *rentMax}
	}

	return &result, nil
}
