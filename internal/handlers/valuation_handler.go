package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	apierrors "github.com/hstraker/deal-sourcing-saas-sub001/internal/errors"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/middleware"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/models"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/services"
)

// ValuationHandler handles valuation-related HTTP requests.
type ValuationHandler struct {
	service services.ValuationService
}

// NewValuationHandler creates a new ValuationHandler instance.
func NewValuationHandler(service services.ValuationService) *ValuationHandler {
	return &ValuationHandler{
		service: service,
	}
}

// CalculateRequest is the request body for the calculate endpoint.
// asking_price is validated by the service so a missing price maps to
// the precondition error code rather than a generic validation failure.
type CalculateRequest struct {
	AskingPrice  float64 `json:"asking_price" binding:"omitempty,gt=0"`
	Postcode     string  `json:"postcode" binding:"omitempty,max=10"`
	Bedrooms     int     `json:"bedrooms" binding:"omitempty,min=0,max=20"`
	PropertyType string  `json:"property_type" binding:"omitempty,max=50"`
	SquareFeet   float64 `json:"square_feet" binding:"omitempty,gt=0"`

	Condition    string `json:"condition" binding:"omitempty,oneof=excellent good needs_work needs_modernisation poor"`
	UrgencyLevel string `json:"urgency_level" binding:"omitempty,oneof=urgent soon flexible"`

	MotivationScore *int `json:"motivation_score" binding:"omitempty,min=0,max=10"`

	EstimatedRefurbCost float64 `json:"estimated_refurb_cost" binding:"omitempty,gte=0"`

	ManualMarketValue *float64 `json:"manual_market_value" binding:"omitempty,gt=0"`
	ManualMonthlyRent *float64 `json:"manual_monthly_rent" binding:"omitempty,gt=0"`
	ManualAnnualRent  *float64 `json:"manual_annual_rent" binding:"omitempty,gt=0"`

	LocalAverageRent float64 `json:"local_average_rent" binding:"omitempty,gte=0"`

	// Comparables is pre-fetched evidence supplied by the caller. When
	// present it is used as-is and no external lookup is made.
	Comparables []models.ComparableSale `json:"comparables" binding:"omitempty,dive"`
}

// CalculateResponse is the response body for the calculate endpoint.
type CalculateResponse struct {
	Valuation *models.ValuationResult `json:"valuation"`
}

// ValuationResponse is the response body for the get-by-ID endpoint.
type ValuationResponse struct {
	Valuation *models.ValuationResult `json:"valuation"`
}

// Calculate handles POST /api/v1/valuations.
// It runs a full valuation for the submitted subject property and
// persists the result.
func (h *ValuationHandler) Calculate(c *gin.Context) {
	log := middleware.GetLogger(c)

	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	if log != nil {
		log.Info("Processing valuation request", map[string]interface{}{
			"asking_price":         req.AskingPrice,
			"postcode":             req.Postcode,
			"supplied_comparables": len(req.Comparables),
		})
	}

	subject := mapCalculateRequest(&req)

	result, err := h.service.Calculate(c.Request.Context(), subject, req.Comparables)
	if err != nil {
		if errors.Is(err, services.ErrMissingAskingPrice) {
			apierrors.PreconditionFailed(c, "An asking price greater than zero is required")
			return
		}
		apierrors.InternalServerError(c, "Failed to calculate valuation", err)
		return
	}

	c.JSON(http.StatusCreated, CalculateResponse{Valuation: result})
}

// GetByID handles GET /api/v1/valuations/:id.
func (h *ValuationHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid valuation ID", nil)
		return
	}

	result, err := h.service.GetValuation(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrValuationNotFound) {
			apierrors.NotFound(c, "Valuation not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to load valuation", err)
		return
	}

	c.JSON(http.StatusOK, ValuationResponse{Valuation: result})
}

// GetReport handles GET /api/v1/valuations/:id/report.
// It serves the stored human-readable valuation report as plain text.
func (h *ValuationHandler) GetReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid valuation ID", nil)
		return
	}

	result, err := h.service.GetValuation(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrValuationNotFound) {
			apierrors.NotFound(c, "Valuation not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to load valuation", err)
		return
	}

	c.String(http.StatusOK, result.ValidationNotes)
}

// mapCalculateRequest converts the request DTO to the subject model.
func mapCalculateRequest(req *CalculateRequest) *models.SubjectProperty {
	return &models.SubjectProperty{
		AskingPrice:         req.AskingPrice,
		Postcode:            req.Postcode,
		Bedrooms:            req.Bedrooms,
		PropertyType:        req.PropertyType,
		SquareFeet:          req.SquareFeet,
		Condition:           models.Condition(req.Condition),
		UrgencyLevel:        models.UrgencyLevel(req.UrgencyLevel),
		MotivationScore:     req.MotivationScore,
		EstimatedRefurbCost: req.EstimatedRefurbCost,
		ManualMarketValue:   req.ManualMarketValue,
		ManualMonthlyRent:   req.ManualMonthlyRent,
		ManualAnnualRent:    req.ManualAnnualRent,
		LocalAverageRent:    req.LocalAverageRent,
	}
}
