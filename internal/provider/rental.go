package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/hstraker/deal-sourcing-saas-sub001/internal/models"
)

// rentsData is the rental-estimate payload. The long-let block carries
// weekly figures under data-source-dependent field names.
type rentsData struct {
	LongLet map[string]interface{} `json:"long_let"`
}

// FetchRentalEstimate queries the provider for an area rent estimate.
// Returns nil (not an error) with the consumed credits when the provider
// answered but had no rent signal for the area.
func (c *Client) FetchRentalEstimate(ctx context.Context, postcode string, bedrooms int, propertyType string) (*models.RentalEstimate, int, error) {
	params := url.Values{}
	params.Set("postcode", postcode)
	if bedrooms > 0 {
		params.Set("bedrooms", strconv.Itoa(bedrooms))
	}
	if propertyType != "" {
		params.Set("type", propertyType)
	}

	data, credits, err := c.get(ctx, "rents", params)
	if err != nil {
		return nil, credits, err
	}

	var payload rentsData
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, credits, fmt.Errorf("failed to parse rents data: %w", err)
	}

	estimate := normalizeRentalEstimate(payload.LongLet)
	if estimate == nil {
		c.log.Warn("Provider returned no usable rent estimate", map[string]interface{}{
			"postcode": postcode,
			"credits":  credits,
		})
		return nil, credits, nil
	}

	c.log.Info("Fetched rental estimate", map[string]interface{}{
		"postcode":     postcode,
		"weekly_rent":  estimate.WeeklyRent,
		"monthly_rent": estimate.MonthlyRent,
		"credits":      credits,
	})

	return estimate, credits, nil
}
