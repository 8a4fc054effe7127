package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/hstraker/deal-sourcing-saas-sub001/internal/models"
)

// soldPricesData is the sold-prices payload. Individual records stay raw
// because field names vary between provider data sources.
type soldPricesData struct {
	RawData []map[string]interface{} `json:"raw_data"`
}

// FetchComparableSales queries the provider for recently sold properties
// near the postcode and returns canonical comparables plus the credits
// the lookup consumed. An answered query with no usable records returns
// an empty slice, not an error: absence of evidence is not a failure.
func (c *Client) FetchComparableSales(ctx context.Context, postcode string, bedrooms int, radiusMiles float64, maxResults int) ([]models.ComparableSale, int, error) {
	params := url.Values{}
	params.Set("postcode", postcode)
	params.Set("radius", strconv.FormatFloat(radiusMiles, 'f', -1, 64))
	params.Set("max_age", "12")
	if bedrooms > 0 {
		params.Set("bedrooms", strconv.Itoa(bedrooms))
	}

	data, credits, err := c.get(ctx, "sold-prices", params)
	if err != nil {
		return nil, credits, err
	}

	var payload soldPricesData
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, credits, fmt.Errorf("failed to parse sold-prices data: %w", err)
	}

	comps := make([]models.ComparableSale, 0, len(payload.RawData))
	dropped := 0
	for _, raw := range payload.RawData {
		comp, ok := normalizeComparable(raw, c.minConfidenceScore)
		if !ok {
			dropped++
			continue
		}
		if len(comps) < maxResults || maxResults <= 0 {
			comps = append(comps, comp)
		}
	}

	c.log.Info("Fetched comparable sales", map[string]interface{}{
		"postcode": postcode,
		"returned": len(payload.RawData),
		"usable":   len(comps),
		"dropped":  dropped,
		"credits":  credits,
	})

	return comps, credits, nil
}
