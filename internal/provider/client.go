package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hstraker/deal-sourcing-saas-sub001/internal/config"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/logger"
)

// creditsPerLookup is the metered cost of one provider query. The
// provider charges per answered query, so transport failures cost
// nothing.
const creditsPerLookup = 1

// Client talks to the metered PropertyData-style API. It returns
// canonical model values only; all loose-payload handling lives in the
// normalization layer.
type Client struct {
	baseURL            string
	apiKey             string
	minConfidenceScore float64
	httpClient         *http.Client
	log                *logger.Logger
}

// NewClient builds a provider client. Comparables whose confidence falls
// below minConfidenceScore are discarded during normalization.
func NewClient(cfg config.ProviderConfig, minConfidenceScore float64, log *logger.Logger) *Client {
	return &Client{
		baseURL:            cfg.BaseURL,
		apiKey:             cfg.APIKey,
		minConfidenceScore: minConfidenceScore,
		httpClient:         &http.Client{Timeout: cfg.Timeout},
		log:                log,
	}
}

// apiResponse is the provider's envelope. The interesting payload under
// "data" is endpoint-specific and loosely typed, so it stays raw here.
type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// get issues one metered query and decodes the envelope. The returned
// credit count is what the call actually cost: zero on transport
// failures, one for any answered query.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, int, error) {
	params.Set("key", c.apiKey)

	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, creditsPerLookup, fmt.Errorf("%s returned HTTP %d", endpoint, resp.StatusCode)
	}

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, creditsPerLookup, fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	if envelope.Status != "success" {
		return nil, creditsPerLookup, fmt.Errorf("%s returned status %q: %s", endpoint, envelope.Status, envelope.Message)
	}

	return envelope.Data, creditsPerLookup, nil
}
