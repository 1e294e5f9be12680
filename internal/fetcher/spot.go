package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"energy-cost-insights/internal/engine"
)

const spotPricesPath = "/v1/prices"

// SpotOptions parameterise the day-ahead market API client.
type SpotOptions struct {
	BaseURL   string
	Currency  string
	Timeout   time.Duration
	UserAgent string
}

// SpotAPI fetches hourly day-ahead prices from the market data service.
type SpotAPI struct {
	opts    SpotOptions
	logger  zerolog.Logger
	client  *http.Client
	baseURL string
}

// NewSpotAPI constructs a spot price client.
func NewSpotAPI(opts SpotOptions, logger zerolog.Logger) *SpotAPI {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &SpotAPI{
		opts:    opts,
		logger:  logger.With().Str("component", "spot_fetcher").Logger(),
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
	}
}

// FetchDay retrieves the published hourly prices for one ISO date.
func (s *SpotAPI) FetchDay(ctx context.Context, date string) ([]engine.PriceRecord, error) {
	if s.baseURL == "" {
		return nil, fmt.Errorf("prices.base_url not configured")
	}

	endpoint := fmt.Sprintf("%s%s?date=%s", s.baseURL, spotPricesPath, url.QueryEscape(date))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if ua := strings.TrimSpace(s.opts.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseHTTPError(resp.StatusCode, payload)
	}

	var body pricesResponse
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("decode prices payload: %w", err)
	}

	currency := body.Currency
	if currency == "" {
		currency = s.opts.Currency
	}

	records := make([]engine.PriceRecord, 0, len(body.Prices))
	for _, p := range body.Prices {
		records = append(records, engine.PriceRecord{
			Timestamp: p.Timestamp,
			Price:     p.Price,
			Currency:  currency,
		})
	}

	s.logger.Debug().Str("date", date).Int("records", len(records)).Msg("fetched day-ahead prices")
	return records, nil
}

type pricesResponse struct {
	Currency string `json:"currency"`
	Prices   []struct {
		Timestamp int64   `json:"timestamp"`
		Price     float64 `json:"price"`
	} `json:"prices"`
}

type errorResponse struct {
	ErrorType   string `json:"errorType"`
	Description string `json:"description"`
	Message     string `json:"message"`
}

func parseHTTPError(status int, payload []byte) error {
	var apiErr errorResponse
	if err := json.Unmarshal(payload, &apiErr); err == nil {
		if apiErr.Description != "" {
			return fmt.Errorf("spot api error (%d): %s", status, apiErr.Description)
		}
		if apiErr.Message != "" {
			return fmt.Errorf("spot api error (%d): %s", status, apiErr.Message)
		}
		if apiErr.ErrorType != "" {
			return fmt.Errorf("spot api error (%d): %s", status, apiErr.ErrorType)
		}
	}
	if len(payload) > 0 {
		return fmt.Errorf("spot api error (%d): %s", status, strings.TrimSpace(string(payload)))
	}
	return fmt.Errorf("spot api error (%d)", status)
}
