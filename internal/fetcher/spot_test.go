package fetcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func noopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestSpotFetchMissingBaseURL(t *testing.T) {
	s := NewSpotAPI(SpotOptions{}, noopLogger())
	if _, err := s.FetchDay(context.Background(), "2025-01-15"); err == nil {
		t.Fatal("missing base URL must error")
	}
}

func TestSpotFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"description": "no prices published"})
	}))
	defer srv.Close()

	s := NewSpotAPI(SpotOptions{BaseURL: srv.URL, Timeout: time.Second}, noopLogger())
	if _, err := s.FetchDay(context.Background(), "2025-01-15"); err == nil {
		t.Fatal("HTTP 404 must surface as an error")
	}
}

func TestSpotFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("date"); got != "2025-01-15" {
			t.Fatalf("expected date query param, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"currency": "BGN",
			"prices": []map[string]any{
				{"timestamp": 1736892000, "price": 0.0912},
				{"timestamp": 1736895600, "price": 0.0987},
			},
		})
	}))
	defer srv.Close()

	s := NewSpotAPI(SpotOptions{BaseURL: srv.URL, Currency: "EUR", Timeout: time.Second, UserAgent: "test"}, noopLogger())
	records, err := s.FetchDay(context.Background(), "2025-01-15")
	if err != nil {
		t.Fatalf("successful response must not error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Price != 0.0912 || records[0].Currency != "BGN" {
		t.Fatalf("payload currency should win over the configured one: %+v", records[0])
	}
}

func TestSpotFetchFallbackCurrency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"prices": []map[string]any{{"timestamp": 1736892000, "price": 0.1}},
		})
	}))
	defer srv.Close()

	s := NewSpotAPI(SpotOptions{BaseURL: srv.URL, Currency: "BGN", Timeout: time.Second}, noopLogger())
	records, err := s.FetchDay(context.Background(), "2025-01-15")
	if err != nil {
		t.Fatal(err)
	}
	if records[0].Currency != "BGN" {
		t.Fatalf("configured currency should fill a missing payload field: %+v", records[0])
	}
}
