package alerting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"energy-cost-insights/internal/engine"
)

func testNote() Notification {
	return Notification{
		MeterID:      "meter-main",
		Bucket:       time.Now(),
		Hour:         9,
		CurrentUsage: 22.6,
		CurrentPrice: 0.1289,
		Currency:     "BGN",
		Recommendation: engine.Recommendation{
			Type:             engine.TypePriceAlert,
			Urgency:          engine.UrgencyHigh,
			Message:          "Reduce consumption now.",
			PotentialSavings: 0.44,
		},
	}
}

func TestTelegramNotifierSuccess(t *testing.T) {
	received := make(map[string]string)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "sendMessage") {
			t.Fatalf("path should contain sendMessage, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	notifier := NewTelegramNotifier("token", "chat", srv.URL, time.Second, zerolog.Nop())
	if err := notifier.Notify(context.Background(), testNote()); err != nil {
		t.Fatalf("notify should succeed: %v", err)
	}

	if received["chat_id"] != "chat" {
		t.Fatalf("wrong chat_id: %#v", received)
	}
	if !strings.Contains(received["text"], "meter-main") || !strings.Contains(received["text"], "09:00") {
		t.Fatalf("message should name the meter and hour: %q", received["text"])
	}
}

func TestTelegramNotifierRejectsNotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false})
	}))
	defer srv.Close()

	notifier := NewTelegramNotifier("token", "chat", srv.URL, time.Second, zerolog.Nop())
	if err := notifier.Notify(context.Background(), testNote()); err == nil {
		t.Fatal("ok=false must error")
	}
}
