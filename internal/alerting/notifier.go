package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"energy-cost-insights/internal/engine"
	"energy-cost-insights/internal/timeutil"
)

// Notification carries one real-time recommendation worth pushing out.
type Notification struct {
	MeterID        string
	Bucket         time.Time
	Hour           int
	CurrentUsage   float64
	CurrentPrice   float64
	Currency       string
	Recommendation engine.Recommendation
}

// Notifier delivers recommendation alerts to an external channel.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}

// TelegramNotifier pushes alerts through the Telegram Bot API.
type TelegramNotifier struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
	logger   zerolog.Logger
}

// NewTelegramNotifier constructs a Telegram channel.
func NewTelegramNotifier(botToken, chatID, baseURL string, timeout time.Duration, logger zerolog.Logger) *TelegramNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}

	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		logger:   logger.With().Str("component", "alert_telegram").Logger(),
	}
}

// Notify sends the rendered alert via the sendMessage API.
func (n *TelegramNotifier) Notify(ctx context.Context, note Notification) error {
	payload := map[string]string{
		"chat_id": n.chatID,
		"text":    renderMessage(note),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected telegram status: %d", resp.StatusCode)
	}

	var result struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err == nil {
		if !result.OK {
			return fmt.Errorf("telegram returned ok=false")
		}
	}

	n.logger.Info().
		Str("meter_id", note.MeterID).
		Str("urgency", note.Recommendation.Urgency.String()).
		Msg("alert dispatched (telegram)")
	return nil
}

func renderMessage(note Notification) string {
	builder := strings.Builder{}
	builder.WriteString("[Electricity Cost Alert]\n")
	builder.WriteString(fmt.Sprintf("Meter: %s\n", note.MeterID))
	builder.WriteString(fmt.Sprintf("Hour: %s (%s UTC)\n", timeutil.FormatHour(note.Hour), note.Bucket.UTC().Format(time.RFC3339)))
	builder.WriteString(fmt.Sprintf("Usage: %s kWh\n", decimal.NewFromFloat(note.CurrentUsage).StringFixed(2)))
	builder.WriteString(fmt.Sprintf("Price: %s %s/kWh\n", decimal.NewFromFloat(note.CurrentPrice).StringFixed(4), note.Currency))
	builder.WriteString(fmt.Sprintf("Urgency: %s (%s)\n", note.Recommendation.Urgency, note.Recommendation.Type))
	builder.WriteString(note.Recommendation.Message)
	if note.Recommendation.PotentialSavings > 0 {
		builder.WriteString(fmt.Sprintf("\nPotential savings: %s %s",
			decimal.NewFromFloat(note.Recommendation.PotentialSavings).StringFixed(2), note.Currency))
	}
	return builder.String()
}

var _ Notifier = (*TelegramNotifier)(nil)
