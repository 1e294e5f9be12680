package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"energy-cost-insights/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Logging   logging.Config  `mapstructure:"logging"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Prices    PricesConfig    `mapstructure:"prices"`
	Alerting  AlertingConfig  `mapstructure:"alerting"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Export    ExportConfig    `mapstructure:"export"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// DatabaseConfig encapsulates PostgreSQL connectivity.
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// SchedulerConfig governs the monitor cadence.
type SchedulerConfig struct {
	Interval        time.Duration `mapstructure:"interval"`
	AlignToBucket   bool          `mapstructure:"align_to_bucket"`
	AdvisoryLockKey int64         `mapstructure:"advisory_lock_key"`
	StartupDelay    time.Duration `mapstructure:"startup_delay"`
}

// EngineConfig tunes the calculation heuristics.
type EngineConfig struct {
	Timezone                string  `mapstructure:"timezone"`
	HighPriceMultiplier     float64 `mapstructure:"high_price_multiplier"`
	LowPriceMultiplier      float64 `mapstructure:"low_price_multiplier"`
	HighUsageMultiplier     float64 `mapstructure:"high_usage_multiplier"`
	SavingsFraction         float64 `mapstructure:"savings_fraction"`
	RealtimeSavingsFraction float64 `mapstructure:"realtime_savings_fraction"`
	MaxSuggestions          int     `mapstructure:"max_suggestions"`
	TimeHints               bool    `mapstructure:"time_hints"`
	EarlyMorningTips        bool    `mapstructure:"early_morning_tips"`
}

// PricesConfig captures the day-ahead market API connectivity.
type PricesConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Currency       string        `mapstructure:"currency"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// AlertingConfig defines recommendation alert routing.
type AlertingConfig struct {
	Enabled    bool           `mapstructure:"enabled"`
	MinUrgency string         `mapstructure:"min_urgency"`
	Telegram   TelegramConfig `mapstructure:"telegram"`
}

// TelegramConfig describes the Telegram bot channel.
type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	APIBase  string `mapstructure:"api_base"`
}

// AnalysisConfig bounds on-demand analysis requests.
type AnalysisConfig struct {
	MaxRangeDays int `mapstructure:"max_range_days"`
}

// ExportConfig sets CLI export behaviour.
type ExportConfig struct {
	MaxDataPoints int `mapstructure:"max_data_points"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ENCOST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "encost")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("scheduler.interval", "1h")
	v.SetDefault("scheduler.align_to_bucket", true)
	v.SetDefault("scheduler.advisory_lock_key", int64(0x656e6373))
	v.SetDefault("scheduler.startup_delay", "0s")

	v.SetDefault("engine.timezone", "Europe/Sofia")
	v.SetDefault("engine.high_price_multiplier", 1.2)
	v.SetDefault("engine.low_price_multiplier", 0.8)
	v.SetDefault("engine.high_usage_multiplier", 1.5)
	v.SetDefault("engine.savings_fraction", 0.1)
	v.SetDefault("engine.realtime_savings_fraction", 0.15)
	v.SetDefault("engine.max_suggestions", 5)
	v.SetDefault("engine.time_hints", true)
	v.SetDefault("engine.early_morning_tips", true)

	v.SetDefault("prices.currency", "BGN")
	v.SetDefault("prices.request_timeout", "10s")
	v.SetDefault("prices.user_agent", "encost/1.0")

	v.SetDefault("alerting.enabled", false)
	v.SetDefault("alerting.min_urgency", "high")
	v.SetDefault("alerting.telegram.enabled", false)
	v.SetDefault("alerting.telegram.api_base", "https://api.telegram.org")

	v.SetDefault("analysis.max_range_days", 31)

	v.SetDefault("export.max_data_points", 100000)

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Scheduler.Interval <= 0 {
		return fmt.Errorf("scheduler.interval must be greater than zero")
	}
	if c.Engine.HighPriceMultiplier <= 1 {
		return fmt.Errorf("engine.high_price_multiplier must be greater than one")
	}
	if c.Engine.LowPriceMultiplier <= 0 || c.Engine.LowPriceMultiplier >= 1 {
		return fmt.Errorf("engine.low_price_multiplier must be between zero and one")
	}
	if c.Engine.HighUsageMultiplier <= 1 {
		return fmt.Errorf("engine.high_usage_multiplier must be greater than one")
	}
	if c.Engine.MaxSuggestions <= 0 {
		return fmt.Errorf("engine.max_suggestions must be greater than zero")
	}
	if c.Analysis.MaxRangeDays <= 0 {
		return fmt.Errorf("analysis.max_range_days must be greater than zero")
	}
	if c.Export.MaxDataPoints <= 0 {
		return fmt.Errorf("export.max_data_points must be greater than zero")
	}
	switch c.Alerting.MinUrgency {
	case "low", "medium", "high":
	default:
		return fmt.Errorf("alerting.min_urgency must be one of low, medium, high")
	}
	if c.Alerting.Telegram.Enabled {
		if c.Alerting.Telegram.BotToken == "" {
			return fmt.Errorf("alerting.telegram.bot_token is required when telegram is enabled")
		}
		if c.Alerting.Telegram.ChatID == "" {
			return fmt.Errorf("alerting.telegram.chat_id is required when telegram is enabled")
		}
	}
	return nil
}

// ResolveMaxPoints returns either the CLI override or config default.
func (c *Config) ResolveMaxPoints(override int) int {
	if override > 0 {
		return override
	}
	return c.Export.MaxDataPoints
}
