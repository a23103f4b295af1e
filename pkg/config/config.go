package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"SignalForge/internal/domain/repository"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Exchange struct {
		BaseURL      string        `yaml:"base_url"`
		WebSocketURL string        `yaml:"websocket_url"`
		Resolution   string        `yaml:"resolution"`
		CandleLimit  int           `yaml:"candle_limit"`
		Timeout      time.Duration `yaml:"timeout"`
		// StreamEnabled turns on the live mark-price feed; without it the
		// REST ticker is the only price source.
		StreamEnabled  bool          `yaml:"stream_enabled"`
		Symbols        []string      `yaml:"symbols"`
		ReconnectDelay time.Duration `yaml:"reconnect_delay"`
		PingInterval   time.Duration `yaml:"ping_interval"`
		// StalePriceAfter bounds how old a streamed price may be before the
		// engine falls back to the REST ticker.
		StalePriceAfter time.Duration `yaml:"stale_price_after"`
	} `yaml:"exchange"`
	Telegram struct {
		Enabled  bool   `yaml:"enabled"`
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Engine struct {
		MinConfidence   float64 `yaml:"min_confidence"`
		MinRiskReward   float64 `yaml:"min_risk_reward"`
		Leverage        int     `yaml:"leverage"`
		StrictGates     bool    `yaml:"strict_gates"`
		TrendLength     int     `yaml:"trend_length"`
		TrendMultiplier float64 `yaml:"trend_multiplier"`
		SessionFilter   bool    `yaml:"session_filter"`
	} `yaml:"engine"`
	Execution struct {
		Enabled   bool    `yaml:"enabled"`
		OrderSize float64 `yaml:"order_size"`
	} `yaml:"execution"`
	Cache struct {
		Type string        `yaml:"type"` // "memory" or "redis"
		TTL  time.Duration `yaml:"ttl"`
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Kafka struct {
		Enabled       bool     `yaml:"enabled"`
		Brokers       []string `yaml:"brokers"`
		Topic         string   `yaml:"topic"`
		ErrorLogTopic string   `yaml:"error_log_topic"`
		RequiredAcks  int      `yaml:"required_acks"`
		Compression   string   `yaml:"compression"`
		Producer      struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
		c.Telegram.Enabled = true
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.Exchange.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("EXCHANGE_BASE_URL"); v != "" {
		c.Exchange.BaseURL = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
		c.Kafka.Enabled = true
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Exchange.BaseURL == "" {
		c.Exchange.BaseURL = "https://api.delta.exchange"
	}
	if c.Exchange.Resolution == "" {
		c.Exchange.Resolution = "60"
	}
	if c.Exchange.CandleLimit == 0 {
		c.Exchange.CandleLimit = 100
	}
	if c.Exchange.Timeout == 0 {
		c.Exchange.Timeout = 10 * time.Second
	}
	if c.Exchange.StalePriceAfter == 0 {
		c.Exchange.StalePriceAfter = 30 * time.Second
	}
	if c.Engine.MinConfidence == 0 {
		c.Engine.MinConfidence = 0.65
	}
	if c.Engine.MinRiskReward == 0 {
		c.Engine.MinRiskReward = 2.0
	}
	if c.Engine.Leverage == 0 {
		c.Engine.Leverage = 10
	}
	if c.Engine.TrendLength == 0 {
		c.Engine.TrendLength = 10
	}
	if c.Engine.TrendMultiplier == 0 {
		c.Engine.TrendMultiplier = 3.0
	}
	if c.Cache.Type == "" {
		c.Cache.Type = "memory"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 30 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Cache.Type != "memory" && c.Cache.Type != "redis" {
		return fmt.Errorf("cache.type must be 'memory' or 'redis', got '%s'", c.Cache.Type)
	}
	if c.Cache.Type == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required for redis cache")
	}
	if c.Telegram.Enabled && (c.Telegram.BotToken == "" || c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id are required when telegram is enabled")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.Exchange.StreamEnabled && c.Exchange.WebSocketURL == "" {
		return fmt.Errorf("exchange.websocket_url is required when the stream is enabled")
	}
	if !repository.IsValidResolution(c.Exchange.Resolution) {
		return fmt.Errorf("exchange.resolution %q is not supported", c.Exchange.Resolution)
	}
	if c.Engine.MinConfidence < 0 || c.Engine.MinConfidence >= 1 {
		return fmt.Errorf("engine.min_confidence must be in [0,1)")
	}
	return nil
}
