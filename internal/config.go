package internal

import (
	"fmt"
	"time"

	"feedwatch/errors"
)

type Config struct {
	LogLevel        string `env:"LOG_LEVEL,required=true"`
	NumberOfWorkers int    `env:"NUMBER_OF_WORKERS,required=true"`
	MaxEvidence     int    `env:"MAX_EVIDENCE,required=true"`

	ModelEndpoint   string        `env:"MODEL_ENDPOINT"`
	ModelAPIKey     string        `env:"MODEL_API_KEY"`
	ModelTimeout    time.Duration `env:"MODEL_TIMEOUT,required=true"`
	ModelMaxRetries int           `env:"MODEL_MAX_RETRIES,required=true"`
	ModelBackoff    time.Duration `env:"MODEL_BACKOFF,required=true"`

	RateLimit          int           `env:"RATE_LIMIT,required=true"`
	RateWindow         time.Duration `env:"RATE_WINDOW,required=true"`
	RateBufferFraction float64       `env:"RATE_BUFFER_FRACTION,required=true"`

	FeedEndpoint    string        `env:"FEED_ENDPOINT"`
	FeedBearerToken string        `env:"FEED_BEARER_TOKEN"`
	FeedTimeout     time.Duration `env:"FEED_TIMEOUT,required=true"`
	MaxFeedResults  int           `env:"MAX_FEED_RESULTS,required=true"`
}

// Validate fails fast: a broken configuration is fatal at startup, never
// recovered per-item.
func (c Config) Validate() error {
	if c.NumberOfWorkers < 1 {
		return fmt.Errorf("%w: NUMBER_OF_WORKERS must be at least 1", errors.ErrInvalidConfig)
	}
	if c.ModelTimeout <= 0 {
		return fmt.Errorf("%w: MODEL_TIMEOUT must be positive", errors.ErrInvalidConfig)
	}
	if c.ModelMaxRetries < 0 {
		return fmt.Errorf("%w: MODEL_MAX_RETRIES must not be negative", errors.ErrInvalidConfig)
	}
	if c.RateLimit < 1 {
		return fmt.Errorf("%w: RATE_LIMIT must be at least 1", errors.ErrInvalidConfig)
	}
	if c.RateBufferFraction < 0 || c.RateBufferFraction >= 1 {
		return fmt.Errorf("%w: RATE_BUFFER_FRACTION must be in [0,1)", errors.ErrInvalidConfig)
	}
	if c.MaxFeedResults < 1 || c.MaxFeedResults > 100 {
		return fmt.Errorf("%w: MAX_FEED_RESULTS must be in [1,100]", errors.ErrInvalidConfig)
	}
	return nil
}
