package engine

import (
	"fmt"
	"time"

	"github.com/c360/sparqlpath/errors"
)

// Config holds query engine settings
type Config struct {
	// QuerySubject is the NATS subject for read queries
	QuerySubject string `json:"query_subject" yaml:"query_subject"`

	// UpdateSubject is the NATS subject for mutation queries
	UpdateSubject string `json:"update_subject" yaml:"update_subject"`

	// Timeout bounds a single request/reply round trip
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxConcurrent limits in-flight queries in ExecuteAll
	MaxConcurrent int `json:"max_concurrent" yaml:"max_concurrent"`

	// RateLimit caps queries per second; zero disables limiting
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"`

	// RateBurst is the limiter's burst size when RateLimit is set
	RateBurst int `json:"rate_burst" yaml:"rate_burst"`

	// Retry controls backoff for transient failures
	Retry errors.RetryConfig `json:"retry" yaml:"retry"`
}

// SetDefaults fills zero-valued fields with working defaults
func (c *Config) SetDefaults() {
	if c.QuerySubject == "" {
		c.QuerySubject = "sparql.query"
	}
	if c.UpdateSubject == "" {
		c.UpdateSubject = "sparql.update"
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = 8
	}
	if c.RateLimit > 0 && c.RateBurst <= 0 {
		c.RateBurst = 1
	}
	if c.Retry.MaxRetries == 0 && c.Retry.InitialDelay == 0 {
		c.Retry = errors.DefaultRetryConfig()
	}
}

// Validate checks the configuration for values defaults cannot repair
func (c *Config) Validate() error {
	if c.QuerySubject == "" {
		return errors.WrapInvalid(
			fmt.Errorf("%w: query_subject", errors.ErrMissingConfig),
			"engine", "Validate", "query subject required")
	}
	if c.UpdateSubject == "" {
		return errors.WrapInvalid(
			fmt.Errorf("%w: update_subject", errors.ErrMissingConfig),
			"engine", "Validate", "update subject required")
	}
	if c.Timeout <= 0 {
		return errors.WrapInvalid(
			fmt.Errorf("%w: timeout must be positive, got %s", errors.ErrInvalidConfig, c.Timeout),
			"engine", "Validate", "invalid timeout")
	}
	if c.MaxConcurrent <= 0 {
		return errors.WrapInvalid(
			fmt.Errorf("%w: max_concurrent must be positive, got %d", errors.ErrInvalidConfig, c.MaxConcurrent),
			"engine", "Validate", "invalid concurrency bound")
	}
	if c.RateLimit < 0 {
		return errors.WrapInvalid(
			fmt.Errorf("%w: rate_limit must not be negative, got %f", errors.ErrInvalidConfig, c.RateLimit),
			"engine", "Validate", "invalid rate limit")
	}
	if c.RateLimit > 0 && c.RateBurst <= 0 {
		return errors.WrapInvalid(
			fmt.Errorf("%w: rate_burst must be positive when rate_limit is set", errors.ErrInvalidConfig),
			"engine", "Validate", "invalid rate burst")
	}
	return nil
}
