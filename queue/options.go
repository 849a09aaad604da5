package queue

import (
	"time"

	"github.com/queuekit/queuekit/backoff"
)

// Config holds queue configuration
type Config struct {
	Concurrency     int
	MaxRetries      int
	RetryDelay      time.Duration
	Backoff         backoff.Strategy
	ShutdownTimeout time.Duration
}

// Option is a function that modifies queue configuration
type Option func(*Config)

// defaultConfig returns default configuration
func defaultConfig() *Config {
	return &Config{
		Concurrency:     3,
		MaxRetries:      2,
		RetryDelay:      5 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// WithConcurrency sets the maximum number of concurrently running jobs
func WithConcurrency(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Concurrency = n
		}
	}
}

// WithMaxRetries sets the retry attempts allowed per job after the first
// failure
func WithMaxRetries(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.MaxRetries = n
		}
	}
}

// WithRetryDelay sets the fixed delay before a failed job is re-queued
func WithRetryDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.RetryDelay = d
		}
	}
}

// WithBackoff sets the retry delay strategy, overriding WithRetryDelay
func WithBackoff(s backoff.Strategy) Option {
	return func(c *Config) {
		c.Backoff = s
	}
}

// WithShutdownTimeout sets the graceful shutdown timeout
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.ShutdownTimeout = d
		}
	}
}
