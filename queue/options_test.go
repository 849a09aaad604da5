package queue

import (
	"testing"
	"time"

	"github.com/queuekit/queuekit/backoff"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := defaultConfig()

	assert.Equal(t, 3, config.Concurrency)
	assert.Equal(t, 2, config.MaxRetries)
	assert.Equal(t, 5*time.Second, config.RetryDelay)
	assert.Equal(t, 30*time.Second, config.ShutdownTimeout)
	assert.Nil(t, config.Backoff)
}

func TestOptions(t *testing.T) {
	config := defaultConfig()
	strategy := backoff.NewExponential(time.Second, time.Minute)

	for _, opt := range []Option{
		WithConcurrency(8),
		WithMaxRetries(5),
		WithRetryDelay(time.Second),
		WithBackoff(strategy),
		WithShutdownTimeout(10 * time.Second),
	} {
		opt(config)
	}

	assert.Equal(t, 8, config.Concurrency)
	assert.Equal(t, 5, config.MaxRetries)
	assert.Equal(t, time.Second, config.RetryDelay)
	assert.Equal(t, strategy, config.Backoff)
	assert.Equal(t, 10*time.Second, config.ShutdownTimeout)
}

func TestOptions_InvalidValuesIgnored(t *testing.T) {
	config := defaultConfig()

	for _, opt := range []Option{
		WithConcurrency(0),
		WithConcurrency(-1),
		WithMaxRetries(-1),
		WithRetryDelay(-time.Second),
		WithShutdownTimeout(0),
	} {
		opt(config)
	}

	assert.Equal(t, 3, config.Concurrency)
	assert.Equal(t, 2, config.MaxRetries)
	assert.Equal(t, 5*time.Second, config.RetryDelay)
	assert.Equal(t, 30*time.Second, config.ShutdownTimeout)
}

func TestNew_DefaultBackoffIsConstant(t *testing.T) {
	q := New(newMockRegistry(), nil, WithRetryDelay(2*time.Second))

	c, ok := q.strategy.(*backoff.Constant)
	assert.True(t, ok)
	assert.Equal(t, 2*time.Second, c.Interval)
}
