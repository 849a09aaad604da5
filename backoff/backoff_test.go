package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConstant_Delay(t *testing.T) {
	s := NewConstant(5 * time.Second)

	for _, attempt := range []int{1, 2, 10} {
		assert.Equal(t, 5*time.Second, s.Delay(attempt))
	}
}

func TestLinear_Delay(t *testing.T) {
	s := NewLinear(time.Second, 3*time.Second)

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, time.Second}, // clamped to attempt 1
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 3 * time.Second},
		{10, 3 * time.Second}, // capped at max
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Delay(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestExponential_Delay(t *testing.T) {
	s := NewExponential(time.Second, 10*time.Second)

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 8 * time.Second},
		{5, 10 * time.Second}, // capped at max
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Delay(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestExponential_NoMax(t *testing.T) {
	s := NewExponential(time.Second, 0)

	assert.Equal(t, 8*time.Second, s.Delay(4))
}

func TestExponentialWithJitter_Delay(t *testing.T) {
	s := NewExponentialWithJitter(time.Second, 4*time.Second)

	for attempt := 1; attempt <= 5; attempt++ {
		for i := 0; i < 50; i++ {
			d := s.Delay(attempt)
			assert.GreaterOrEqual(t, d, time.Duration(0))
			assert.LessOrEqual(t, d, 4*time.Second)
		}
	}
}
