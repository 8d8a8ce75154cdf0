package resilience

import "time"

// RetryConfig configures exponential backoff retry behavior.
type RetryConfig struct {
	MaxAttempts int           // Total attempts including the first call
	BaseDelay   time.Duration // Initial delay between attempts
	MaxDelay    time.Duration // Cap on the delay between attempts
	Multiplier  float64       // Exponential backoff multiplier
}

// DefaultRetryConfig returns sensible defaults for inference API retry.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   200 * time.Millisecond,
		MaxDelay:    5 * time.Second,
		Multiplier:  2.0,
	}
}

// next advances the backoff delay, respecting the configured cap.
func (rc RetryConfig) next(delay time.Duration) time.Duration {
	delay = time.Duration(float64(delay) * rc.Multiplier)
	if delay > rc.MaxDelay {
		delay = rc.MaxDelay
	}
	return delay
}
