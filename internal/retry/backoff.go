package retry

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config configures retry behavior with exponential backoff
type Config struct {
	MaxRetries int           `json:"max_retries"` // Maximum number of retry attempts (default: 3)
	BaseDelay  time.Duration `json:"base_delay"`  // Base delay between retries (default: 1s)
	MaxDelay   time.Duration `json:"max_delay"`   // Maximum delay between retries (default: 30s)
	Multiplier float64       `json:"multiplier"`  // Exponential backoff multiplier (default: 2.0)
	Jitter     bool          `json:"jitter"`      // Add random jitter to prevent thundering herd (default: true)
}

// Result contains information about the retry operation
type Result struct {
	Attempts      int           `json:"attempts"`       // Total number of attempts made
	TotalDuration time.Duration `json:"total_duration"` // Total time spent on all attempts
	LastError     error         `json:"-"`              // Last error encountered
	Success       bool          `json:"success"`        // Whether the operation eventually succeeded
	RetryReasons  []string      `json:"retry_reasons"`  // Reasons for each retry attempt
}

// DefaultConfig returns a retry configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
		Multiplier: 2.0,
		Jitter:     true,
	}
}

// AgentConfig returns a retry configuration tuned for external agent
// backends, which are slower than ordinary HTTP calls.
func AgentConfig() Config {
	return Config{
		MaxRetries: 3,
		BaseDelay:  2 * time.Second,
		MaxDelay:   60 * time.Second,
		Multiplier: 2.5,
		Jitter:     true,
	}
}

// Do executes an operation with exponential backoff retry logic
func Do(ctx context.Context, config Config, logger zerolog.Logger, operation func() error) Result {
	startTime := time.Now()

	result := Result{
		RetryReasons: make([]string, 0),
	}

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		result.Attempts = attempt + 1

		err := operation()
		if err == nil {
			result.Success = true
			result.TotalDuration = time.Since(startTime)
			if attempt > 0 {
				logger.Debug().
					Int("retries", attempt).
					Dur("total_duration", result.TotalDuration).
					Msg("Operation succeeded after retries")
			}
			return result
		}

		result.LastError = err
		result.RetryReasons = append(result.RetryReasons, err.Error())

		if attempt >= config.MaxRetries {
			result.TotalDuration = time.Since(startTime)
			logger.Warn().
				Err(err).
				Int("attempts", result.Attempts).
				Dur("total_duration", result.TotalDuration).
				Msg("Operation failed after exhausting retries")
			return result
		}

		if ctx.Err() != nil {
			result.LastError = ctx.Err()
			result.TotalDuration = time.Since(startTime)
			return result
		}

		delay := calculateDelay(config, attempt)
		logger.Debug().
			Err(err).
			Int("attempt", attempt+1).
			Int("max_attempts", config.MaxRetries+1).
			Dur("delay", delay).
			Msg("Operation failed, waiting before retry")

		select {
		case <-ctx.Done():
			result.LastError = ctx.Err()
			result.TotalDuration = time.Since(startTime)
			return result
		case <-time.After(delay):
			// Continue to next attempt
		}
	}

	result.TotalDuration = time.Since(startTime)
	return result
}

// calculateDelay calculates the delay for the next retry attempt using exponential backoff
func calculateDelay(config Config, attempt int) time.Duration {
	// Exponential backoff: baseDelay * multiplier^attempt
	delay := float64(config.BaseDelay) * math.Pow(config.Multiplier, float64(attempt))

	if delay > float64(config.MaxDelay) {
		delay = float64(config.MaxDelay)
	}

	// Add up to 10% random jitter to prevent thundering herd
	if config.Jitter {
		jitterRange := delay * 0.1
		jitter := (rand.Float64() - 0.5) * 2 * jitterRange
		delay += jitter

		if delay < 0 {
			delay = float64(config.BaseDelay)
		}
	}

	return time.Duration(delay)
}

// IsRetryableError determines if an error is retryable
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"connection timeout",
		"timeout",
		"temporary failure",
		"service unavailable",
		"too many requests",
		"rate limit",
		"429", // HTTP 429 Too Many Requests
		"502", // HTTP 502 Bad Gateway
		"503", // HTTP 503 Service Unavailable
		"504", // HTTP 504 Gateway Timeout
		"no such host",
		"network unreachable",
		"broken pipe",
		"context deadline exceeded",
	}

	for _, retryable := range retryableErrors {
		if strings.Contains(errStr, retryable) {
			return true
		}
	}

	return false
}
