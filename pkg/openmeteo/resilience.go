package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

type RetryPolicy struct {
	MaxRetries int
	MinWait    time.Duration
	MaxWait    time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 2,
		MinWait:    500 * time.Millisecond,
		MaxWait:    5 * time.Second,
	}
}

var (
	ErrCircuitOpen = errors.New("circuit breaker open")
	ErrStatus      = errors.New("unexpected status code")
)

func newBreaker(name string) *gobreaker.CircuitBreaker[*http.Response] {
	return gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     5 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}

// retryable reports whether another attempt could succeed. 4xx other than
// 429 means the request itself is wrong.
func retryable(resp *http.Response) bool {
	if resp == nil {
		return true
	}
	return resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
}

// do runs the request through the breaker, retrying 429, 5xx and transport
// errors with exponential backoff. On success the caller owns the body.
func (c *Client) do(ctx context.Context, buildRequest func(context.Context) (*http.Request, error)) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := buildRequest(ctx)
		if err != nil {
			return nil, err
		}

		resp, err := c.breaker.Execute(func() (*http.Response, error) {
			r, doErr := c.http.Do(req)
			if doErr != nil {
				return nil, doErr
			}
			if r.StatusCode < 200 || r.StatusCode >= 300 {
				return r, fmt.Errorf("%w: %d", ErrStatus, r.StatusCode)
			}
			return r, nil
		})
		if err == nil {
			return resp, nil
		}
		if resp != nil {
			resp.Body.Close()
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}

		lastErr = err
		if !retryable(resp) || attempt == c.retry.MaxRetries {
			break
		}

		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}

func (c *Client) backoff(attempt int) time.Duration {
	delay := time.Duration(float64(c.retry.MinWait) * math.Pow(2, float64(attempt)))
	if c.retry.MaxWait > 0 && delay > c.retry.MaxWait {
		delay = c.retry.MaxWait
	}
	return delay
}
