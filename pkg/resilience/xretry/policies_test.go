package xretry

import (
	"context"
	"errors"
	"testing"

	"github.com/omeyang/adkit/pkg/core/xaderr"
)

func TestClassifiedRetryPolicy_ShouldRetry(t *testing.T) {
	ctx := context.Background()
	p := NewClassifiedRetry(3)

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limit retries", xaderr.NewRateLimit("", 0), true},
		{"retryable external retries", xaderr.NewExternal("", "UNAVAILABLE", true), true},
		{"terminal external does not retry", xaderr.NewExternal("", "BOOM", false), false},
		{"quota does not retry in worker", xaderr.NewQuotaExceeded("", ""), false},
		{"timeout does not retry in worker", xaderr.NewTimeout("", 0), false},
		{"circuit breaker does not retry in worker", xaderr.NewCircuitBreaker(""), false},
		{"validation does not retry", xaderr.NewValidation(""), false},
		{"unclassified does not retry", errors.New("plain"), false},
		{"nil does not retry", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ShouldRetry(ctx, 1, tt.err); got != tt.want {
				t.Errorf("ShouldRetry = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifiedRetryPolicy_AttemptCap(t *testing.T) {
	ctx := context.Background()
	p := NewClassifiedRetry(3)
	err := xaderr.NewRateLimit("", 0)

	if !p.ShouldRetry(ctx, 1, err) || !p.ShouldRetry(ctx, 2, err) {
		t.Error("attempts below cap should retry")
	}
	if p.ShouldRetry(ctx, 3, err) {
		t.Error("attempt at cap should not retry")
	}
	if p.MaxAttempts() != 3 {
		t.Errorf("MaxAttempts = %d, want 3", p.MaxAttempts())
	}
}

func TestNewClassifiedRetry_MinimumOne(t *testing.T) {
	if NewClassifiedRetry(0).MaxAttempts() != 1 {
		t.Error("zero attempts should clamp to 1")
	}
}

func TestFixedRetryPolicy(t *testing.T) {
	ctx := context.Background()
	p := NewFixedRetry(2)

	if !p.ShouldRetry(ctx, 1, xaderr.NewTimeout("", 0)) {
		t.Error("fixed policy retries any retryable classified error")
	}
	if p.ShouldRetry(ctx, 1, errors.New("plain")) {
		t.Error("fixed policy does not retry unclassified errors")
	}
	if p.ShouldRetry(ctx, 2, xaderr.NewTimeout("", 0)) {
		t.Error("attempt at cap should not retry")
	}
}
