package xretry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/omeyang/adkit/pkg/core/xaderr"
)

// fastRetryer 无退避的分类重试器，保持测试即时完成。
func fastRetryer(maxAttempts int) *Retryer {
	return NewRetryer(
		WithRetryPolicy(NewClassifiedRetry(maxAttempts)),
		WithBackoffPolicy(NewFixedBackoff(0)),
	)
}

func TestRetryer_FirstSuccess(t *testing.T) {
	calls := 0
	err := fastRetryer(3).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

// 场景：瞬时失败两次后成功——最多 3 次尝试内返回成功。
func TestRetryer_TransientThenSuccess(t *testing.T) {
	calls := 0
	result, err := DoWithResult(context.Background(), fastRetryer(3), func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", xaderr.NewExternal("flaky", "UNAVAILABLE", true)
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("DoWithResult failed: %v", err)
	}
	if result != "ok" || calls != 3 {
		t.Errorf("result = %q after %d calls, want ok after 3", result, calls)
	}
}

// 重试幂等性：底层调用至多 maxAttempts 次，耗尽后返回最后一个错误。
func TestRetryer_ExhaustionReturnsLastError(t *testing.T) {
	calls := 0
	last := xaderr.NewRateLimit("persistent", 1)
	err := fastRetryer(3).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return last
	})
	if calls != 3 {
		t.Errorf("calls = %d, want exactly 3", calls)
	}
	if !errors.Is(err, last) {
		t.Errorf("err = %v, want the last error", err)
	}
}

func TestRetryer_TerminalErrorNoRetry(t *testing.T) {
	calls := 0
	err := fastRetryer(3).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return xaderr.NewValidation("bad input")
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on terminal errors)", calls)
	}
	if !xaderr.IsKind(err, xaderr.KindValidation) {
		t.Errorf("err = %v", err)
	}
}

func TestRetryer_QuotaNotRetriedInWorker(t *testing.T) {
	calls := 0
	err := fastRetryer(3).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return xaderr.NewQuotaExceeded("upstream quota", "")
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (quota surfaces upward)", calls)
	}
	if !xaderr.IsKind(err, xaderr.KindQuota) {
		t.Errorf("err = %v", err)
	}
}

func TestRetryer_OnRetryCallback(t *testing.T) {
	var attempts []int
	r := NewRetryer(
		WithRetryPolicy(NewClassifiedRetry(3)),
		WithBackoffPolicy(NewFixedBackoff(0)),
		WithOnRetry(func(attempt int, err error) {
			attempts = append(attempts, attempt)
		}),
	)

	calls := 0
	_ = r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return xaderr.NewRateLimit("", 0)
	})

	if len(attempts) != 2 {
		t.Fatalf("onRetry fired %d times, want 2 (between 3 attempts)", len(attempts))
	}
	if attempts[0] != 1 || attempts[1] != 2 {
		t.Errorf("attempts = %v, want [1 2]", attempts)
	}
}

func TestRetryer_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	r := NewRetryer(
		WithRetryPolicy(NewClassifiedRetry(10)),
		WithBackoffPolicy(NewFixedBackoff(50*time.Millisecond)),
	)

	calls := 0
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	err := r.Do(ctx, func(ctx context.Context) error {
		calls++
		return xaderr.NewRateLimit("", 0)
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls < 1 {
		t.Error("function should have run at least once")
	}
}

func TestRetryer_NilChecks(t *testing.T) {
	var nilRetryer *Retryer
	if err := nilRetryer.Do(context.Background(), func(ctx context.Context) error { return nil }); !errors.Is(err, ErrNilRetryer) {
		t.Errorf("expected ErrNilRetryer, got %v", err)
	}
	if err := fastRetryer(1).Do(context.Background(), nil); !errors.Is(err, ErrNilFunc) {
		t.Errorf("expected ErrNilFunc, got %v", err)
	}
	if _, err := DoWithResult[int](context.Background(), nil, func(ctx context.Context) (int, error) { return 0, nil }); !errors.Is(err, ErrNilRetryer) {
		t.Errorf("expected ErrNilRetryer, got %v", err)
	}
}
