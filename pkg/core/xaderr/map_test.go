package xaderr

import (
	"errors"
	"fmt"
	"testing"
)

// codedError 测试用的上游错误。
type codedError struct {
	code string
}

func (e *codedError) Error() string     { return "upstream failure: " + e.code }
func (e *codedError) ErrorCode() string { return e.code }

func TestMapUpstream_Table(t *testing.T) {
	tests := []struct {
		code      string
		wantKind  Kind
		wantRetry bool
	}{
		{"AUTHENTICATION_ERROR", KindAuthentication, false},
		{"AUTHORIZATION_ERROR", KindAuthorization, false},
		{"QUOTA_ERROR", KindQuota, true},
		{"RESOURCE_EXHAUSTED", KindQuota, true},
		{"RATE_LIMIT_ERROR", KindRateLimit, true},
		{"INVALID_ARGUMENT", KindValidation, false},
		{"NOT_FOUND", KindNotFound, false},
		{"ALREADY_EXISTS", KindConflict, false},
		{"DEADLINE_EXCEEDED", KindTimeout, true},
		{"INTERNAL_ERROR", KindInternal, false},
		{"UNAVAILABLE", KindExternalAPI, true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			mapped := MapUpstream(&codedError{code: tt.code})
			if mapped.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", mapped.Kind, tt.wantKind)
			}
			if mapped.Retryable() != tt.wantRetry {
				t.Errorf("Retryable() = %v, want %v", mapped.Retryable(), tt.wantRetry)
			}
		})
	}
}

func TestMapUpstream_UnknownCode(t *testing.T) {
	mapped := MapUpstream(&codedError{code: "SOMETHING_NEW"})
	if mapped.Kind != KindExternalAPI {
		t.Errorf("Kind = %q, want external_api", mapped.Kind)
	}
	if mapped.Retryable() {
		t.Error("unknown upstream codes must not be retryable")
	}
	if mapped.Details["upstream_code"] != "SOMETHING_NEW" {
		t.Errorf("upstream_code detail = %v", mapped.Details["upstream_code"])
	}
}

func TestMapUpstream_NoCoder(t *testing.T) {
	mapped := MapUpstream(errors.New("connection reset"))
	if mapped.Kind != KindExternalAPI {
		t.Errorf("Kind = %q, want external_api", mapped.Kind)
	}
	if mapped.Retryable() {
		t.Error("coderless errors must not be retryable")
	}
}

func TestMapUpstream_PassThrough(t *testing.T) {
	orig := NewRateLimit("already classified", 5)
	if got := MapUpstream(orig); got != orig {
		t.Error("classified errors should pass through unchanged")
	}
	// 包装过的分类错误同样直通
	if got := MapUpstream(fmt.Errorf("wrap: %w", orig)); got != orig {
		t.Error("wrapped classified errors should pass through")
	}
}

func TestMapUpstream_Nil(t *testing.T) {
	if MapUpstream(nil) != nil {
		t.Error("nil maps to nil")
	}
}

func TestMapUpstream_KeepsCause(t *testing.T) {
	src := &codedError{code: "UNAVAILABLE"}
	mapped := MapUpstream(src)
	if !errors.Is(mapped, error(src)) {
		t.Error("mapped error should keep the upstream error as cause")
	}
}
