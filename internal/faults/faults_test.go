package faults

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Sentinels(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"file too large", ErrFileTooLarge, CategoryFileTooLarge},
		{"read failure", ErrReadFailure, CategoryReadFailure},
		{"authentication", ErrAuthentication, CategoryAuthentication},
		{"invalid media", ErrInvalidMedia, CategoryInvalidMedia},
		{"overloaded", ErrServiceOverloaded, CategoryServiceOverloaded},
		{"network", ErrNetworkUnavailable, CategoryNetworkUnavailable},
		{"malformed", ErrMalformedResponse, CategoryMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestClassify_WrappedSentinelWinsOverText(t *testing.T) {
	// The wrapper text mentions a 403, but the wrapped sentinel is
	// authoritative and says overloaded.
	err := fmt.Errorf("status 403: %w", ErrServiceOverloaded)
	assert.Equal(t, CategoryServiceOverloaded, Classify(err))
}

func TestClassify_SubstringFallback(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"http 401", errors.New("server said: 401 Unauthorized"), CategoryAuthentication},
		{"api key", errors.New("missing API key"), CategoryAuthentication},
		{"http 422", errors.New("got 422 from upstream"), CategoryInvalidMedia},
		{"unsupported format", errors.New("unsupported format: tiff"), CategoryInvalidMedia},
		{"http 429", errors.New("429 Too Many Requests"), CategoryServiceOverloaded},
		{"rate limit", errors.New("rate limit exceeded"), CategoryServiceOverloaded},
		{"conn refused", errors.New("dial tcp 127.0.0.1:8480: connect: connection refused"), CategoryNetworkUnavailable},
		{"dns", errors.New("lookup api.example.com: no such host"), CategoryNetworkUnavailable},
		{"timeout", errors.New("request timed out"), CategoryNetworkUnavailable},
		{"bad json", errors.New("invalid character '<' looking for beginning of value"), CategoryMalformedResponse},
		{"truncated json", errors.New("unexpected end of JSON input"), CategoryMalformedResponse},
		{"oversize text", errors.New("payload too large"), CategoryFileTooLarge},
		{"missing file", errors.New("open x.png: no such file or directory"), CategoryReadFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestClassify_UnknownAndNil(t *testing.T) {
	assert.Equal(t, CategoryUnknown, Classify(nil))
	assert.Equal(t, CategoryUnknown, Classify(errors.New("weird internal condition")))
	assert.Equal(t, CategoryUnknown, Classify(context.Canceled))
}

func TestMessage_EveryCategoryHasOne(t *testing.T) {
	cats := []Category{
		CategoryFileTooLarge, CategoryReadFailure, CategoryAuthentication,
		CategoryInvalidMedia, CategoryServiceOverloaded, CategoryNetworkUnavailable,
		CategoryMalformedResponse, CategoryUnknown,
	}
	seen := map[string]Category{}
	for _, c := range cats {
		msg := c.Message()
		assert.NotEmpty(t, msg, "category %s", c)
		if prev, dup := seen[msg]; dup {
			t.Errorf("categories %s and %s share message %q", prev, c, msg)
		}
		seen[msg] = c
	}
	// Unmapped values fall back to the generic message instead of panicking.
	assert.Equal(t, CategoryUnknown.Message(), Category("bogus").Message())
}

func TestRetryable_OnlyFileTooLargeIsFinal(t *testing.T) {
	assert.False(t, CategoryFileTooLarge.Retryable())

	for _, c := range []Category{
		CategoryReadFailure, CategoryAuthentication, CategoryInvalidMedia,
		CategoryServiceOverloaded, CategoryNetworkUnavailable,
		CategoryMalformedResponse, CategoryUnknown,
	} {
		assert.True(t, c.Retryable(), "category %s", c)
	}
}
