// Package faults defines the failure taxonomy shared by all layers of the
// client: sentinel errors raised by the encoder and the detector client, a
// classifier that folds any error into one of a fixed set of categories, and
// the user-facing message attached to each category.
//
// Components that produce errors wrap the matching sentinel with %w so that
// classification is driven by errors.Is rather than by message text. The
// substring fallback exists only for errors that originate outside our own
// code paths.
package faults

import (
	"errors"
	"strings"
)

// Sentinel errors. Producers wrap these with %w; Classify matches them with
// errors.Is.
var (
	ErrFileTooLarge       = errors.New("file too large")
	ErrReadFailure        = errors.New("file read failure")
	ErrAuthentication     = errors.New("authentication failed")
	ErrInvalidMedia       = errors.New("invalid media")
	ErrServiceOverloaded  = errors.New("service overloaded")
	ErrNetworkUnavailable = errors.New("network unavailable")
	ErrMalformedResponse  = errors.New("malformed response")
)

// Category identifies one class of failure. Every error in the system maps to
// exactly one category.
type Category string

const (
	CategoryFileTooLarge       Category = "file_too_large"
	CategoryReadFailure        Category = "read_failure"
	CategoryAuthentication     Category = "authentication"
	CategoryInvalidMedia       Category = "invalid_media"
	CategoryServiceOverloaded  Category = "service_overloaded"
	CategoryNetworkUnavailable Category = "network_unavailable"
	CategoryMalformedResponse  Category = "malformed_response"
	CategoryUnknown            Category = "unknown"
)

var sentinels = []struct {
	err error
	cat Category
}{
	{ErrFileTooLarge, CategoryFileTooLarge},
	{ErrReadFailure, CategoryReadFailure},
	{ErrAuthentication, CategoryAuthentication},
	{ErrInvalidMedia, CategoryInvalidMedia},
	{ErrServiceOverloaded, CategoryServiceOverloaded},
	{ErrNetworkUnavailable, CategoryNetworkUnavailable},
	{ErrMalformedResponse, CategoryMalformedResponse},
}

// fallbackRules classify errors that do not wrap one of our sentinels, by
// inspecting the lower-cased error text. First match wins, so more specific
// rules come first.
var fallbackRules = []struct {
	cat     Category
	needles []string
}{
	{CategoryFileTooLarge, []string{"file too large", "payload too large"}},
	{CategoryReadFailure, []string{"could not be read", "no such file", "permission denied"}},
	{CategoryAuthentication, []string{"401", "403", "unauthorized", "forbidden", "api key", "authentication"}},
	{CategoryInvalidMedia, []string{"400", "415", "422", "unsupported media", "unsupported format", "bad request", "invalid media"}},
	{CategoryServiceOverloaded, []string{"429", "503", "rate limit", "too many requests", "overload", "service unavailable"}},
	{CategoryNetworkUnavailable, []string{"connection refused", "no such host", "network is unreachable", "failed to fetch", "timed out", "timeout", "broken pipe", "connection reset"}},
	{CategoryMalformedResponse, []string{"unexpected response", "malformed", "unexpected end of json", "invalid character"}},
}

// Classify maps err to its failure category. It is safe on any input,
// including nil and errors from third-party code; anything it cannot
// recognize becomes CategoryUnknown.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}
	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return s.cat
		}
	}
	text := strings.ToLower(err.Error())
	for _, rule := range fallbackRules {
		for _, needle := range rule.needles {
			if strings.Contains(text, needle) {
				return rule.cat
			}
		}
	}
	return CategoryUnknown
}

// messages holds the fixed user-facing text per category. These strings are
// rendered verbatim wherever a failure is shown; do not rephrase them in
// calling code.
var messages = map[Category]string{
	CategoryFileTooLarge:       "File exceeds the 20 MiB limit. Please choose a smaller file.",
	CategoryReadFailure:        "The file could not be read. It may be corrupted or inaccessible.",
	CategoryAuthentication:     "Authentication with the analysis service failed. Check your API key.",
	CategoryInvalidMedia:       "The analysis service could not process this file. It may be in an unsupported format.",
	CategoryServiceOverloaded:  "The analysis service is overloaded right now. Please try again in a moment.",
	CategoryNetworkUnavailable: "Could not reach the analysis service. Check your network connection.",
	CategoryMalformedResponse:  "The analysis service returned an unexpected response. Please try again.",
	CategoryUnknown:            "Something went wrong during analysis. Please try again.",
}

// Message returns the fixed user-facing message for the category.
func (c Category) Message() string {
	if m, ok := messages[c]; ok {
		return m
	}
	return messages[CategoryUnknown]
}

// Retryable reports whether resubmitting the same media can possibly succeed.
// Only an oversized file is final: every other failure may be transient or
// fixable without choosing a new file.
func (c Category) Retryable() bool {
	return c != CategoryFileTooLarge
}
