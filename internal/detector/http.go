package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/synthscan/synthscan/internal/faults"
	"github.com/synthscan/synthscan/internal/models"
)

// maxResponseBytes caps how much of a detector response is read. Verdicts are
// small; anything larger is garbage.
const maxResponseBytes = 1 << 20

// HTTPClient talks to the detector inference API over HTTP/JSON.
//
// Endpoints:
//
//	POST {base}/v1/analyses  — submit media, receive a verdict
//	GET  {base}/v1/health    — liveness probe
type HTTPClient struct {
	baseURL string
	hc      *http.Client

	mu     sync.RWMutex
	apiKey string
}

// NewHTTPClient returns a client for the API at baseURL. The timeout bounds
// each request end to end; an empty apiKey sends unauthenticated requests,
// which the service answers with an authentication error.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		hc:      &http.Client{Timeout: timeout},
	}
}

// SetAPIKey replaces the key used for subsequent requests. In-flight
// requests keep the key they started with.
func (c *HTTPClient) SetAPIKey(key string) {
	c.mu.Lock()
	c.apiKey = key
	c.mu.Unlock()
}

func (c *HTTPClient) currentAPIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

type analyzeRequest struct {
	Media       string `json:"media"`
	ContentType string `json:"content_type"`
}

// analyzeResponse is the wire form of a verdict. Required fields are pointers
// so that "absent" is distinguishable from a zero value.
type analyzeResponse struct {
	IsSynthetic       *bool            `json:"is_synthetic"`
	ConfidenceScore   *float64         `json:"confidence_score"`
	VerdictSummary    string           `json:"verdict_summary"`
	ReasoningPoints   []string         `json:"reasoning_points"`
	ArtifactsFound    []string         `json:"artifacts_found"`
	TechnicalFindings findingsResponse `json:"technical_findings"`
}

type findingsResponse struct {
	LightingConsistency string `json:"lighting_consistency"`
	TextureQuality      string `json:"texture_quality"`
	AnatomicalAccuracy  string `json:"anatomical_accuracy"`
	MetadataAnalysis    string `json:"metadata_analysis"`
	TemporalConsistency string `json:"temporal_consistency"`
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Analyze implements Client.
func (c *HTTPClient) Analyze(ctx context.Context, payload, contentType string) (*models.Verdict, error) {
	body, err := json.Marshal(analyzeRequest{Media: payload, ContentType: contentType})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/analyses", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if key := c.currentAPIKey(); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", faults.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", faults.ErrNetworkUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.mapError(resp.StatusCode, data)
	}

	var ar analyzeResponse
	if err := json.Unmarshal(data, &ar); err != nil {
		return nil, fmt.Errorf("%w: %v", faults.ErrMalformedResponse, err)
	}
	return ar.verdict()
}

// verdict validates the wire response and converts it to the model form.
func (ar *analyzeResponse) verdict() (*models.Verdict, error) {
	if ar.IsSynthetic == nil || ar.VerdictSummary == "" {
		return nil, fmt.Errorf("%w: verdict fields missing", faults.ErrMalformedResponse)
	}
	if ar.ConfidenceScore == nil || *ar.ConfidenceScore < 0 || *ar.ConfidenceScore > 100 {
		return nil, fmt.Errorf("%w: confidence score missing or out of range", faults.ErrMalformedResponse)
	}

	return &models.Verdict{
		IsSynthetic:     *ar.IsSynthetic,
		ConfidenceScore: *ar.ConfidenceScore,
		VerdictSummary:  ar.VerdictSummary,
		ReasoningPoints: ar.ReasoningPoints,
		ArtifactsFound:  ar.ArtifactsFound,
		TechnicalFindings: models.TechnicalFindings{
			LightingConsistency: ar.TechnicalFindings.LightingConsistency,
			TextureQuality:      ar.TechnicalFindings.TextureQuality,
			AnatomicalAccuracy:  ar.TechnicalFindings.AnatomicalAccuracy,
			MetadataAnalysis:    ar.TechnicalFindings.MetadataAnalysis,
			TemporalConsistency: ar.TechnicalFindings.TemporalConsistency,
		},
	}, nil
}

// mapError folds a non-200 response into a sentinel error. The service's
// machine-readable error code is authoritative when present; the HTTP status
// is the fallback for proxies and load balancers that answer on the
// service's behalf.
func (c *HTTPClient) mapError(status int, body []byte) error {
	var env errorEnvelope
	_ = json.Unmarshal(body, &env)
	detail := env.Error.Message
	if detail == "" {
		detail = http.StatusText(status)
	}

	switch env.Error.Code {
	case "invalid_api_key", "unauthorized", "forbidden":
		return fmt.Errorf("%w: %s", faults.ErrAuthentication, detail)
	case "unsupported_media", "invalid_media", "bad_request":
		return fmt.Errorf("%w: %s", faults.ErrInvalidMedia, detail)
	case "payload_too_large":
		return fmt.Errorf("%w: %s", faults.ErrFileTooLarge, detail)
	case "rate_limited", "overloaded":
		return fmt.Errorf("%w: %s", faults.ErrServiceOverloaded, detail)
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", faults.ErrAuthentication, detail)
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", faults.ErrInvalidMedia, detail)
	case http.StatusRequestEntityTooLarge:
		return fmt.Errorf("%w: %s", faults.ErrFileTooLarge, detail)
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", faults.ErrServiceOverloaded, detail)
	default:
		return fmt.Errorf("detector returned status %d: %s", status, detail)
	}
}

// Ping implements Client.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", faults.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("detector health returned status %d", resp.StatusCode)
	}
	return nil
}

// Close implements Client.
func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}
