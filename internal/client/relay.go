package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pageza/caloria/backend/internal/types"
)

const (
	DefaultServerURL = "http://localhost:8080"
	DefaultTimeout   = 60 * time.Second

	// MessageAnalysisFailed is shown when the relay gives no usable message
	MessageAnalysisFailed = "Failed to analyze the image. Please try again."
)

// RelayError is a failed call to the analysis relay
type RelayError struct {
	StatusCode int // 0 when no response was received
	Message    string
	Err        error
}

func (e *RelayError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("relay returned %d: %s", e.StatusCode, e.Message)
}

func (e *RelayError) Unwrap() error {
	return e.Err
}

// RelayClient posts images to the analysis relay
type RelayClient struct {
	baseURL string
	client  *http.Client
}

// NewRelayClient creates a client for the relay at baseURL
func NewRelayClient(baseURL string, timeout time.Duration) *RelayClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RelayClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Analyze sends the data URI to POST /api/analyze-food and decodes the breakdown
func (c *RelayClient) Analyze(ctx context.Context, image string) (*types.AnalysisResult, error) {
	body, err := json.Marshal(types.AnalyzeFoodRequest{Image: image})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analyze-food", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &RelayError{Message: MessageAnalysisFailed, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RelayError{StatusCode: resp.StatusCode, Message: MessageAnalysisFailed, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp types.ErrorResponse
		if err := json.Unmarshal(data, &errResp); err != nil || strings.TrimSpace(errResp.Error) == "" {
			errResp.Error = MessageAnalysisFailed
		}
		return nil, &RelayError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, &RelayError{StatusCode: resp.StatusCode, Message: MessageAnalysisFailed, Err: err}
	}
	return &result, nil
}
