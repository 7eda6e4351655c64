package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pageza/caloria/backend/config"
)

// ContentPart is one element of a multimodal message
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL references an image by URL or data URI
type ImageURL struct {
	URL string `json:"url"`
}

// Message represents a message in the chat. Content is either a string or a []ContentPart.
type Message struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// ChatRequest represents a request to the chat completions API
type ChatRequest struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// OpenAIClient talks to an OpenAI compatible chat completions endpoint
type OpenAIClient struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewOpenAIClient creates a client from the application config
func NewOpenAIClient(cfg *config.Config) *OpenAIClient {
	return &OpenAIClient{
		apiKey: cfg.OpenAIAPIKey,
		apiURL: cfg.OpenAIAPIURL,
		client: &http.Client{
			Timeout: cfg.OpenAITimeout,
		},
	}
}

// CreateChatCompletion sends a single completion request and returns the text of the first choice.
// Failures are *AnalysisError values with a kind derived from the transport, the HTTP status
// and the provider's error code.
func (c *OpenAIClient) CreateChatCompletion(ctx context.Context, chatReq ChatRequest) (string, error) {
	jsonData, err := json.Marshal(chatReq)
	if err != nil {
		return "", newAnalysisError(ErrorKindUnknown, "failed to marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", newAnalysisError(ErrorKindUnknown, "failed to create request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", newAnalysisError(ErrorKindNetwork, "request timed out", err)
		}
		return "", newAnalysisError(ErrorKindNetwork, "failed to send request", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newAnalysisError(ErrorKindNetwork, "failed to read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyAPIError(resp.StatusCode, body)
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", newAnalysisError(ErrorKindUnknown, "failed to decode response", err)
	}

	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", newAnalysisError(ErrorKindEmptyResponse, "empty response from API", nil)
	}

	return result.Choices[0].Message.Content, nil
}

// classifyAPIError maps a non-200 reply to an error kind. The provider's error code
// decides first, then a 401; the message text is only consulted when neither is conclusive.
func classifyAPIError(status int, body []byte) *AnalysisError {
	var apiErr apiErrorResponse
	_ = json.Unmarshal(body, &apiErr)

	detail := apiErr.Error.Message
	if detail == "" {
		detail = strings.TrimSpace(string(body))
	}
	cause := fmt.Errorf("API request failed with status %d: %s", status, detail)

	code := strings.ToLower(apiErr.Error.Code)
	errType := strings.ToLower(apiErr.Error.Type)

	switch {
	case code == "invalid_api_key":
		return newAnalysisError(ErrorKindAuth, "API rejected the credential", cause)
	case code == "insufficient_quota", errType == "insufficient_quota":
		return newAnalysisError(ErrorKindQuota, "API usage limit reached", cause)
	case code == "rate_limit_exceeded", errType == "rate_limit_exceeded":
		return newAnalysisError(ErrorKindUnknown, "API rate limit hit", cause)
	case status == http.StatusUnauthorized:
		return newAnalysisError(ErrorKindAuth, "API rejected the credential", cause)
	}

	text := strings.ToLower(detail)
	switch {
	case strings.Contains(text, "quota"):
		return newAnalysisError(ErrorKindQuota, "API usage limit reached", cause)
	case strings.Contains(text, "api key"):
		return newAnalysisError(ErrorKindAuth, "API rejected the credential", cause)
	default:
		return newAnalysisError(ErrorKindUnknown, "API request failed", cause)
	}
}

// isTimeout reports whether err came from a deadline rather than a refused connection
func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout())
}
