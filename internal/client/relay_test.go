package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/caloria/backend/internal/types"
)

func TestRelayClient_Analyze(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/analyze-food", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req types.AnalyzeFoodRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, pngURI, req.Image)

		fmt.Fprint(w, `{"foods":[{"name":"Rice","calories":200,"portion":"1 cup","confidence":"alta"}],"totalCalories":200,"notes":""}`)
	}))
	defer ts.Close()

	result, err := NewRelayClient(ts.URL+"/", time.Second).Analyze(context.Background(), pngURI)

	require.NoError(t, err)
	require.Len(t, result.Foods, 1)
	assert.Equal(t, "Rice", result.Foods[0].Name)
	assert.Equal(t, types.ConfidenceHigh, result.Foods[0].Confidence)
	assert.Equal(t, float64(200), result.TotalCalories)
}

func TestRelayClient_AnalyzeStringTypedCalories(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"foods":[{"name":"Rice","calories":"200","portion":"1 cup","confidence":"alta"}],"totalCalories":200,"notes":""}`)
	}))
	defer ts.Close()

	session := NewSession(NewRelayClient(ts.URL, time.Second))
	require.NoError(t, session.view.SelectImage(SourceGallery, pngURI))

	result, err := session.RequestAnalysis(context.Background())

	require.NoError(t, err)
	require.Len(t, result.Foods, 1)
	assert.Equal(t, float64(200), result.Foods[0].Calories)
	assert.Equal(t, StateResultReady, session.Snapshot().State)
	assert.Equal(t, float64(100), Proportion(result.Foods[0].Calories, result.TotalCalories))
}

func TestRelayClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"relayed message", http.StatusInternalServerError, `{"error":"OpenAI API usage limit exceeded."}`, "OpenAI API usage limit exceeded."},
		{"validation", http.StatusBadRequest, `{"error":"image not provided"}`, "image not provided"},
		{"no error field", http.StatusBadGateway, `<html>bad gateway</html>`, MessageAnalysisFailed},
		{"blank error field", http.StatusInternalServerError, `{"error":""}`, MessageAnalysisFailed},
		{"undecodable success", http.StatusOK, `{"foods":"none"}`, MessageAnalysisFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			_, err := NewRelayClient(ts.URL, time.Second).Analyze(context.Background(), pngURI)

			var relayErr *RelayError
			require.ErrorAs(t, err, &relayErr)
			assert.Equal(t, tt.status, relayErr.StatusCode)
			assert.Equal(t, tt.message, relayErr.Message)
		})
	}
}

func TestRelayClient_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := NewRelayClient(url, time.Second).Analyze(context.Background(), pngURI)

	var relayErr *RelayError
	require.ErrorAs(t, err, &relayErr)
	assert.Zero(t, relayErr.StatusCode)
	assert.Equal(t, MessageAnalysisFailed, relayErr.Message)
	assert.Error(t, relayErr.Unwrap())
}

func TestNewRelayClient_DefaultTimeout(t *testing.T) {
	c := NewRelayClient(DefaultServerURL, 0)
	assert.Equal(t, DefaultTimeout, c.client.Timeout)
}
