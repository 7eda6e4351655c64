package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/caloria/backend/config"
	"github.com/pageza/caloria/backend/internal/logger"
	"github.com/pageza/caloria/backend/internal/mocks"
	"github.com/pageza/caloria/backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.SetOutput(io.Discard)
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:    config.Test,
		ServerHost:     "127.0.0.1",
		ServerPort:     "0",
		RequestTimeout: 45 * time.Second,
		AllowedOrigins: []string{"*"},
	}
}

func TestNew(t *testing.T) {
	srv := New(testConfig(), new(mocks.MockFoodAnalysisService))
	require.NotNil(t, srv)

	for _, path := range []string{"/health", "/api/health"} {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, w.Code, path)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	}
}

func TestAnalyzeFoodRoute(t *testing.T) {
	analysisService := new(mocks.MockFoodAnalysisService)
	analysisService.On("AnalyzeFood", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), "data:image/png;base64,AAAA").Return(&service.Analysis{Raw: []byte(`{"foods":[],"totalCalories":0,"notes":""}`)}, nil)

	srv := New(testConfig(), analysisService)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-food", strings.NewReader(`{"image":"data:image/png;base64,AAAA"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"foods":[],"totalCalories":0,"notes":""}`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	analysisService.AssertExpectations(t)
}

func TestUnknownRoute(t *testing.T) {
	srv := New(testConfig(), new(mocks.MockFoodAnalysisService))

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/recipes", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStartAndShutdown(t *testing.T) {
	srv := New(testConfig(), new(mocks.MockFoodAnalysisService))

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
