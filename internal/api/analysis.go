package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/caloria/backend/internal/logger"
	"github.com/pageza/caloria/backend/internal/middleware"
	"github.com/pageza/caloria/backend/internal/service"
	"github.com/pageza/caloria/backend/internal/types"
)

// User-facing messages for each failure kind
const (
	MessageImageNotProvided = "image not provided"
	MessageNotConfigured    = "OpenAI API key is not configured. Set OPENAI_API_KEY in the server environment."
	MessageInvalidAPIKey    = "Invalid or unconfigured OpenAI API key."
	MessageQuotaExceeded    = "OpenAI API usage limit exceeded."
	MessageNetwork          = "Connection error. Check your network."
	MessageRetry            = middleware.MessageRetry
)

// AnalysisHandler handles food photo analysis requests
type AnalysisHandler struct {
	analysisService service.IFoodAnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler instance
func NewAnalysisHandler(analysisService service.IFoodAnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
	}
}

// RegisterRoutes registers the analysis routes
func (h *AnalysisHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/analyze-food", h.AnalyzeFood)
}

// AnalyzeFood relays the posted image to the vision model and returns its JSON reply
func (h *AnalysisHandler) AnalyzeFood(c *gin.Context) {
	start := time.Now()

	var req types.AnalyzeFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// An unreadable body counts as a missing image
		logger.WithError(err).WithField("request_id", middleware.RequestID(c)).Warn("Invalid analysis request body")
		req.Image = ""
	}

	analysis, err := h.analysisService.AnalyzeFood(c.Request.Context(), req.Image)
	if err != nil {
		status, message := ErrorResponseFor(err)
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id":  middleware.RequestID(c),
			"error_kind":  service.KindOf(err),
			"status_code": status,
			"latency_ms":  time.Since(start).Milliseconds(),
		}).Error("Food analysis failed")
		c.JSON(status, types.ErrorResponse{Error: message})
		return
	}

	fields := logrus.Fields{
		"request_id": middleware.RequestID(c),
		"latency_ms": time.Since(start).Milliseconds(),
	}
	if analysis.Result != nil {
		fields["food_count"] = len(analysis.Result.Foods)
		fields["total_calories"] = analysis.Result.TotalCalories
	}
	logger.WithFields(fields).Info("Food analysis completed")

	c.Data(http.StatusOK, "application/json; charset=utf-8", analysis.Raw)
}

// ErrorResponseFor maps an analysis failure to the HTTP status and message shown to the user
func ErrorResponseFor(err error) (int, string) {
	switch service.KindOf(err) {
	case service.ErrorKindValidation:
		return http.StatusBadRequest, MessageImageNotProvided
	case service.ErrorKindConfiguration:
		return http.StatusInternalServerError, MessageNotConfigured
	case service.ErrorKindAuth:
		return http.StatusInternalServerError, MessageInvalidAPIKey
	case service.ErrorKindQuota:
		return http.StatusInternalServerError, MessageQuotaExceeded
	case service.ErrorKindNetwork:
		return http.StatusInternalServerError, MessageNetwork
	default:
		return http.StatusInternalServerError, MessageRetry
	}
}
