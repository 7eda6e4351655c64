package service

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pageza/caloria/backend/config"
	"github.com/pageza/caloria/backend/internal/logger"
	"github.com/pageza/caloria/backend/internal/types"
)

const foodAnalysisSystemPrompt = `You are a nutritionist specialized in analyzing food from images.

Analyze the provided image and identify ALL visible foods.

For each food, provide:
1. Food name
2. Estimated calories (based on the visible portion)
3. Description of the estimated portion
4. Confidence level of the estimate ("alta", "média" or "baixa")

Return ONLY a valid JSON object in the following format:
{
  "foods": [
    {
      "name": "Food name",
      "calories": number_of_calories,
      "portion": "portion description (e.g. 1 medium unit, 100g, 1 cup)",
      "confidence": "alta" | "média" | "baixa"
    }
  ],
  "totalCalories": total_sum_of_calories,
  "notes": "important observations about the analysis or nutritional recommendations"
}

The calories and totalCalories fields must be numbers, not strings.
Be precise and realistic in your estimates. If you cannot clearly identify a food, mention it in the notes.`

const foodAnalysisUserPrompt = "Analyze this image and identify all foods with their respective calories."

// Analysis is the outcome of a successful food analysis
type Analysis struct {
	// Raw is the model's JSON object, compacted but otherwise untouched
	Raw json.RawMessage
	// Result is a best-effort typed view of Raw; nil when the model's field types don't fit
	Result *types.AnalysisResult
}

// FoodAnalysisService relays food photos to the vision model
type FoodAnalysisService struct {
	cfg    *config.Config
	client LLMClient
}

// NewFoodAnalysisService creates a new FoodAnalysisService instance
func NewFoodAnalysisService(cfg *config.Config, client LLMClient) *FoodAnalysisService {
	return &FoodAnalysisService{
		cfg:    cfg,
		client: client,
	}
}

// AnalyzeFood sends the image to the model and parses its JSON reply.
// The credential is checked before the image, and both before any upstream call.
func (s *FoodAnalysisService) AnalyzeFood(ctx context.Context, image string) (*Analysis, error) {
	if !s.cfg.HasOpenAIKey() {
		return nil, newAnalysisError(ErrorKindConfiguration, "OpenAI API key is not configured", nil)
	}

	if strings.TrimSpace(image) == "" {
		return nil, newAnalysisError(ErrorKindValidation, "image not provided", nil)
	}

	content, err := s.client.CreateChatCompletion(ctx, s.buildRequest(image))
	if err != nil {
		return nil, err
	}

	return parseAnalysis(content)
}

func (s *FoodAnalysisService) buildRequest(image string) ChatRequest {
	return ChatRequest{
		Model: s.cfg.OpenAIModel,
		Messages: []Message{
			{
				Role:    "system",
				Content: foodAnalysisSystemPrompt,
			},
			{
				Role: "user",
				Content: []ContentPart{
					{Type: "image_url", ImageURL: &ImageURL{URL: image}},
					{Type: "text", Text: foodAnalysisUserPrompt},
				},
			},
		},
		MaxTokens:   s.cfg.OpenAIMaxTokens,
		Temperature: s.cfg.OpenAITemperature,
		ResponseFormat: map[string]string{
			"type": "json_object",
		},
	}
}

// parseAnalysis turns the model's text into an Analysis without repairing it
func parseAnalysis(content string) (*Analysis, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, newAnalysisError(ErrorKindEmptyResponse, "empty response from API", nil)
	}

	var compacted bytes.Buffer
	if err := json.Compact(&compacted, []byte(content)); err != nil {
		return nil, newAnalysisError(ErrorKindParse, "model reply is not valid JSON", err)
	}
	if compacted.Bytes()[0] != '{' {
		return nil, newAnalysisError(ErrorKindParse, "model reply is not a JSON object", nil)
	}

	analysis := &Analysis{Raw: json.RawMessage(compacted.Bytes())}

	var result types.AnalysisResult
	if err := json.Unmarshal(analysis.Raw, &result); err != nil {
		// Field types are the model's responsibility; relay the reply as-is
		logger.WithError(err).Warn("Model reply does not match the analysis shape")
		return analysis, nil
	}
	analysis.Result = &result

	logger.WithFields(logrus.Fields{
		"food_count":     len(result.Foods),
		"total_calories": result.TotalCalories,
	}).Debug("Parsed food analysis")

	return analysis, nil
}
