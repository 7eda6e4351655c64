package service

import "context"

// LLMClient is the external chat completion API as seen by the analysis service
type LLMClient interface {
	CreateChatCompletion(ctx context.Context, req ChatRequest) (string, error)
}

// IFoodAnalysisService defines the interface for food analysis operations
type IFoodAnalysisService interface {
	AnalyzeFood(ctx context.Context, image string) (*Analysis, error)
}

var (
	_ LLMClient            = (*OpenAIClient)(nil)
	_ IFoodAnalysisService = (*FoodAnalysisService)(nil)
)
