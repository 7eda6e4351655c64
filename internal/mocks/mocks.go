package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/caloria/backend/internal/client"
	"github.com/pageza/caloria/backend/internal/service"
	"github.com/pageza/caloria/backend/internal/types"
)

// MockLLMClient is a mock implementation of service.LLMClient
type MockLLMClient struct {
	mock.Mock
}

// CreateChatCompletion mocks the CreateChatCompletion method
func (m *MockLLMClient) CreateChatCompletion(ctx context.Context, req service.ChatRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockFoodAnalysisService is a mock implementation of service.IFoodAnalysisService
type MockFoodAnalysisService struct {
	mock.Mock
}

// AnalyzeFood mocks the AnalyzeFood method
func (m *MockFoodAnalysisService) AnalyzeFood(ctx context.Context, image string) (*service.Analysis, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Analysis), args.Error(1)
}

// MockAnalyzer is a mock implementation of client.Analyzer
type MockAnalyzer struct {
	mock.Mock
}

var _ client.Analyzer = (*MockAnalyzer)(nil)

// Analyze mocks the Analyze method
func (m *MockAnalyzer) Analyze(ctx context.Context, image string) (*types.AnalysisResult, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.AnalysisResult), args.Error(1)
}
