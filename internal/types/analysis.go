package types

import "encoding/json"

// Confidence is the model's qualitative certainty about a food estimate.
// The wire values are the Portuguese labels the prompt asks for.
type Confidence string

const (
	ConfidenceHigh   Confidence = "alta"
	ConfidenceMedium Confidence = "média"
	ConfidenceLow    Confidence = "baixa"
)

// Level maps a wire label to high/medium/low, or "" when the model used something else
func (c Confidence) Level() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return ""
	}
}

// FoodItem is one food the model identified in the photo
type FoodItem struct {
	Name       string     `json:"name"`
	Calories   float64    `json:"calories"`
	Portion    string     `json:"portion"`
	Confidence Confidence `json:"confidence"`
}

// AnalysisResult is the calorie breakdown returned for a photo
type AnalysisResult struct {
	Foods         []FoodItem `json:"foods"`
	TotalCalories float64    `json:"totalCalories"`
	Notes         string     `json:"notes"`
}

// UnmarshalJSON accepts calories given as a number or a numeric string
func (f *FoodItem) UnmarshalJSON(data []byte) error {
	type plain FoodItem
	aux := struct {
		*plain
		Calories lenientNumber `json:"calories"`
	}{plain: (*plain)(f)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	f.Calories = float64(aux.Calories)
	return nil
}

// UnmarshalJSON accepts totalCalories given as a number or a numeric string
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	type plain AnalysisResult
	aux := struct {
		*plain
		TotalCalories lenientNumber `json:"totalCalories"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.TotalCalories = float64(aux.TotalCalories)
	return nil
}

// AnalyzeFoodRequest is the body of POST /api/analyze-food
type AnalyzeFoodRequest struct {
	Image string `json:"image"`
}

// ErrorResponse is the body of every failed relay response
type ErrorResponse struct {
	Error string `json:"error"`
}
