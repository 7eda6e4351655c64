package client

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pageza/caloria/backend/internal/types"
)

const (
	barWidth = 20

	// APIKeyHint is added below errors that mention the API key
	APIKeyHint = "Hint: configure your OpenAI key in the server environment (OPENAI_API_KEY)."
)

// Proportion returns the share of total taken by calories, in percent within [0, 100].
// A zero, negative or non-finite total yields 0.
func Proportion(calories, total float64) float64 {
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return 0
	}
	p := calories / total * 100
	switch {
	case math.IsNaN(p) || p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// Bar draws a proportion as a fixed-width text bar
func Bar(percent float64) string {
	filled := int(math.Round(percent / 100 * barWidth))
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
}

// FormatCalories renders a calorie value as "<n> kcal"
func FormatCalories(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " kcal"
}

// ConfidenceLabel title-cases the model's confidence label for display
func ConfidenceLabel(c types.Confidence) string {
	return cases.Title(language.BrazilianPortuguese).String(string(c))
}

// RenderResult writes the calorie breakdown
func RenderResult(w io.Writer, result *types.AnalysisResult) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Nutritional analysis\nTotal: %s\n\n", FormatCalories(result.TotalCalories))

	for _, food := range result.Foods {
		percent := Proportion(food.Calories, result.TotalCalories)
		fmt.Fprintf(&b, "%-28s %s\n", food.Name, FormatCalories(food.Calories))
		if food.Portion != "" {
			fmt.Fprintf(&b, "  %s\n", food.Portion)
		}
		fmt.Fprintf(&b, "  %s %3.0f%%", Bar(percent), percent)
		if food.Confidence != "" {
			fmt.Fprintf(&b, "  %s", ConfidenceLabel(food.Confidence))
		}
		b.WriteString("\n")
	}

	if result.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s\n", result.Notes)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// NeedsAPIKeyHint reports whether an error message is about the API key
func NeedsAPIKeyHint(message string) bool {
	return strings.Contains(strings.ToLower(message), "api key")
}

// RenderError writes the relayed error message verbatim, plus a hint for key problems
func RenderError(w io.Writer, message string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Analysis error\n%s\n", message)
	if NeedsAPIKeyHint(message) {
		fmt.Fprintf(&b, "%s\n", APIKeyHint)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
