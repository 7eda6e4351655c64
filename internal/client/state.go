package client

import (
	"errors"

	"github.com/pageza/caloria/backend/internal/types"
)

// State is where the view is in the capture → analyze → result cycle
type State string

const (
	StateIdle          State = "idle"
	StateImageSelected State = "image_selected"
	StateAnalyzing     State = "analyzing"
	StateResultReady   State = "result_ready"
	StateErrorShown    State = "error_shown"
)

var (
	ErrNoImage = errors.New("no image selected")
	ErrBusy    = errors.New("an analysis is already in progress")
	// ErrStale is returned for an analysis that finished after the view moved on
	ErrStale = errors.New("analysis result is no longer wanted")
)

// View holds what the user currently sees. All transitions go through its
// methods so invalid ones are rejected instead of silently applied.
type View struct {
	State  State
	Source Source
	Image  string
	Result *types.AnalysisResult
	Error  string

	// generation identifies the analysis in flight; Reset and each new
	// analysis bump it so late completions can be told apart.
	generation uint64
}

// NewView returns a view in the Idle state
func NewView() *View {
	return &View{State: StateIdle}
}

// SelectImage loads a new image and drops any previous result or error
func (v *View) SelectImage(source Source, dataURI string) error {
	if v.State == StateAnalyzing {
		return ErrBusy
	}
	if dataURI == "" {
		return ErrNoImage
	}
	v.Source = source
	v.Image = dataURI
	v.Result = nil
	v.Error = ""
	v.State = StateImageSelected
	return nil
}

// StartAnalysis moves to Analyzing and returns the token the completion must present.
// ResultReady and ErrorShown may start again on the same image.
func (v *View) StartAnalysis() (uint64, error) {
	switch v.State {
	case StateAnalyzing:
		return 0, ErrBusy
	case StateIdle:
		return 0, ErrNoImage
	}
	v.generation++
	v.Result = nil
	v.Error = ""
	v.State = StateAnalyzing
	return v.generation, nil
}

// Complete records a successful analysis
func (v *View) Complete(token uint64, result *types.AnalysisResult) error {
	if v.State != StateAnalyzing || token != v.generation {
		return ErrStale
	}
	v.Result = result
	v.State = StateResultReady
	return nil
}

// Fail records a failed analysis with the message to show
func (v *View) Fail(token uint64, message string) error {
	if v.State != StateAnalyzing || token != v.generation {
		return ErrStale
	}
	v.Error = message
	v.State = StateErrorShown
	return nil
}

// Reset clears image, result and error and returns to Idle
func (v *View) Reset() {
	v.generation++
	v.Source = ""
	v.Image = ""
	v.Result = nil
	v.Error = ""
	v.State = StateIdle
}

// Busy reports whether the analyze trigger should be disabled
func (v *View) Busy() bool {
	return v.State == StateAnalyzing
}
