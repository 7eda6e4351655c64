package client

import (
	"context"
	"errors"
	"sync"

	"github.com/pageza/caloria/backend/internal/types"
)

// Analyzer turns an image data URI into a calorie breakdown
type Analyzer interface {
	Analyze(ctx context.Context, image string) (*types.AnalysisResult, error)
}

var _ Analyzer = (*RelayClient)(nil)

// Session drives a View against an Analyzer. It is safe for concurrent use;
// the lock is never held during the network call.
type Session struct {
	mu       sync.Mutex
	view     *View
	analyzer Analyzer
}

// NewSession creates a session in the Idle state
func NewSession(analyzer Analyzer) *Session {
	return &Session{
		view:     NewView(),
		analyzer: analyzer,
	}
}

// SelectImage reads the image at path and makes it the current selection
func (s *Session) SelectImage(source Source, path string) error {
	s.mu.Lock()
	busy := s.view.Busy()
	s.mu.Unlock()
	if busy {
		return ErrBusy
	}

	dataURI, err := ReadImageFile(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.SelectImage(source, dataURI)
}

// RequestAnalysis sends the selected image for analysis. It fails with ErrBusy
// while another analysis runs and with ErrStale when the view was reset meanwhile.
func (s *Session) RequestAnalysis(ctx context.Context) (*types.AnalysisResult, error) {
	s.mu.Lock()
	token, err := s.view.StartAnalysis()
	image := s.view.Image
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	result, err := s.analyzer.Analyze(ctx, image)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if stale := s.view.Fail(token, messageFor(err)); stale != nil {
			return nil, stale
		}
		return nil, err
	}
	if stale := s.view.Complete(token, result); stale != nil {
		return nil, stale
	}
	return result, nil
}

// ResetToCapture clears image, result and error
func (s *Session) ResetToCapture() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Reset()
}

// Snapshot returns a copy of the current view
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.view
}

func messageFor(err error) string {
	var relayErr *RelayError
	if errors.As(err, &relayErr) && relayErr.Message != "" {
		return relayErr.Message
	}
	return MessageAnalysisFailed
}
