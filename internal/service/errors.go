package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a food analysis failed
type ErrorKind string

const (
	ErrorKindValidation    ErrorKind = "validation"
	ErrorKindConfiguration ErrorKind = "configuration"
	ErrorKindAuth          ErrorKind = "auth"
	ErrorKindQuota         ErrorKind = "quota"
	ErrorKindNetwork       ErrorKind = "network"
	ErrorKindEmptyResponse ErrorKind = "empty_response"
	ErrorKindParse         ErrorKind = "parse"
	ErrorKindUnknown       ErrorKind = "unknown"
)

// AnalysisError is returned by the OpenAI client and the analysis service
type AnalysisError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

func newAnalysisError(kind ErrorKind, message string, cause error) *AnalysisError {
	return &AnalysisError{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the ErrorKind from err, or ErrorKindUnknown for foreign errors
func KindOf(err error) ErrorKind {
	var analysisErr *AnalysisError
	if errors.As(err, &analysisErr) {
		return analysisErr.Kind
	}
	return ErrorKindUnknown
}
