package errx

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

const (
	// ClassificationErrorMessage describes a failed intent classification call.
	ClassificationErrorMessage = "intent classification failed"
	// SynthesisErrorMessage describes a failed answer synthesis call.
	SynthesisErrorMessage = "response synthesis failed"
	// RetrievalErrorMessage describes a failed document index lookup.
	RetrievalErrorMessage = "documentation retrieval failed"
)

// FieldNotFoundError reports a search against a field that does not exist on
// the requested record variant. Callers convert it to an empty result set.
type FieldNotFoundError struct {
	Record string
	Field  string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field %q not found on record %q", e.Field, e.Record)
}

// UnknownToolError reports an invocation of a tool name that was never
// registered. This is a prompt-construction or programming defect, not a
// user error.
type UnknownToolError struct {
	Tool string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Tool)
}

// ClassificationError is fatal for the current pipeline run: there is no safe
// fallback when the intent of a query cannot be determined.
type ClassificationError struct {
	Err         error
	RateLimited bool
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("%s: %v", ClassificationErrorMessage, e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// SynthesisError is non-fatal: the caller degrades to raw tool results or a
// canned message instead of failing the run.
type SynthesisError struct {
	Err         error
	RateLimited bool
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("%s: %v", SynthesisErrorMessage, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// RetrievalError is non-fatal: the documentation branch converts it into a
// generic error turn.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("%s: %v", RetrievalErrorMessage, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// WrapClassification wraps a completion error from the intent model.
func WrapClassification(err error) error {
	if err == nil {
		return nil
	}
	return &ClassificationError{Err: err, RateLimited: IsRateLimited(err)}
}

// WrapSynthesis wraps a completion error from the response model.
func WrapSynthesis(err error) error {
	if err == nil {
		return nil
	}
	return &SynthesisError{Err: err, RateLimited: IsRateLimited(err)}
}

// WrapRetrieval wraps a document index failure.
func WrapRetrieval(err error) error {
	if err == nil {
		return nil
	}
	return &RetrievalError{Err: err}
}

// IsRateLimited reports whether the error chain carries a provider rate
// limit. Gemini surfaces these as APIError 429 / RESOURCE_EXHAUSTED.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var ae genai.APIError
	if errors.As(err, &ae) {
		return ae.Code == http.StatusTooManyRequests || strings.EqualFold(ae.Status, "RESOURCE_EXHAUSTED")
	}
	return false
}
