package ai

import (
	"errors"
	"fmt"
)

// Kind classifies why a decision could not be produced.
type Kind int

const (
	KindUnknown Kind = iota
	// KindConfiguration means no credential was resolvable; upstream was never called.
	KindConfiguration
	// KindUpstream means the provider call failed, timed out or returned a non-2xx status.
	KindUpstream
	// KindEmptyResult means the provider answered but produced no usable text.
	KindEmptyResult
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindUpstream:
		return "upstream"
	case KindEmptyResult:
		return "empty_result"
	default:
		return "unknown"
	}
}

var (
	ErrNoCredential = errors.New("no Gemini API key configured: set GEMINI_API_KEY in .env or pass apiKey in the request")
	ErrEmptyResult  = errors.New("empty response from AI")
)

type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func upstreamError(model string, err error) *Error {
	return newError(KindUpstream, fmt.Errorf("gemini %s: %w", model, err))
}

// KindOf extracts the Kind from an error chain, KindUnknown if there is none.
func KindOf(err error) Kind {
	var aiErr *Error
	if errors.As(err, &aiErr) {
		return aiErr.Kind
	}
	return KindUnknown
}
