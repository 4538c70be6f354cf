package errors

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrorCode classifies why an analytic degraded to its empty result.
type ErrorCode string

const (
	ErrInsufficientData ErrorCode = "insufficient_data"
	ErrNonFiniteFeature ErrorCode = "non_finite_feature"
	ErrModelFailure     ErrorCode = "model_failure"
	ErrPanic            ErrorCode = "panic"
	ErrCancelled        ErrorCode = "cancelled"
	ErrInternal         ErrorCode = "internal"
)

// AnalyticError is a structured error for a failed analytic.
type AnalyticError struct {
	Code     ErrorCode
	Analytic string
	Author   string
	Message  string
	Cause    error
}

func (e *AnalyticError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	if e.Analytic != "" {
		b.WriteString(": ")
		b.WriteString(e.Analytic)
	}
	if e.Author != "" {
		fmt.Fprintf(&b, " (%s)", e.Author)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (e *AnalyticError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return ErrAnalyticFailed
}

// Is lets errors.Is(err, ErrAnalyticFailed) match every AnalyticError.
func (e *AnalyticError) Is(target error) bool {
	return target == ErrAnalyticFailed
}

// NewAnalyticError builds an AnalyticError with a formatted message.
func NewAnalyticError(code ErrorCode, analytic, format string, args ...any) *AnalyticError {
	return &AnalyticError{
		Code:     code,
		Analytic: analytic,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromPanic converts a recovered panic value into an AnalyticError.
func FromPanic(analytic string, recovered any) *AnalyticError {
	ae := &AnalyticError{
		Code:     ErrPanic,
		Analytic: analytic,
		Message:  fmt.Sprint(recovered),
	}
	if err, ok := recovered.(error); ok {
		ae.Cause = err
	}
	return ae
}

// CodeOf returns the ErrorCode carried by err, or ErrInternal.
func CodeOf(err error) ErrorCode {
	var ae *AnalyticError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ErrInternal
}

// CheckFinite returns an ErrNonFiniteFeature error for the first NaN or Inf in values.
func CheckFinite(analytic string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewAnalyticError(ErrNonFiniteFeature, analytic, "value %d is %v", i, v)
		}
	}
	return nil
}
