package gointegral

import (
	"errors"
	"fmt"
)

// ============================================================
// Sentinels
// ============================================================

// ErrParse matches every *ParseError through errors.Is.
var ErrParse = errors.New("gointegral: parse error")

// ErrUnsupportedBase matches every *UnsupportedBaseError through errors.Is.
var ErrUnsupportedBase = errors.New("gointegral: unsupported base")

// ErrSingularity matches every *SingularityError through errors.Is.
var ErrSingularity = errors.New("gointegral: singularity")

// ErrOverflow matches every *OverflowError through errors.Is.
var ErrOverflow = errors.New("gointegral: overflow")

// ErrDomain matches every *DomainError through errors.Is.
var ErrDomain = errors.New("gointegral: domain error")

// ============================================================
// Typed errors
// ============================================================

// ParseError reports text that does not conform to the term grammar.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("parse error: %s: %q", e.Reason, e.Input)
	}
	return fmt.Sprintf("parse error: unsupported term format: %q", e.Input)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// UnsupportedBaseError is returned when a term's base has no integration rule.
type UnsupportedBaseError struct{ Term Term }

func (e *UnsupportedBaseError) Error() string {
	return fmt.Sprintf("unsupported base: integration for base %q is not implemented (term %s)",
		e.Term.Base(), e.Term.String())
}

func (e *UnsupportedBaseError) Is(target error) bool { return target == ErrUnsupportedBase }

// SingularityError is returned for x^-1, whose antiderivative ln|x| is not a Term.
type SingularityError struct{ Term Term }

func (e *SingularityError) Error() string {
	return fmt.Sprintf("singularity: power rule undefined for exponent -1 in %s (antiderivative is ln|%s|)",
		e.Term.String(), e.Term.Base())
}

func (e *SingularityError) Is(target error) bool { return target == ErrSingularity }

// OverflowError is returned when integrating a term yields a coefficient or
// exponent that is not a finite float64.
type OverflowError struct{ Term Term }

func (e *OverflowError) Error() string {
	return fmt.Sprintf("overflow: integral of %s is not a finite number", e.Term.String())
}

func (e *OverflowError) Is(target error) bool { return target == ErrOverflow }

// DomainError reports a definite integral that has no finite value over the
// requested interval.
type DomainError struct {
	Term   Term
	A, B   float64
	Reason string
}

func (e *DomainError) Error() string {
	if e.Term.base == "" {
		return fmt.Sprintf("domain error: %s over [%g, %g]", e.Reason, e.A, e.B)
	}
	return fmt.Sprintf("domain error: %s for %s over [%g, %g]", e.Reason, e.Term.String(), e.A, e.B)
}

func (e *DomainError) Is(target error) bool { return target == ErrDomain }

func parseErr(input, reason string) error { return &ParseError{Input: input, Reason: reason} }

// ErrorKind classifies err for machine consumers such as the tool-call protocol.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrUnsupportedBase):
		return "unsupported_base"
	case errors.Is(err, ErrSingularity):
		return "singularity"
	case errors.Is(err, ErrOverflow):
		return "overflow"
	case errors.Is(err, ErrDomain):
		return "domain"
	default:
		return "internal"
	}
}
