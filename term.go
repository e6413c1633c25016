package gointegral

import (
	"math"
	"strconv"
)

// Variable is the only symbol the parser and integrator understand.
const Variable = "x"

// ============================================================
// Term - coefficient * base^exponent
// ============================================================

// Term is an immutable monomial. The zero value is not a valid Term; build one
// with X or NewTerm.
type Term struct {
	coefficient float64
	base        string
	exponent    float64
}

// X returns c*x^n.
func X(c, n float64) Term { return Term{coefficient: c, base: Variable, exponent: n} }

// NewTerm returns c*base^n for an arbitrary base symbol.
func NewTerm(c float64, base string, n float64) Term {
	if base == "" {
		panic("gointegral: term base is empty")
	}
	return Term{coefficient: c, base: base, exponent: n}
}

func (t Term) Coefficient() float64 { return t.coefficient }
func (t Term) Base() string         { return t.base }
func (t Term) Exponent() float64    { return t.exponent }
func (t Term) String() string       { return Format(t) }
func (t Term) Equal(o Term) bool {
	return t.coefficient == o.coefficient && t.base == o.base && t.exponent == o.exponent
}

// Eval returns the numeric value of the term at base = v.
func (t Term) Eval(v float64) float64 { return t.coefficient * math.Pow(v, t.exponent) }

// Integrate applies the power rule: c*x^n -> c/(n+1)*x^(n+1).
func (t Term) Integrate() (Term, error) {
	if t.base != Variable {
		return Term{}, &UnsupportedBaseError{Term: t}
	}
	newExp := t.exponent + 1
	if newExp == 0 {
		return Term{}, &SingularityError{Term: t}
	}
	out := Term{coefficient: t.coefficient / newExp, base: t.base, exponent: newExp}
	if !out.finite() {
		return Term{}, &OverflowError{Term: t}
	}
	return out, nil
}

func (t Term) finite() bool {
	return !math.IsNaN(t.coefficient) && !math.IsInf(t.coefficient, 0) &&
		!math.IsNaN(t.exponent) && !math.IsInf(t.exponent, 0)
}

// Diff differentiates the term with respect to its own base.
func (t Term) Diff() Term {
	return Term{coefficient: t.coefficient * t.exponent, base: t.base, exponent: t.exponent - 1}
}

// LaTeX renders the term with the shortest number formatting, e.g. "3x^{2}".
func (t Term) LaTeX() string { return latexTerm(t, -1) }

func latexTerm(t Term, precision int) string {
	var coeff string
	switch t.coefficient {
	case 1:
	case -1:
		coeff = "-"
	default:
		coeff = formatNumber(t.coefficient, precision)
	}
	return coeff + t.base + "^{" + formatNumber(t.exponent, precision) + "}"
}

// ============================================================
// Top-level convenience functions
// ============================================================

func Integrate(t Term) (Term, error) { return t.Integrate() }
func Diff(t Term) Term               { return t.Diff() }

// IntegrateAll integrates every term in order. It fails on the first error and
// never returns a partial result.
func IntegrateAll(terms []Term) ([]Term, error) {
	out := make([]Term, 0, len(terms))
	for _, t := range terms {
		it, err := t.Integrate()
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

func formatNumber(f float64, precision int) string {
	return strconv.FormatFloat(f, 'g', precision, 64)
}
