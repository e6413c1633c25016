// Package gointegral computes indefinite integrals of single-variable
// polynomial expressions such as "3*x^2 + 2*x^1".
//
// The pipeline is linear:
//   - Parse turns text into an ordered []Term (three strictness modes)
//   - Integrate applies the power rule to each Term
//   - FormatSequence renders the antiderivative and appends " + C"
//
// Coefficients and exponents are float64. Terms are never combined or
// reordered, so the output mirrors the input term order.
package gointegral

import "math"

// Options configures the parse/integrate/format pipeline.
type Options struct {
	Mode   Mode
	Format []FormatOption
}

// Option mutates Options.
type Option func(*Options)

// WithMode selects the parser entry point. The default is MultiTermScan.
func WithMode(m Mode) Option { return func(o *Options) { o.Mode = m } }

// WithFormat forwards rendering options to the formatter.
func WithFormat(fo ...FormatOption) Option {
	return func(o *Options) { o.Format = append(o.Format, fo...) }
}

func gatherOptions(opts []Option) Options {
	o := Options{Mode: MultiTermScan}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// ============================================================
// Pipeline
// ============================================================

// Antiderivative parses expr and integrates every term. Any error aborts the
// whole expression.
func Antiderivative(expr string, opts ...Option) (terms, integrated []Term, err error) {
	o := gatherOptions(opts)
	terms, err = Parse(expr, o.Mode)
	if err != nil {
		return nil, nil, err
	}
	integrated, err = IntegrateAll(terms)
	if err != nil {
		return nil, nil, err
	}
	return terms, integrated, nil
}

// IndefiniteIntegral returns the formatted antiderivative of expr,
// e.g. "3*x^2 + 2*x^1" -> "1*x^3 + 1*x^2 + C".
func IndefiniteIntegral(expr string, opts ...Option) (string, error) {
	o := gatherOptions(opts)
	_, integrated, err := Antiderivative(expr, opts...)
	if err != nil {
		return "", err
	}
	return FormatSequence(integrated, o.Format...), nil
}

// Report is the structured outcome of integrating one expression.
type Report struct {
	Input          string `json:"input" yaml:"input"`
	Mode           string `json:"mode" yaml:"mode"`
	Terms          []Term `json:"terms" yaml:"terms"`
	Antiderivative []Term `json:"antiderivative" yaml:"antiderivative"`
	Result         string `json:"result" yaml:"result"`
	LaTeX          string `json:"latex" yaml:"latex"`
}

// Analyze runs the pipeline and keeps every intermediate stage.
func Analyze(expr string, opts ...Option) (*Report, error) {
	o := gatherOptions(opts)
	terms, integrated, err := Antiderivative(expr, opts...)
	if err != nil {
		return nil, err
	}
	return &Report{
		Input:          expr,
		Mode:           o.Mode.String(),
		Terms:          terms,
		Antiderivative: integrated,
		Result:         FormatSequence(integrated, o.Format...),
		LaTeX:          LaTeXSequence(integrated, o.Format...),
	}, nil
}

// ============================================================
// Definite integrals
// ============================================================

// DefiniteIntegral evaluates F(b) - F(a) where F is the antiderivative of expr.
// A term with a negative exponent whose pole x = 0 lies strictly inside the
// interval, or a result that is not finite, yields a *DomainError.
func DefiniteIntegral(expr string, a, b float64, opts ...Option) (float64, error) {
	terms, integrated, err := Antiderivative(expr, opts...)
	if err != nil {
		return 0, err
	}
	lo, hi := math.Min(a, b), math.Max(a, b)
	for _, t := range terms {
		if t.exponent < 0 && t.coefficient != 0 && lo < 0 && 0 < hi {
			return 0, &DomainError{Term: t, A: a, B: b, Reason: "interval contains the pole at x=0"}
		}
	}
	sum := 0.0
	for i, t := range integrated {
		v := t.Eval(b) - t.Eval(a)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, &DomainError{Term: terms[i], A: a, B: b, Reason: "integral is not finite"}
		}
		sum += v
	}
	if math.IsNaN(sum) || math.IsInf(sum, 0) {
		return 0, &DomainError{A: a, B: b, Reason: "integral is not finite"}
	}
	return sum, nil
}

// DefiniteIntegrateNumeric approximates the integral of terms over [a, b]
// with 10-point Gauss-Legendre quadrature. Exact for polynomials of degree
// up to 19.
func DefiniteIntegrateNumeric(terms []Term, a, b float64) float64 {
	nodes := []float64{
		-0.9739065285171717, -0.8650633666889845, -0.6794095682990244,
		-0.4333953941292472, -0.1488743389816312, 0.1488743389816312,
		0.4333953941292472, 0.6794095682990244, 0.8650633666889845, 0.9739065285171717,
	}
	weights := []float64{
		0.0666713443086881, 0.1494513491505806, 0.2190863625159820,
		0.2692667193099963, 0.2955242247147529, 0.2955242247147529,
		0.2692667193099963, 0.2190863625159820, 0.1494513491505806, 0.0666713443086881,
	}
	mid := (a + b) / 2
	half := (b - a) / 2
	sum := 0.0
	for i, n := range nodes {
		xi := mid + half*n
		for _, t := range terms {
			sum += weights[i] * t.Eval(xi)
		}
	}
	return half * sum
}
