package gointegral

import "strings"

// Separator joins rendered terms; the constant marker is appended with it too.
const Separator = " + "

// DefaultConstant is the constant-of-integration marker.
const DefaultConstant = "C"

// FormatOptions controls rendering of terms and sequences.
type FormatOptions struct {
	Constant  string
	Precision int // -1 selects the shortest representation that round-trips
}

// FormatOption mutates FormatOptions.
type FormatOption func(*FormatOptions)

// WithConstant replaces the "C" marker.
func WithConstant(c string) FormatOption {
	return func(o *FormatOptions) {
		if c != "" {
			o.Constant = c
		}
	}
}

// WithPrecision sets the number of significant digits; negative means shortest.
func WithPrecision(p int) FormatOption {
	return func(o *FormatOptions) {
		if p < 0 {
			p = -1
		}
		o.Precision = p
	}
}

func DefaultFormatOptions() FormatOptions {
	return FormatOptions{Constant: DefaultConstant, Precision: -1}
}

func gatherFormatOptions(opts []FormatOption) FormatOptions {
	o := DefaultFormatOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// ============================================================
// Rendering
// ============================================================

// Format renders t as <coefficient>*<base>^<exponent>.
func Format(t Term, opts ...FormatOption) string {
	o := gatherFormatOptions(opts)
	return formatTerm(t, o)
}

func formatTerm(t Term, o FormatOptions) string {
	return formatNumber(t.coefficient, o.Precision) + "*" + t.base + "^" + formatNumber(t.exponent, o.Precision)
}

// FormatSequence joins already integrated terms with " + " in order and
// appends " + C". An empty sequence renders as " + C".
func FormatSequence(terms []Term, opts ...FormatOption) string {
	o := gatherFormatOptions(opts)
	var b strings.Builder
	for i, t := range terms {
		if i > 0 {
			b.WriteString(Separator)
		}
		b.WriteString(formatTerm(t, o))
	}
	b.WriteString(Separator)
	b.WriteString(o.Constant)
	return b.String()
}

// LaTeXSequence is the LaTeX counterpart of FormatSequence.
func LaTeXSequence(terms []Term, opts ...FormatOption) string {
	o := gatherFormatOptions(opts)
	parts := make([]string, 0, len(terms)+1)
	for _, t := range terms {
		parts = append(parts, latexTerm(t, o.Precision))
	}
	parts = append(parts, o.Constant)
	return strings.Join(parts, Separator)
}
