package gointegral

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// ============================================================
// Modes
// ============================================================

// Mode selects how strictly an expression is matched.
type Mode int

const (
	// MultiTermScan harvests every well-formed term anywhere in the input and
	// silently skips the text between them.
	MultiTermScan Mode = iota
	// StrictSingleTermParse requires the whole input to be exactly one term.
	StrictSingleTermParse
	// GroupedParse understands parentheses, (term)^k, products and quotients,
	// and rejects anything it cannot read.
	GroupedParse
)

var modeNames = map[Mode]string{
	MultiTermScan:         "scan",
	StrictSingleTermParse: "strict",
	GroupedParse:          "grouped",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps "scan", "strict" or "grouped" to a Mode.
func ParseMode(s string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == key {
			return m, nil
		}
	}
	return MultiTermScan, fmt.Errorf("gointegral: unknown parse mode %q", s)
}

// ============================================================
// Grammar
// ============================================================

const (
	numberPattern = `(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`
	termBody      = `(` + numberPattern + `)?\s*\*?\s*(x)\s*\^\s*([+-]?` + numberPattern + `)`
)

var (
	scanRe   = regexp.MustCompile(`([+-])?\s*` + termBody)
	strictRe = regexp.MustCompile(`^\s*([+-])?\s*` + termBody + `\s*$`)
	numberRe = regexp.MustCompile(`^[+-]?` + numberPattern + `$`)
)

// termFromMatch builds a Term from the four submatches [sign, coeff, base, exp].
func termFromMatch(m []string, raw string) (Term, error) {
	coeff := 1.0
	if m[1] != "" {
		c, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Term{}, parseErr(raw, "invalid coefficient")
		}
		coeff = c
	}
	if m[0] == "-" {
		coeff = -coeff
	}
	exp, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return Term{}, parseErr(raw, "invalid exponent")
	}
	return NewTerm(coeff, m[2], exp), nil
}

// ============================================================
// Entry points
// ============================================================

// Parse dispatches to the entry point selected by mode.
func Parse(expr string, mode Mode) ([]Term, error) {
	switch mode {
	case MultiTermScan:
		return ParseExpression(expr)
	case StrictSingleTermParse:
		t, err := ParseTerm(expr)
		if err != nil {
			return nil, err
		}
		return []Term{t}, nil
	case GroupedParse:
		return ParseGrouped(expr)
	default:
		return nil, fmt.Errorf("gointegral: unknown parse mode %d", int(mode))
	}
}

// ParseExpression scans expr left to right and returns every non-overlapping
// term match in input order. Input with no matching term yields an empty,
// non-nil slice and no error.
func ParseExpression(expr string) ([]Term, error) {
	matches := scanRe.FindAllStringSubmatch(expr, -1)
	terms := make([]Term, 0, len(matches))
	for _, m := range matches {
		t, err := termFromMatch(m[1:], m[0])
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, nil
}

// ParseTerm parses s as exactly one term, e.g. "-2.5*x^3".
func ParseTerm(s string) (Term, error) {
	m := strictRe.FindStringSubmatch(s)
	if m == nil {
		return Term{}, parseErr(s, "")
	}
	return termFromMatch(m[1:], s)
}

// ParseGrouped parses a sum of products with parenthesised groups.
// Whitespace is ignored. Numeric factors are read as c*x^0.
func ParseGrouped(expr string) ([]Term, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, expr)
	if s == "" {
		return []Term{}, nil
	}
	return parseSum(s)
}

// ============================================================
// Grouped parsing
// ============================================================

type signedPiece struct {
	neg  bool
	text string
}

func isSumSign(s string, i int) bool {
	if s[i] != '+' && s[i] != '-' {
		return false
	}
	if i == 0 {
		return true
	}
	switch prev := s[i-1]; prev {
	case '^', '*', '/', '(':
		return false
	case 'e', 'E':
		if i >= 2 && (s[i-2] == '.' || (s[i-2] >= '0' && s[i-2] <= '9')) {
			return false
		}
	}
	return true
}

func splitSum(s string) ([]signedPiece, error) {
	var (
		pieces []signedPiece
		depth  int
		start  int
		neg    bool
	)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth < 0 {
				return nil, parseErr(s, "unbalanced parentheses")
			}
		case depth == 0 && isSumSign(s, i):
			if i > 0 {
				pieces = append(pieces, signedPiece{neg: neg, text: s[start:i]})
			}
			neg = c == '-'
			start = i + 1
		}
	}
	if depth != 0 {
		return nil, parseErr(s, "unbalanced parentheses")
	}
	pieces = append(pieces, signedPiece{neg: neg, text: s[start:]})
	return pieces, nil
}

func parseSum(s string) ([]Term, error) {
	pieces, err := splitSum(s)
	if err != nil {
		return nil, err
	}
	var terms []Term
	for _, p := range pieces {
		if p.text == "" {
			return nil, parseErr(s, "dangling operator")
		}
		got, err := parseProduct(p.text)
		if err != nil {
			return nil, err
		}
		for _, t := range got {
			if p.neg {
				t = NewTerm(-t.coefficient, t.base, t.exponent)
			}
			terms = append(terms, t)
		}
	}
	return terms, nil
}

type factor struct {
	div  bool
	text string
}

func splitProduct(s string) []factor {
	var (
		out   []factor
		depth int
		start int
		div   bool
	)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '(':
			depth++
		case c == ')':
			depth--
		case depth == 0 && (c == '*' || c == '/'):
			out = append(out, factor{div: div, text: s[start:i]})
			div = c == '/'
			start = i + 1
		}
	}
	return append(out, factor{div: div, text: s[start:]})
}

func parseProduct(s string) ([]Term, error) {
	if t, err := ParseTerm(s); err == nil {
		return []Term{t}, nil
	}
	factors := splitProduct(s)
	if len(factors) == 1 {
		return parseFactor(s)
	}
	var acc Term
	for i, f := range factors {
		if f.text == "" {
			return nil, parseErr(s, "dangling operator")
		}
		got, err := parseFactor(f.text)
		if err != nil {
			return nil, err
		}
		if len(got) != 1 {
			return nil, parseErr(s, "product of a sum is not supported")
		}
		t := got[0]
		switch {
		case i == 0:
			acc = t
		case f.div:
			if t.coefficient == 0 {
				return nil, parseErr(s, "division by zero")
			}
			acc = X(acc.coefficient/t.coefficient, acc.exponent-t.exponent)
		default:
			acc = X(acc.coefficient*t.coefficient, acc.exponent+t.exponent)
		}
	}
	if !acc.finite() {
		return nil, parseErr(s, "non-finite product")
	}
	return []Term{acc}, nil
}

func parseFactor(s string) ([]Term, error) {
	if strings.HasPrefix(s, "(") {
		return parseGroup(s)
	}
	if numberRe.MatchString(s) {
		c, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, parseErr(s, "invalid number")
		}
		return []Term{X(c, 0)}, nil
	}
	t, err := ParseTerm(s)
	if err != nil {
		return nil, err
	}
	return []Term{t}, nil
}

// parseGroup handles "(...)" optionally followed by "^k".
func parseGroup(s string) ([]Term, error) {
	depth := 0
	closing := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '(' {
			depth++
		} else if s[i] == ')' {
			depth--
			if depth == 0 {
				closing = i
				break
			}
		}
	}
	if closing < 0 {
		return nil, parseErr(s, "unbalanced parentheses")
	}
	inner, err := parseSum(s[1:closing])
	if err != nil {
		return nil, err
	}
	if len(inner) == 0 {
		return nil, parseErr(s, "empty group")
	}
	rest := s[closing+1:]
	if rest == "" {
		return inner, nil
	}
	if !strings.HasPrefix(rest, "^") || !numberRe.MatchString(rest[1:]) {
		return nil, parseErr(s, "unexpected text after group")
	}
	k, err := strconv.ParseFloat(rest[1:], 64)
	if err != nil {
		return nil, parseErr(s, "invalid group power")
	}
	if len(inner) > 1 {
		return nil, parseErr(s, "power of a sum is not supported")
	}
	t := inner[0]
	raised := NewTerm(math.Pow(t.coefficient, k), t.base, t.exponent*k)
	if !raised.finite() {
		return nil, parseErr(s, "non-finite group power")
	}
	return []Term{raised}, nil
}
