package gointegral

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ============================================================
// Tool-call Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result    interface{} `json:"result,omitempty"`
	LaTeX     string      `json:"latex,omitempty"`
	String    string      `json:"string,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorKind string      `json:"error_kind,omitempty"`
}

func failed(err error) ToolResponse {
	return ToolResponse{Error: err.Error(), ErrorKind: ErrorKind(err)}
}

func HandleToolCall(req ToolRequest) ToolResponse {
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getNumber := func(key string) (float64, error) {
		f, ok := req.Params[key].(float64)
		if !ok {
			return 0, fmt.Errorf("param %s must be a number", key)
		}
		return f, nil
	}
	getTerm := func(key string) (Term, error) {
		m, ok := req.Params[key].(map[string]interface{})
		if !ok {
			return Term{}, fmt.Errorf("param %s must be a term object", key)
		}
		return FromJSON(m)
	}
	// optional params shared by the expression tools
	pipeline := func() ([]Option, error) {
		var opts []Option
		if v, ok := req.Params["mode"]; ok {
			s, isStr := v.(string)
			if !isStr {
				return nil, fmt.Errorf("param mode must be a string")
			}
			m, err := ParseMode(s)
			if err != nil {
				return nil, err
			}
			opts = append(opts, WithMode(m))
		}
		if v, ok := req.Params["constant"].(string); ok {
			opts = append(opts, WithFormat(WithConstant(v)))
		}
		if v, ok := req.Params["precision"].(float64); ok {
			opts = append(opts, WithFormat(WithPrecision(int(v))))
		}
		return opts, nil
	}
	respondTerm := func(t Term) ToolResponse {
		return ToolResponse{Result: t, LaTeX: t.LaTeX(), String: t.String()}
	}

	switch req.Tool {
	case "integrate":
		expr, err := getString("expression")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		opts, err := pipeline()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		rep, err := Analyze(expr, opts...)
		if err != nil {
			return failed(err)
		}
		return ToolResponse{Result: rep, LaTeX: rep.LaTeX, String: rep.Result}

	case "parse":
		expr, err := getString("expression")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		opts, err := pipeline()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		terms, err := Parse(expr, gatherOptions(opts).Mode)
		if err != nil {
			return failed(err)
		}
		strs := make([]string, len(terms))
		for i, t := range terms {
			strs[i] = t.String()
		}
		return ToolResponse{Result: terms, String: strings.Join(strs, Separator)}

	case "parse_term":
		s, err := getString("term")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		t, err := ParseTerm(s)
		if err != nil {
			return failed(err)
		}
		return respondTerm(t)

	case "integrate_term":
		t, err := getTerm("term")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		it, err := t.Integrate()
		if err != nil {
			return failed(err)
		}
		return respondTerm(it)

	case "diff_term":
		t, err := getTerm("term")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respondTerm(t.Diff())

	case "definite_integrate":
		expr, err := getString("expression")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		a, err := getNumber("a")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		b, err := getNumber("b")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		opts, err := pipeline()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		v, err := DefiniteIntegral(expr, a, b, opts...)
		if err != nil {
			return failed(err)
		}
		return ToolResponse{Result: v, String: fmt.Sprintf("%.10g", v)}

	case "tool_spec":
		var spec interface{}
		if err := json.Unmarshal([]byte(ToolSpec()), &spec); err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: spec}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ToolSpec returns the JSON schema of every tool understood by HandleToolCall.
func ToolSpec() string {
	pipelineProps := map[string]string{"expression": "string", "mode": "string", "constant": "string", "precision": "integer"}
	tools := []map[string]interface{}{
		ts("integrate", "Indefinite integral of a polynomial in x. mode: scan|strict|grouped", []string{"expression"}, pipelineProps),
		ts("parse", "Parse an expression into terms", []string{"expression"}, map[string]string{"expression": "string", "mode": "string"}),
		ts("parse_term", "Strictly parse exactly one term such as -2*x^3", []string{"term"}, map[string]string{"term": "string"}),
		ts("integrate_term", "Power rule on one term object {coefficient,base,exponent}", []string{"term"}, map[string]string{"term": "object"}),
		ts("diff_term", "Derivative of one term object", []string{"term"}, map[string]string{"term": "object"}),
		ts("definite_integrate", "Exact F(b)-F(a). Requires a,b (numbers)", []string{"expression", "a", "b"},
			map[string]string{"expression": "string", "a": "number", "b": "number", "mode": "string"}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	b, _ := json.MarshalIndent(map[string]interface{}{"tools": tools}, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
