package gointegral_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/njchilds90/gointegral"
)

// ============================================================
// Tool call tests
// ============================================================

func call(t *testing.T, tool string, params map[string]interface{}) (gointegral.ToolResponse, string) {
	t.Helper()
	resp := gointegral.HandleToolCall(gointegral.ToolRequest{Tool: tool, Params: params})
	b, err := json.Marshal(resp)
	require.NoError(t, err)
	return resp, string(b)
}

func TestHandleToolCall_Integrate(t *testing.T) {
	resp, raw := call(t, "integrate", map[string]interface{}{"expression": "3*x^2 + 2*x^1"})
	require.Empty(t, resp.Error)
	assert.Equal(t, "1*x^3 + 1*x^2 + C", resp.String)
	assert.Equal(t, "x^{3} + x^{2} + C", resp.LaTeX)
	assert.Equal(t, 3.0, gjson.Get(raw, "result.antiderivative.0.exponent").Float())
}

func TestHandleToolCall_IntegrateOptions(t *testing.T) {
	resp, _ := call(t, "integrate", map[string]interface{}{
		"expression": "(x^1)^2", "mode": "grouped", "constant": "K", "precision": 3.0,
	})
	require.Empty(t, resp.Error)
	assert.Equal(t, "0.333*x^3 + K", resp.String)
	assert.Equal(t, "0.333x^{3} + K", resp.LaTeX)

	resp, _ = call(t, "integrate", map[string]interface{}{"expression": "x^1", "mode": 4.0})
	assert.Contains(t, resp.Error, "mode")
}

func TestHandleToolCall_ErrorKinds(t *testing.T) {
	resp, _ := call(t, "integrate", map[string]interface{}{"expression": "x^-1"})
	assert.Equal(t, "singularity", resp.ErrorKind)

	resp, _ = call(t, "parse_term", map[string]interface{}{"term": "5*y^2"})
	assert.Equal(t, "parse", resp.ErrorKind)

	resp, _ = call(t, "integrate_term", map[string]interface{}{
		"term": map[string]interface{}{"coefficient": 5.0, "base": "y", "exponent": 2.0},
	})
	assert.Equal(t, "unsupported_base", resp.ErrorKind)

	resp, raw := call(t, "integrate", map[string]interface{}{"expression": "1e308*x^-0.999"})
	assert.Equal(t, "overflow", resp.ErrorKind)
	assert.Equal(t, "overflow", gjson.Get(raw, "error_kind").String())

	resp, _ = call(t, "integrate", map[string]interface{}{"expression": "(-2*x^2)^0.5", "mode": "grouped"})
	assert.Equal(t, "parse", resp.ErrorKind)
	assert.Contains(t, resp.Error, "non-finite group power")

	resp, _ = call(t, "integrate", map[string]interface{}{})
	assert.Equal(t, "missing param: expression", resp.Error)
	assert.Empty(t, resp.ErrorKind)
}

func TestHandleToolCall_Parse(t *testing.T) {
	resp, raw := call(t, "parse", map[string]interface{}{"expression": "3*x^2 - x^1"})
	require.Empty(t, resp.Error)
	assert.Equal(t, "3*x^2 + -1*x^1", resp.String)
	assert.Equal(t, int64(2), gjson.Get(raw, "result.#").Int())
}

func TestHandleToolCall_TermTools(t *testing.T) {
	term := map[string]interface{}{"type": "term", "coefficient": -2.0, "base": "x", "exponent": 3.0}

	resp, _ := call(t, "integrate_term", map[string]interface{}{"term": term})
	require.Empty(t, resp.Error)
	assert.Equal(t, "-0.5*x^4", resp.String)

	resp, _ = call(t, "diff_term", map[string]interface{}{"term": term})
	require.Empty(t, resp.Error)
	assert.Equal(t, "-6*x^2", resp.String)

	resp, _ = call(t, "parse_term", map[string]interface{}{"term": "-2*x^3"})
	require.Empty(t, resp.Error)
	assert.Equal(t, "-2x^{3}", resp.LaTeX)

	resp, _ = call(t, "diff_term", map[string]interface{}{"term": "x^2"})
	assert.Contains(t, resp.Error, "term object")
}

func TestHandleToolCall_Definite(t *testing.T) {
	resp, _ := call(t, "definite_integrate", map[string]interface{}{"expression": "x^2", "a": 0.0, "b": 3.0})
	require.Empty(t, resp.Error)
	assert.Equal(t, "9", resp.String)

	resp, _ = call(t, "definite_integrate", map[string]interface{}{"expression": "x^2", "a": "0", "b": 3.0})
	assert.Equal(t, "param a must be a number", resp.Error)

	resp, raw := call(t, "definite_integrate", map[string]interface{}{"expression": "x^-2", "a": -1.0, "b": 1.0})
	assert.Equal(t, "domain", resp.ErrorKind)
	assert.Contains(t, resp.Error, "pole at x=0")
	assert.False(t, gjson.Get(raw, "result").Exists())

	resp, _ = call(t, "definite_integrate", map[string]interface{}{"expression": "x^0.5", "a": -1.0, "b": 1.0})
	assert.Equal(t, "domain", resp.ErrorKind)
}

func TestHandleToolCall_UnknownTool(t *testing.T) {
	resp, _ := call(t, "simplify", map[string]interface{}{})
	assert.Equal(t, "unknown tool: simplify", resp.Error)
}

func TestToolSpec(t *testing.T) {
	spec := gointegral.ToolSpec()
	require.True(t, gjson.Valid(spec))
	names := gjson.Get(spec, "tools.#.name").Array()
	assert.Len(t, names, 7)
	assert.Equal(t, "integrate", names[0].String())
	assert.Equal(t, "expression", gjson.Get(spec, "tools.0.inputSchema.required.0").String())

	resp, _ := call(t, "tool_spec", nil)
	require.Empty(t, resp.Error)
	assert.NotNil(t, resp.Result)
}
