package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, stdin string, args ...string) (stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String(), errOut.String()
}

func TestDriver_Stdin(t *testing.T) {
	out, errOut := run(t, "3*x^2 + 2*x^1\n")
	assert.Equal(t, promptText+"The indefinite integral of 3*x^2 + 2*x^1 is:\n1*x^3 + 1*x^2 + C\n", out)
	assert.Empty(t, errOut)
}

func TestDriver_NoPromptNoNewline(t *testing.T) {
	out, _ := run(t, "-2*x^3", "--prompt=false")
	assert.Equal(t, "The indefinite integral of -2*x^3 is:\n-0.5*x^4 + C\n", out)
}

func TestDriver_Args(t *testing.T) {
	out, _ := run(t, "", "x^1")
	assert.Equal(t, "The indefinite integral of x^1 is:\n0.5*x^2 + C\n", out)
}

func TestDriver_LeadingMinusAfterDoubleDash(t *testing.T) {
	out, errOut := run(t, "", "--", "-2*x^3")
	assert.Empty(t, errOut)
	assert.Equal(t, "The indefinite integral of -2*x^3 is:\n-0.5*x^4 + C\n", out)
}

func TestDriver_UnsupportedBaseScansToConstant(t *testing.T) {
	out, errOut := run(t, "", "5*y^2")
	assert.Contains(t, out, "\n + C\n")
	assert.Empty(t, errOut)
}

func TestDriver_SingularityReportedOnStderr(t *testing.T) {
	out, errOut := run(t, "", "x^-1")
	assert.Empty(t, out)
	assert.True(t, strings.HasPrefix(errOut, "Error: singularity:"), errOut)
}

func TestDriver_StrictModeParseError(t *testing.T) {
	out, errOut := run(t, "", "--mode", "strict", "5*y^2")
	assert.Empty(t, out)
	assert.Equal(t, "Error: parse error: unsupported term format: \"5*y^2\"\n", errOut)
}

func TestDriver_ConstantAndLaTeX(t *testing.T) {
	out, _ := run(t, "", "--constant", "K", "-o", "latex", "3*x^2")
	assert.Equal(t, "The indefinite integral of 3*x^2 is:\nx^{3} + K\n", out)
}

func TestDriver_LaTeXPrecision(t *testing.T) {
	out, _ := run(t, "", "--precision", "3", "-o", "latex", "x^2")
	assert.Equal(t, "The indefinite integral of x^2 is:\n0.333x^{3} + C\n", out)
}

func TestDriver_JSONPromptOnStderr(t *testing.T) {
	out, errOut := run(t, "3*x^2\n", "-o", "json")
	require.True(t, gjson.Valid(out), out)
	assert.Equal(t, "1*x^3 + C", gjson.Get(out, "result").String())
	assert.Equal(t, promptText, errOut)

	out, errOut = run(t, "2*x^1\n", "-o", "yaml")
	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "1*x^2 + C", doc["result"])
	assert.Equal(t, promptText, errOut)
}

func TestDriver_OverflowReportedOnStderr(t *testing.T) {
	out, errOut := run(t, "", "-o", "json", "1e308*x^-0.999")
	assert.Empty(t, out)
	assert.True(t, strings.HasPrefix(errOut, "Error: overflow:"), errOut)
}

func TestDriver_JSON(t *testing.T) {
	out, _ := run(t, "", "-o", "json", "3*x^2 - 4*x^1")
	require.True(t, gjson.Valid(out))
	assert.Equal(t, "1*x^3 + -2*x^2 + C", gjson.Get(out, "result").String())
	assert.Equal(t, int64(2), gjson.Get(out, "terms.#").Int())
	assert.Equal(t, -4.0, gjson.Get(out, "terms.1.coefficient").Float())
	assert.Equal(t, "scan", gjson.Get(out, "mode").String())
}

func TestDriver_YAML(t *testing.T) {
	out, _ := run(t, "", "-o", "yaml", "2*x^1")
	var doc struct {
		Result         string                   `yaml:"result"`
		Antiderivative []map[string]interface{} `yaml:"antiderivative"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "1*x^2 + C", doc.Result)
	require.Len(t, doc.Antiderivative, 1)
	assert.Equal(t, "x", doc.Antiderivative[0]["base"])
}

func TestDriver_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "integral.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: grouped\nprompt: false\n"), 0o644))

	out, errOut := run(t, "(2*x^1)^2\n", "--config", path)
	assert.Empty(t, errOut)
	assert.Equal(t, "The indefinite integral of (2*x^1)^2 is:\n1.3333333333333333*x^3 + C\n", out)
}

func TestDriver_InvalidConfig(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--mode", "bogus", "x^1"})
	require.Error(t, cmd.Execute())
}

func TestDefinite(t *testing.T) {
	out, errOut := run(t, "", "definite", "--from", "0", "--to", "3", "x^2")
	assert.Empty(t, errOut)
	assert.Equal(t, "The definite integral of x^2 from 0 to 3 is:\n9\n", out)

	_, errOut = run(t, "", "definite", "x^-1")
	assert.Contains(t, errOut, "Error: singularity")

	out, errOut = run(t, "", "definite", "--from", "-1", "--to", "1", "x^-2")
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Error: domain error: interval contains the pole at x=0")
}
