package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/njchilds90/gointegral"
	"github.com/njchilds90/gointegral/internal/config"
)

const promptText = "Enter a mathematical expression to integrate (e.g., '3*x^2 + 2*x^1'): "

// readExpression returns the positional arguments joined, or one line from in.
func (c *cli) readExpression(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if c.cfg.Prompt {
		// keep machine-readable stdout parseable
		w := cmd.OutOrStdout()
		switch strings.ToLower(c.cfg.Output) {
		case config.OutputJSON, config.OutputYAML:
			w = cmd.ErrOrStderr()
		}
		fmt.Fprint(w, promptText)
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, "reading expression")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// integrateOnce performs one read-eval-print cycle. Integration failures are
// reported on stderr and are not command errors.
func (c *cli) integrateOnce(cmd *cobra.Command, args []string) error {
	expr, err := c.readExpression(cmd, args)
	if err != nil {
		return err
	}
	logrus.Debugf("integrating %q", expr)

	out := cmd.OutOrStdout()
	rep, err := gointegral.Analyze(expr, c.cfg.Options()...)
	if err != nil {
		logrus.WithField("kind", gointegral.ErrorKind(err)).Debug("integration failed")
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return nil
	}
	logrus.Debugf("parsed %d terms", len(rep.Terms))

	switch strings.ToLower(c.cfg.Output) {
	case config.OutputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(rep), "encoding json")
	case config.OutputYAML:
		enc := yaml.NewEncoder(out)
		if err := enc.Encode(rep); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		return errors.Wrap(enc.Close(), "encoding yaml")
	case config.OutputLaTeX:
		fmt.Fprintf(out, "The indefinite integral of %s is:\n%s\n", expr, rep.LaTeX)
	default:
		fmt.Fprintf(out, "The indefinite integral of %s is:\n%s\n", expr, rep.Result)
	}
	return nil
}

func newDefiniteCommand(c *cli) *cobra.Command {
	var from, to float64
	cmd := &cobra.Command{
		Use:   "definite [expression]",
		Short: "Evaluate the definite integral over [from, to]",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := c.readExpression(cmd, args)
			if err != nil {
				return err
			}
			v, err := gointegral.DefiniteIntegral(expr, from, to, c.cfg.Options()...)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return nil
			}
			logrus.Debugf("definite integral of %q over [%g, %g]", expr, from, to)
			fmt.Fprintf(cmd.OutOrStdout(), "The definite integral of %s from %g to %g is:\n%.10g\n", expr, from, to, v)
			return nil
		},
	}
	cmd.Flags().Float64Var(&from, "from", 0, "Lower bound")
	cmd.Flags().Float64Var(&to, "to", 1, "Upper bound")
	return cmd
}
