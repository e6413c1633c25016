// cmd/integral - read one polynomial expression and print its indefinite integral.
//
// Usage:
//
//	echo '3*x^2 + 2*x^1' | integral --prompt=false
//	integral --mode grouped '(2*x^1)^2 - 3/x^2'
//	integral definite --from 0 --to 2 'x^2'
//	integral -- '-2*x^3'
package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/njchilds90/gointegral/internal/config"
)

// cli carries state resolved in PersistentPreRunE for the subcommands.
type cli struct {
	configPath string
	v          *viper.Viper
	cfg        *config.Config
}

func newRootCommand() *cobra.Command {
	c := &cli{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "integral [expression]",
		Short: "integral - indefinite integrals of polynomials in x",
		Long: `Reads one expression such as '3*x^2 + 2*x^1' (from the arguments or
standard input), integrates every term with the power rule and prints the
result followed by the constant of integration.

An expression that begins with '-' must follow '--' so it is not read as a flag.`,
		Example: `integral '3*x^2 + 2*x^1'
  integral -- '-2*x^3'
  echo 'x^1' | integral --prompt=false -o json`,
		Args:              cobra.ArbitraryArgs,
		PersistentPreRunE: c.before,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.integrateOnce(cmd, args)
		},
	}

	c.rootFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(newDefiniteCommand(c))
	return rootCmd
}

// rootFlags registers the persistent flags and binds them to their config keys.
func (c *cli) rootFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.configPath, "config", os.Getenv(config.EnvPrefix+"_CONFIG"), "Path to a YAML config file")
	flags.String("log-level", "warn", "Log messages including and over the specified level: debug, info, warn, error")
	flags.String("mode", "scan", "Parser mode: scan, strict or grouped")
	flags.StringP("output", "o", config.OutputText, "Output format: text, latex, json or yaml")
	flags.String("constant", "C", "Constant-of-integration marker")
	flags.Int("precision", -1, "Significant digits for numbers, -1 for shortest")
	flags.Bool("prompt", true, "Prompt before reading from standard input (on stderr for json and yaml output)")

	for key, name := range map[string]string{
		"log_level": "log-level",
		"mode":      "mode",
		"output":    "output",
		"constant":  "constant",
		"precision": "precision",
		"prompt":    "prompt",
	} {
		_ = c.v.BindPFlag(key, flags.Lookup(name))
	}
}

func (c *cli) before(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.v, c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	logrus.SetOutput(cmd.ErrOrStderr())
	logrus.SetLevel(level)
	logrus.Debugf("config resolved: mode=%s output=%s constant=%s", cfg.Mode, cfg.Output, cfg.Constant)
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
