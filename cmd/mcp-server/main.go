// cmd/mcp-server/main.go - Standalone HTTP tool server for gointegral
//
// Exposes gointegral tools as an HTTP endpoint for AI agent frameworks.
//
// Usage:
//
//	go run ./cmd/mcp-server --addr :8080
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/njchilds90/gointegral/internal/config"
)

func newRootCommand() *cobra.Command {
	v := config.New()
	var configPath string

	cmd := &cobra.Command{
		Use:          "mcp-server",
		Short:        "mcp-server - serve gointegral tool calls over HTTP",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configPath)
			if err != nil {
				return err
			}
			level, err := logrus.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", os.Getenv(config.EnvPrefix+"_CONFIG"), "Path to a YAML config file")
	flags.String("addr", ":8080", "Address to listen on")
	flags.String("log-level", "info", "Log messages including and over the specified level")
	_ = v.BindPFlag("server.addr", flags.Lookup("addr"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	v.SetDefault("log_level", "info")
	return cmd
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		logrus.Fatal(err)
	}
}
