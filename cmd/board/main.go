// Command board is the activity board: a web page and a set of one-shot
// commands over the activities REST API.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mergington/activity-board/internal/adapters/apiclient"
	"github.com/mergington/activity-board/internal/app/board"
	platformclock "github.com/mergington/activity-board/internal/platform/clock"
	"github.com/mergington/activity-board/internal/platform/config"
	"github.com/mergington/activity-board/internal/ports/out/confirm"
)

const (
	Version = "0.1.0"
	appName = "board"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	logLevel   string
	apiURL     string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Mergington High School activity board",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&g.apiURL, "api-url", "", "Activities API base URL")

	cmd.AddCommand(
		newServeCmd(g),
		newListCmd(g),
		newSignupCmd(g),
		newUnregisterCmd(g),
		newDevBackendCmd(g),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)
	return cmd
}

// load resolves the configuration and builds the logger. Flags win over the
// file and the environment.
func (g *globalFlags) load(cmd *cobra.Command) (config.BoardConfig, *slog.Logger, error) {
	cfg, err := config.LoadBoardConfig(g.configPath)
	if err != nil {
		return config.BoardConfig{}, nil, fmt.Errorf("load config: %w", err)
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if g.apiURL != "" {
		cfg.APIBaseURL = g.apiURL
	}
	if err := cfg.Validate(); err != nil {
		return config.BoardConfig{}, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, newLogger(cmd.ErrOrStderr(), cfg.LogLevel), nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	lvl, _ := config.ParseLogLevel(level)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func newRuntime(cfg config.BoardConfig, logger *slog.Logger, confirmer confirm.Confirmer, rec board.Recorder) (*board.Runtime, error) {
	client, err := apiclient.New(cfg.APIBaseURL, apiclient.Options{Timeout: cfg.HTTPTimeout})
	if err != nil {
		return nil, err
	}
	return board.NewRuntime(client, platformclock.NewSystemClock(), confirmer, board.NewState(), board.Options{
		SignupMessageTTL:     cfg.SignupMessageTTL,
		UnregisterMessageTTL: cfg.UnregisterMessageTTL,
		Logger:               logger,
		Recorder:             rec,
	}), nil
}
