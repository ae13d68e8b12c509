package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/telex-tui/telex-server/internal/app"
	"github.com/telex-tui/telex-server/internal/config"
	"github.com/telex-tui/telex-server/internal/log"
)

func main() {
	var (
		cfgPath  string
		addr     string
		wsAddr   string
		logLevel string
	)

	root := &cobra.Command{
		Use:           "telex-server",
		Short:         "TCP line-protocol chat session hub",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.New(logLevel)

			cfg, path, err := config.Load(logger, cfgPath)
			if err != nil {
				return err
			}
			// Flags win over the config file.
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("ws-addr") {
				cfg.WSAddr = wsAddr
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			logger = log.New(cfg.LogLevel)
			logger.Info().Str("config", path).Str("addr", cfg.Addr).Msg("starting telex server")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.New(&cfg, logger)
			if err != nil {
				return err
			}
			if err := application.Run(ctx); err != nil {
				return err
			}

			logger.Info().Msg("server stopped")
			return nil
		},
	}

	root.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	root.Flags().StringVar(&addr, "addr", "", "TCP listen address")
	root.Flags().StringVar(&wsAddr, "ws-addr", "", "WebSocket listen address (empty disables)")
	root.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
