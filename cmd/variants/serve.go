package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yacobolo/variants/internal/definitions"
	"github.com/yacobolo/variants/internal/server"
	"github.com/yacobolo/variants/merge"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve component resolution over HTTP",
		Long: `Load the definition files once and serve JSON resolution, merging and
HTML previews until interrupted.`,
		PreRunE: configured,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if getBool("verbose", false) {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			set, err := definitions.LoadAll(definitionGlobs())
			if err != nil {
				return fmt.Errorf("loading definitions: %w", err)
			}
			for _, e := range set.Errors {
				logger.Warn("skipping invalid definition", "error", e)
			}

			m, err := loadMerger()
			if err != nil {
				return err
			}
			if m == nil {
				m = merge.Default()
			}

			srv, err := server.New(set, m, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			addr := getString("serve.addr", ":8080")
			logger.Info("starting server",
				"addr", addr,
				"components", len(set.Components()),
				"definition_files", set.Stats.FilesScanned,
			)
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().String("addr", ":8080", "Listen address")
	return cmd
}
