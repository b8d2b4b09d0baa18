package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/logging"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the evaluation HTTP API",
	Long: `Serve the scoring engine over HTTP.

Endpoints:
  GET  /healthz             Liveness and engine version
  POST /v1/evaluate         Evaluate a listing (add ?save=true to persist)
  GET  /v1/kpis             KPI registry
  GET  /v1/history/:app_id  Saved snapshots for an app

Examples:
  asolint serve
  asolint serve --addr :9090 --clients-dir ./clients`,
	Args:         cobra.NoArgs,
	RunE:         runServe,
	SilenceUsage: true,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringSliceVar(&competitors, "competitors", nil, "Competitor names for brand classification")
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	eng, err := buildEngine()
	if err != nil {
		return fmt.Errorf("building engine: %w", err)
	}

	store, err := openStore()
	if err != nil {
		logging.Warn("snapshot store unavailable, persistence endpoints disabled", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	srv := server.New(server.Config{Addr: serveAddr}, eng, store)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	logging.Info("shutting down")

	return srv.Shutdown(context.Background())
}
