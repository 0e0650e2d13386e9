package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"localtrack/internal/fuelsync"
	"localtrack/internal/logger"
	"localtrack/internal/router"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON API server",
	Long: `Open the ledger database, drop fuel logs left behind by an interrupted
write, and serve the API under /api until interrupted.`,
	Example: `  localtrack serve
  localtrack serve --config ~/.localtrack/config.yaml
  LOCALTRACK_SERVER_PORT=9000 localtrack serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, st, closeDB, err := openStore()
	if err != nil {
		return err
	}
	defer closeDB()

	healed, err := fuelsync.New(st).Heal(ctx)
	if err != nil {
		return fmt.Errorf("heal fuel logs: %w", err)
	}
	if len(healed) > 0 {
		log.Warn().Int("count", len(healed)).Msg("removed orphaned fuel logs")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router.SetupRouter(cfg, db),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("run server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
