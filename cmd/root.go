package cmd

import (
	"fmt"
	"os"

	"localtrack/internal/config"
	"localtrack/internal/database"
	"localtrack/internal/logger"
	"localtrack/internal/store"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var version = "0.1.0"

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "localtrack",
	Short: "LocalTrack - on-device expense, fuel, loan and delivery tracker",
	Long: `LocalTrack keeps a personal ledger of expenses, fuel logs, loans and
delivery-gig days in a local SQLite database and serves it to a UI over a
JSON API on the loopback interface.

Configuration is read from config.yaml (or --config) and can be overridden
with LOCALTRACK_* environment variables, e.g. LOCALTRACK_SERVER_PORT=9000.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if err := logger.Setup(c.LoggerConfig()); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		cfg = c
		return nil
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./config.yaml if present)")
}

// openStore opens and migrates the configured database. The returned close
// function must be called when the command is done.
func openStore() (*gorm.DB, *store.Store, func(), error) {
	db, err := database.Init(cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return nil, nil, nil, err
	}
	return db, store.New(db), func() { _ = database.Close(db) }, nil
}
