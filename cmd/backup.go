package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"localtrack/internal/backup"
	"localtrack/internal/fuelsync"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create, list and restore encrypted ledger backups",
	Long: `Backups are AES-256-GCM encrypted snapshots of every collection, keyed by
backup.passphrase from the configuration.`,
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Write a new backup into backup.dir",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeDB, err := openBackup()
		if err != nil {
			return err
		}
		defer closeDB()

		info, err := svc.Create(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(cfg.Backup.Dir, info.Name))
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := backup.New(nil, cfg.Backup.Dir, cfg.Backup.Passphrase)
		items, err := svc.List()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSIZE\tMODIFIED")
		for _, it := range items {
			fmt.Fprintf(w, "%s\t%d\t%s\n", it.Name, it.Size, it.ModTime.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [name-or-path]",
	Short: "Replace the whole ledger with a backup",
	Example: `  localtrack backup restore backup-20240501-6f1c....bin
  localtrack backup restore /mnt/usb/backup-20240501-6f1c....bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeDB, err := openBackup()
		if err != nil {
			return err
		}
		defer closeDB()

		path := args[0]
		if filepath.Base(path) == path {
			if path, err = svc.Path(path); err != nil {
				return err
			}
		}

		ctx := context.Background()
		counts, err := svc.Restore(ctx, path)
		if err != nil {
			return err
		}
		if _, err := fuelsync.New(svc.Store()).Heal(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "restored %d expenses, %d fuel logs, %d loans, %d payments, %d deliveries\n",
			counts.Expenses, counts.FuelLogs, counts.Loans, counts.LoanPayments, counts.Deliveries)
		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}

func openBackup() (*backup.Service, func(), error) {
	_, st, closeDB, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	return backup.New(st, cfg.Backup.Dir, cfg.Backup.Passphrase), closeDB, nil
}
