package cmd

import (
	"context"
	"fmt"

	"localtrack/internal/fuelsync"

	"github.com/spf13/cobra"
)

var healCmd = &cobra.Command{
	Use:   "heal",
	Short: "Remove fuel logs whose expense no longer exists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, closeDB, err := openStore()
		if err != nil {
			return err
		}
		defer closeDB()

		healed, err := fuelsync.New(st).Heal(context.Background())
		if err != nil {
			return err
		}
		for _, h := range healed {
			fmt.Fprintf(cmd.OutOrStdout(), "removed: %v\n", h)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d orphaned fuel log(s) removed\n", len(healed))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healCmd)
}
