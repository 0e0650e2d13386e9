package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"localtrack/internal/export"
	"localtrack/internal/logger"
	"localtrack/internal/models"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export expenses as CSV or XLSX",
	Example: `  localtrack export --format csv --out expenses.csv
  localtrack export --format xlsx --out may.xlsx --start 2024-05-01 --end 2024-05-31`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("format", "csv", "Output format (csv, xlsx)")
	exportCmd.Flags().StringP("out", "o", "", "Output file path (default: stdout, csv only)")
	exportCmd.Flags().String("start", "0001-01-01", "First date to include (YYYY-MM-DD)")
	exportCmd.Flags().String("end", "9999-12-31", "Last date to include (YYYY-MM-DD)")
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("export")

	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")

	var write func(io.Writer, []models.Expense) error
	switch strings.ToLower(format) {
	case "csv":
		write = export.WriteCSV
	case "xlsx":
		if outPath == "" {
			return fmt.Errorf("xlsx export needs --out")
		}
		write = export.WriteXLSX
	default:
		return fmt.Errorf("unknown format %q (must be csv or xlsx)", format)
	}

	_, st, closeDB, err := openStore()
	if err != nil {
		return err
	}
	defer closeDB()

	expenses, err := st.ListExpenses(context.Background(), start, end)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()
		out = f
	}
	if err := write(out, expenses); err != nil {
		return err
	}

	log.Info().
		Str("format", format).
		Str("out", outPath).
		Int("rows", len(expenses)).
		Msg("export written")
	return nil
}
