package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alphazella/zella/csvio"
	"github.com/alphazella/zella/ledger"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import trades from a CSV file",
	Long: `Import trades from a CSV file.

Expected columns: Date, Ticker, Type, Entry, Exit, Quantity, Setup,
Mistake[, Notes][, P&L]. Header casing does not matter; a P&L column is
recomputed, never trusted. Malformed rows are skipped and reported without
aborting the rest of the file.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	rows, err := csvio.Read(file)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	eng, st, _, err := loadEngine()
	if err != nil {
		return err
	}
	defer st.Close()

	res := eng.Ingest(rows, ledger.SourceCSV)
	if res.Imported > 0 {
		if err := saveLedger(eng, st); err != nil {
			return err
		}
	}

	fmt.Println(res)
	for _, skip := range res.Reasons {
		fmt.Printf("  row %d: %s\n", skip.Row, skip.Reason)
	}
	return nil
}
