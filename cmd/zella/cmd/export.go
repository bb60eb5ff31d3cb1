package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alphazella/zella/csvio"
	"github.com/alphazella/zella/ledger"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger and a per-ticker summary",
	Long: `Export the full ledger as one sheet and a ticker-grouped summary as a
second sheet. Dates are formatted YYYY-MM-DD and the trades sheet can be
re-imported as-is.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var exportFlags struct {
	tradesPath  string
	summaryPath string
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFlags.tradesPath, "trades", "./trades.csv", "output path for the trades sheet")
	exportCmd.Flags().StringVar(&exportFlags.summaryPath, "summary", "./summary.csv", "output path for the ticker summary sheet")
}

func runExport(cmd *cobra.Command, args []string) error {
	eng, st, _, err := loadEngine()
	if err != nil {
		return err
	}
	defer st.Close()

	tf, err := os.Create(exportFlags.tradesPath)
	if err != nil {
		return fmt.Errorf("create trades sheet: %w", err)
	}
	if err := csvio.WriteTrades(tf, eng.Records()); err != nil {
		tf.Close()
		return fmt.Errorf("write trades sheet: %w", err)
	}
	if err := tf.Close(); err != nil {
		return err
	}

	sf, err := os.Create(exportFlags.summaryPath)
	if err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	if err := csvio.WriteTickerSummary(sf, eng.GroupBy(ledger.DimTicker)); err != nil {
		sf.Close()
		return fmt.Errorf("write summary sheet: %w", err)
	}
	if err := sf.Close(); err != nil {
		return err
	}

	fmt.Printf("exported %d trades to %s, summary to %s\n", eng.Len(), exportFlags.tradesPath, exportFlags.summaryPath)
	return nil
}
