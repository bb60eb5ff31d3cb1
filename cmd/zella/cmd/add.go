package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alphazella/zella/ledger"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a single trade",
	Long: `Record one trade in the ledger.

P&L and win/loss status are computed from entry, exit, quantity and side;
they are never supplied directly.

Example:
  zella add --date 2024-01-02 --ticker aapl --side long --entry 185.20 --exit 190.50 --qty 100 --setup Breakout`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var addFlags struct {
	date    string
	ticker  string
	side    string
	entry   string
	exit    string
	qty     string
	setup   string
	mistake string
	notes   string
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addFlags.date, "date", "", "trade date, YYYY-MM-DD (required)")
	addCmd.Flags().StringVar(&addFlags.ticker, "ticker", "", "ticker symbol (required)")
	addCmd.Flags().StringVar(&addFlags.side, "side", "", "long or short (required)")
	addCmd.Flags().StringVar(&addFlags.entry, "entry", "", "entry price (required)")
	addCmd.Flags().StringVar(&addFlags.exit, "exit", "", "exit price (required)")
	addCmd.Flags().StringVar(&addFlags.qty, "qty", "", "quantity, fractional allowed (required)")
	addCmd.Flags().StringVar(&addFlags.setup, "setup", "", "setup label")
	addCmd.Flags().StringVar(&addFlags.mistake, "mistake", "", "mistake label (default None)")
	addCmd.Flags().StringVar(&addFlags.notes, "notes", "", "free-form notes")

	for _, name := range []string{"date", "ticker", "side", "entry", "exit", "qty"} {
		_ = addCmd.MarkFlagRequired(name)
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	eng, st, _, err := loadEngine()
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := ledger.Normalize(ledger.RawRow{
		"date":     addFlags.date,
		"ticker":   addFlags.ticker,
		"side":     addFlags.side,
		"entry":    addFlags.entry,
		"exit":     addFlags.exit,
		"quantity": addFlags.qty,
		"setup":    addFlags.setup,
		"mistake":  addFlags.mistake,
		"notes":    addFlags.notes,
	}, ledger.SourceManual)
	if err != nil {
		return err
	}

	rec, err = eng.Add(rec)
	if err != nil {
		return err
	}
	if err := saveLedger(eng, st); err != nil {
		return err
	}

	fmt.Printf("recorded %s %s %s  P&L %.2f (%s)\n", rec.ID, rec.Ticker, rec.Side, rec.PnL, rec.Status)
	return nil
}
