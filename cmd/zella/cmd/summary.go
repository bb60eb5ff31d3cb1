package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show headline performance metrics",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	eng, st, _, err := loadEngine()
	if err != nil {
		return err
	}
	defer st.Close()

	m := eng.Summary()

	fmt.Printf("Trades:        %d (%d wins, %d losses)\n", m.Trades, m.Wins, m.Losses)
	fmt.Printf("Net P&L:       %.2f\n", m.NetPnL)
	fmt.Printf("Win Rate:      %.1f%%\n", m.WinRate)
	if math.IsNaN(m.AverageTrade) {
		fmt.Println("Avg Trade:     no data")
	} else {
		fmt.Printf("Avg Trade:     %.2f\n", m.AverageTrade)
	}
	fmt.Printf("Profit Factor: %.2f\n", m.ProfitFactor)
	fmt.Printf("Sharpe-like:   %.2f\n", m.SharpeLike)
	return nil
}
