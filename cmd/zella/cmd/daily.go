package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Show per-day P&L totals for the calendar view",
	Long: `Show per-day P&L totals for the calendar view.

Days without trades are omitted. A day whose wins and losses cancel shows as
break-even, not as a loss.`,
	Args: cobra.NoArgs,
	RunE: runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, args []string) error {
	eng, st, _, err := loadEngine()
	if err != nil {
		return err
	}
	defer st.Close()

	for _, d := range eng.DailyPnL() {
		fmt.Printf("%s  %10.2f  %s\n", d.Date.Format("2006-01-02"), d.Total, d.Tone)
	}
	return nil
}
