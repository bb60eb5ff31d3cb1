package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all trades in the ledger",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	eng, st, _, err := loadEngine()
	if err != nil {
		return err
	}
	defer st.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTICKER\tSIDE\tENTRY\tEXIT\tQTY\tP&L\tSTATUS\tSETUP\tMISTAKE")
	for _, r := range eng.Records() {
		flag := ""
		if r.Incomplete {
			flag = " (incomplete)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4f\t%.4f\t%.4f\t%.2f\t%s%s\t%s\t%s\n",
			r.ID, r.Date.Format("2006-01-02"), r.Ticker, r.Side,
			r.Entry, r.Exit, r.Quantity, r.PnL, r.Status, flag, r.Setup, r.Mistake)
	}
	return w.Flush()
}
