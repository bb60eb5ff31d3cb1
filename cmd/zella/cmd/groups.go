package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alphazella/zella/ledger"
)

var groupsCmd = &cobra.Command{
	Use:   "groups <ticker|setup|mistake>",
	Short: "Break down P&L along one dimension",
	Long: `Break down P&L along one dimension.

Grouping by mistake only counts trades where a mistake was recorded;
disciplined ("None") trades are excluded so they do not dilute the cost of
the mistakes.`,
	Args: cobra.ExactArgs(1),
	RunE: runGroups,
}

func init() {
	rootCmd.AddCommand(groupsCmd)
}

func runGroups(cmd *cobra.Command, args []string) error {
	dim, err := ledger.ParseDimension(args[0])
	if err != nil {
		return err
	}

	eng, st, _, err := loadEngine()
	if err != nil {
		return err
	}
	defer st.Close()

	groups := eng.GroupBy(dim)
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tTRADES\tWINS\tNET P&L\tAVG P&L")
	for _, k := range keys {
		g := groups[k]
		fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t%.2f\n", k, g.Count, g.WinCount, g.Sum, g.Mean)
	}
	return w.Flush()
}
