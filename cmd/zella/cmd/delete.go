package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alphazella/zella/ledger"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Delete a trade from the ledger",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	eng, st, _, err := loadEngine()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := eng.Delete(args[0]); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return fmt.Errorf("not found: %s", args[0])
		}
		return err
	}

	if err := saveLedger(eng, st); err != nil {
		return err
	}

	fmt.Printf("deleted %s\n", args[0])
	return nil
}
