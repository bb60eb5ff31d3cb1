package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alphazella/zella/config"
	"github.com/alphazella/zella/ledger"
	"github.com/alphazella/zella/store"
)

var rootCmd = &cobra.Command{
	Use:   "zella",
	Short: "A single-user trading journal and performance dashboard backend",
	Long: `Zella keeps a canonical ledger of your trades and computes the numbers
the dashboard shows.

It provides tools for:
  - Recording trades manually or importing them from CSV
  - Net P&L, win rate, profit factor and consistency metrics
  - Equity curve and calendar P&L rollups
  - Setup, ticker and mistake breakdowns
  - Exporting the ledger and per-ticker summaries
  - Serving the same queries over a small HTTP API`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var cfgFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./zella.yaml if present)")
}

// loadConfig reads the configured (or default) config file. With no file
// present the built-in defaults apply.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("./zella.yaml"); err != nil {
			return config.Default(), nil
		}
		path = "./zella.yaml"
	}
	return config.LoadFromFile(path)
}

// openStore builds the persistence backing the config names.
func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Type {
	case "sqlite":
		return store.NewSQLite(cfg.Store.DBPath)
	case "csv":
		return store.NewCSV(cfg.Store.CSVPath), nil
	case "memory":
		return store.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.Store.Type)
	}
}

// loadEngine opens the store and rebuilds the engine from it. The caller owns
// closing the returned store.
func loadEngine() (*ledger.Engine, store.Store, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open store: %w", err)
	}
	recs, err := st.Load()
	if err != nil {
		st.Close()
		return nil, nil, nil, fmt.Errorf("load ledger: %w", err)
	}
	eng := ledger.NewEngineFromRecords(recs)
	eng.SetDedupe(cfg.Import.Dedupe)
	return eng, st, cfg, nil
}

// saveLedger persists the engine state after a mutating command.
func saveLedger(eng *ledger.Engine, st store.Store) error {
	if err := st.Save(eng.Records()); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}
