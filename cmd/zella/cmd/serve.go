package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alphazella/zella/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the journal API over HTTP",
	Long: `Serve the journal's query port over HTTP for the dashboard UI.

The engine is constructed once at startup from the configured store and owned
by the server process; every mutating request is persisted through the store.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Optional .env for local overrides; absence is fine.
	_ = godotenv.Load()

	eng, st, cfg, err := loadEngine()
	if err != nil {
		return err
	}
	defer st.Close()

	log := newLogger(cfg.Log.Level)

	port := cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}

	srv := server.New(server.Config{
		Log:    log,
		Engine: eng,
		Store:  st,
		Port:   port,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
