/*
main.go - Application entry point

PURPOSE:
  Runs one attendance command against the configured storage.

STARTUP SEQUENCE:
  1. Load configuration (.env file, then ATTENDANCE_* environment)
  2. Build the slog logger
  3. Open the JSON or SQLite gateway
  4. Load roster and ledger (System.Open)
  5. Hand the arguments to the shell

EXIT STATUS:
  0 success, 1 operation or startup failure, 2 usage error.

EXAMPLES:
  attendance add -id E1 -name Ada
  attendance mark -id E1 -status present
  attendance records
  ATTENDANCE_STORE_BACKEND=sqlite attendance summary

SEE ALSO:
  - config/config.go: Environment variables
  - shell/shell.go:   Commands
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/warp/attendance/attendance"
	"github.com/warp/attendance/config"
	"github.com/warp/attendance/shell"
	"github.com/warp/attendance/store/jsonfile"
	"github.com/warp/attendance/store/sqlite"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.LoadConfig(config.EnvFile())
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}

	logger := newLogger(cfg, os.Stderr)
	slog.SetDefault(logger)

	gw, closeGateway, err := openGateway(cfg)
	if err != nil {
		logger.Error("failed to open storage", "backend", cfg.Store.Backend, "error", err)
		return 1
	}
	defer closeGateway()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sys := attendance.NewSystem(gw,
		attendance.WithLogger(logger),
		attendance.WithStrictLoad(cfg.Store.StrictLoad),
		attendance.WithExportDir(cfg.Export.Dir),
	)
	if err := sys.Open(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	if err := shell.New(sys, os.Stdin, os.Stdout).Execute(ctx, args); err != nil {
		if errors.Is(err, shell.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprintln(os.Stderr)
			shell.PrintUsage(os.Stderr)
			return 2
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func openGateway(cfg *config.Config) (attendance.Gateway, func(), error) {
	switch cfg.Store.Backend {
	case "sqlite":
		store, err := sqlite.New(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		return jsonfile.New(cfg.Store.RosterPath, cfg.Store.LedgerPath), func() {}, nil
	}
}
