package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"examdesk/internal/api"
	"examdesk/internal/app"
	"examdesk/internal/config"
	"examdesk/internal/logging"
	"examdesk/internal/persist"
	"examdesk/internal/state"
)

const usageText = `examdesk is a terminal client for the exam platform.

Usage:
  examdesk <command> [flags]

Commands:
  ui       run the terminal UI (default)
  config   print the resolved configuration
  help     show help

UI flags:
  --mock   use the offline mock backend

Examples:
  examdesk ui
  EXAMDESK_API_URL=http://exam.local:8000 examdesk ui
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	_ = godotenv.Load()

	args := os.Args[1:]
	if len(args) == 0 {
		exitOnErr("ui", runUI(nil))
		return
	}
	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
	case "ui":
		exitOnErr("ui", runUI(args[1:]))
	case "config":
		exitOnErr("config", runConfig(args[1:]))
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
}

func runUI(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	mock := fs.Bool("mock", false, "use the offline mock backend")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	dbPath, err := config.DBPath()
	if err != nil {
		return err
	}
	// State survives without persistence; a failed open just means this run
	// starts from scratch and nothing is saved.
	store, err := persist.Open(dbPath, logger)
	if err != nil {
		logger.Warn("persistence disabled", logging.F("err", err.Error()))
		store = nil
	}
	defer store.Close()

	st := state.New(
		state.WithPersister(store),
		state.WithLogger(logger),
	)

	var svc api.Service
	if *mock || cfg.API.Mock {
		svc = api.NewMock(cfg.MockLatency())
	} else {
		svc = api.New(cfg.APIBaseURL(), cfg.RequestTimeout())
	}

	// Seed session and profile from the persisted entries before the first
	// routing decision, so a reload does not spuriously log the user out.
	if token, expiresAt, ok := store.LoadAuth(); ok {
		st.SetSession(token, expiresAt)
		svc.SetToken(token)
	}
	if profile, ok := store.LoadProfile(); ok {
		st.SetProfile(profile)
	}
	st.SetTheme(store.LoadTheme())

	svc.OnFailure(func(failure *api.Failure) {
		st.HandleFailure(failure)
		if failure.Unauthorized() {
			svc.SetToken("")
		}
	})

	return app.Run(svc, st, logger)
}

func runConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	out, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func newLogger(cfg config.Config) logging.Logger {
	dataDir, err := config.DataDir()
	if err != nil {
		return logging.Nop()
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return logging.Nop()
	}
	file, err := os.OpenFile(filepath.Join(dataDir, "examdesk.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return logging.Nop()
	}
	return logging.New(file, logging.ParseLevel(cfg.LogLevel()))
}

func exitOnErr(label string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}
