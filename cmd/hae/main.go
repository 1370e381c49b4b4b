package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/hae/internal/api"
	"github.com/julianstephens/hae/internal/cli"
	"github.com/julianstephens/hae/internal/cli/forms"
	"github.com/julianstephens/hae/internal/cli/records"
	"github.com/julianstephens/hae/internal/cli/system"
	"github.com/julianstephens/hae/internal/config"
	"github.com/julianstephens/hae/internal/constants"
	apperrors "github.com/julianstephens/hae/internal/errors"
	"github.com/julianstephens/hae/internal/keyring"
	"github.com/julianstephens/hae/internal/logger"
	"github.com/julianstephens/hae/internal/scheduler"
	"github.com/julianstephens/hae/internal/storage/sqlite"
	"github.com/julianstephens/hae/internal/validation"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path (defaults to config.yaml in the data directory)." type:"path"`
	Debug   bool   `help:"Log debug output to stderr."`

	New       forms.NewCmd        `cmd:"" help:"Fill in a new HAE request." default:"1"`
	Edit      forms.EditCmd       `cmd:"" help:"Edit an existing request."`
	Closure   forms.ClosureCmd    `cmd:"" help:"Request the closure of an approved request."`
	Validate  forms.ValidateCmd   `cmd:"" help:"Check a draft file without sending it."`
	Submit    forms.SubmitCmd     `cmd:"" help:"Send a draft file without the interactive form."`
	List      records.ListCmd     `cmd:"" help:"List your requests."`
	History   records.HistoryCmd  `cmd:"" help:"Show locally recorded submissions."`
	Auth      system.AuthCmd      `cmd:"" help:"Manage the API token."`
	Backup    system.BackupCmd    `cmd:"" help:"Snapshot and restore the local journal."`
	Doctor    system.DoctorCmd    `cmd:"" help:"Run health checks and diagnostics."`
	DevServer system.DevServerCmd `cmd:"" name:"dev-server" help:"Run an in-memory HAE backend for local use."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Terminal client for HAE activity-hour requests"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	debug := CLI.Debug || cfg.Log.Debug

	if err := logger.Init(logger.Config{Debug: debug, DataDir: cfg.DataDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}

	token, err := keyring.GetToken()
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		logger.Warn("Could not read API token", "error", err)
	}

	journal := sqlite.NewStore(cfg.JournalPath())
	if err := journal.Init(); err != nil {
		apperrors.Fatal(fmt.Errorf("failed to open journal: %w", err))
	}
	defer journal.Close()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCtx := &cli.Context{
		Ctx:       sigCtx,
		Config:    cfg,
		Backend:   api.New(cfg.API.BaseURL, token, cfg.API.Timeout),
		Token:     token,
		Journal:   journal,
		Validator: validation.New(),
		Scheduler: scheduler.New(),
		Debug:     debug,
	}

	err = ctx.Run(appCtx)
	if err != nil {
		logger.Error("Command failed", "command", ctx.Command(), "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		journal.Close()
		os.Exit(1)
	}
}
