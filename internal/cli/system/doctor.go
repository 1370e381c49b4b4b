package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/hae/internal/cli"
	"github.com/julianstephens/hae/internal/keyring"
	"github.com/julianstephens/hae/internal/storage/sqlite"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	if err := checkConfig(ctx); err != nil {
		fmt.Printf("❌ Configuration: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Configuration: OK\n")
	}

	if err := checkJournal(ctx); err != nil {
		fmt.Printf("❌ Local journal: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Local journal: OK\n")
	}

	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Journal snapshots: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Journal snapshots: OK\n")
	}

	// A missing token is only a warning: the dev server runs without one.
	if err := checkToken(); err != nil {
		fmt.Printf("⚠ API token: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ API token: OK\n")
	}

	if ctx.Config == nil || ctx.Config.Session.Email == "" {
		fmt.Printf("⊘ Backend session: SKIPPED (no session.email configured)\n")
	} else if _, err := ctx.Session(); err != nil {
		fmt.Printf("❌ Backend session: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Backend session: OK\n")
	}

	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkConfig(ctx *cli.Context) error {
	if ctx.Config == nil {
		return errors.New("configuration not loaded")
	}
	return ctx.Config.Validate()
}

func checkJournal(ctx *cli.Context) error {
	if ctx.Journal == nil {
		return errors.New("journal not opened")
	}
	if _, err := ctx.Journal.ListSubmissions("", 1); err != nil {
		return fmt.Errorf("failed to query journal: %w", err)
	}

	store, ok := ctx.Journal.(*sqlite.Store)
	if !ok {
		return nil
	}
	current, latest, err := store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("journal schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	snapshots, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}
	if len(snapshots) == 0 {
		return errors.New("no snapshots found - consider creating one with 'hae backup'")
	}
	return nil
}

func checkToken() error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	if _, err := keyring.GetToken(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no token stored - use 'hae auth set-token'")
		}
		return err
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	// Date rules compare calendar days, so a UTC machine may disagree with the campus.
	if _, offset := now.Zone(); offset == 0 {
		fmt.Printf("   Note: timezone is UTC\n")
	}
	return nil
}
