package system

import (
	"path/filepath"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/hae/internal/cli"
	"github.com/julianstephens/hae/internal/config"
	"github.com/julianstephens/hae/internal/storage/sqlite"
)

func setupTestDoctor(t *testing.T) (*cli.Context, *sqlite.Store) {
	t.Helper()
	gokeyring.MockInit()

	dataDir := t.TempDir()
	journal := sqlite.NewStore(filepath.Join(dataDir, "hae.db"))
	if err := journal.Init(); err != nil {
		t.Fatalf("failed to initialize journal: %v", err)
	}
	t.Cleanup(func() { journal.Close() })

	ctx := &cli.Context{
		Config: &config.Config{
			API:     config.APIConfig{BaseURL: "http://localhost:8080", Timeout: time.Second},
			DataDir: dataDir,
		},
		Journal: journal,
	}
	return ctx, journal
}

func TestDoctorCmd_Healthy(t *testing.T) {
	ctx, _ := setupTestDoctor(t)

	// No token and no email only produce a warning and a skip.
	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("doctor command failed on a healthy setup: %v", err)
	}
}

func TestDoctorCmd_BrokenConfig(t *testing.T) {
	ctx, _ := setupTestDoctor(t)
	ctx.Config.API.BaseURL = "not a url"

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Error("doctor command should fail with an invalid base URL")
	}
}

func TestDoctorCmd_ClosedJournal(t *testing.T) {
	ctx, journal := setupTestDoctor(t)
	journal.Close()

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Error("doctor command should fail with a closed journal")
	}
}

func TestDoctorCmd_SessionFails(t *testing.T) {
	ctx, _ := setupTestDoctor(t)
	ctx.Config.Session.Email = "ana@fatec.sp.gov.br"
	ctx.Backend = &fakeBackend{err: errTest}

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Error("doctor command should fail when the professor cannot be resolved")
	}
}

func TestCheckJournal_NoJournal(t *testing.T) {
	if err := checkJournal(&cli.Context{}); err == nil {
		t.Error("checkJournal should fail without a journal")
	}
}

func TestCheckClockTimezone(t *testing.T) {
	if err := checkClockTimezone(); err != nil {
		t.Errorf("clock/timezone check failed: %v", err)
	}
}

func TestCheckBackupsPresent(t *testing.T) {
	ctx, _ := setupTestDoctor(t)
	if err := checkBackupsPresent(ctx); err == nil {
		t.Error("checkBackupsPresent should warn when there are no snapshots")
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("BackupCreateCmd.Run() error = %v", err)
	}
	if err := checkBackupsPresent(ctx); err != nil {
		t.Errorf("checkBackupsPresent error = %v", err)
	}
}
