package system

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/hae/internal/backup"
	"github.com/julianstephens/hae/internal/cli"
	"github.com/julianstephens/hae/internal/logger"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Snapshot the local journal." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List journal snapshots."`
	Restore BackupRestoreCmd `cmd:"" help:"Replace the journal with a snapshot."`
}

var errNoJournal = errors.New("journal not opened")

func manager(ctx *cli.Context) (*backup.Manager, error) {
	if ctx.Journal == nil {
		return nil, errNoJournal
	}
	return backup.NewManager(ctx.Journal.GetPath()), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("✓ Snapshot created: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	snapshots, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if len(snapshots) == 0 {
		fmt.Println("No snapshots found.")
		fmt.Printf("Snapshots are stored in: %s\n", mgr.Dir())
		return nil
	}

	fmt.Printf("Available snapshots (%d total, keeping most recent %d):\n\n", len(snapshots), backup.MaxSnapshots)
	for _, s := range snapshots {
		fmt.Printf("  %s  %s  (%.1f KB)\n", s.Taken.Format("2006-01-02 15:04:05"), filepath.Base(s.Path), float64(s.Size)/1024.0)
	}
	fmt.Printf("\nSnapshot directory: %s\n", mgr.Dir())
	return nil
}

type BackupRestoreCmd struct {
	Snapshot string `arg:"" help:"Path or file name of the snapshot to restore."`
	Yes      bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Resolve(c.Snapshot)
	if err != nil {
		return err
	}

	// A form session writes to the journal when it submits.
	lock, err := ctx.Lock("backup restore")
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release lock", "error", err)
		}
	}()

	if !c.Yes {
		fmt.Println("⚠ This replaces your local submission history with the snapshot.")
		fmt.Println("A snapshot of the current journal is taken first.")
		fmt.Printf("\nRestore from: %s\n", path)
		fmt.Print("Continue? [y/N]: ")

		response, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Journal.Close(); err != nil {
		logger.Warn("Failed to close journal before restore", "error", err)
	}
	previous, err := mgr.Restore(path)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	if previous != "" {
		fmt.Printf("Previous journal saved as: %s\n", filepath.Base(previous))
	}
	if err := ctx.Journal.Init(); err != nil {
		return fmt.Errorf("restored journal could not be opened: %w", err)
	}

	fmt.Println("✓ Journal restored.")
	return nil
}
