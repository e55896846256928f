package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/julianstephens/tendril/internal/backup"
)

type BackupCmd struct {
	Create BackupCreateCmd `cmd:"" help:"Create a manual backup." default:"1"`
	List   BackupListCmd   `cmd:"" help:"List available backups."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	ctx.State.Flush()

	mgr := backup.NewManager(ctx.ConfigPath)
	path, err := mgr.Create(context.Background(), ctx.Svc)
	if err != nil {
		return err
	}
	fmt.Printf("Created backup: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.ConfigPath)
	backups, err := mgr.List()
	if err != nil {
		return err
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}

	for _, b := range backups {
		fmt.Printf("%s  %s  %d bytes\n",
			b.Timestamp.Format("2006-01-02 15:04"), filepath.Base(b.Path), b.Size)
	}
	return nil
}
