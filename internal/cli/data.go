package cli

import (
	"context"
	"fmt"
	"os"
)

type DataCmd struct {
	Export DataExportCmd `cmd:"" help:"Export all data as JSON."`
	Import DataImportCmd `cmd:"" help:"Import data from a JSON backup."`
	Reset  DataResetCmd  `cmd:"" help:"Erase all data and start over."`
}

type DataExportCmd struct {
	Out string `help:"Write to a file instead of stdout." default:""`
}

func (c *DataExportCmd) Run(ctx *Context) error {
	ctx.State.Flush()

	doc, err := ctx.Svc.Export(context.Background())
	if err != nil {
		return err
	}

	if c.Out == "" {
		fmt.Println(doc)
		return nil
	}
	if err := os.WriteFile(c.Out, []byte(doc), 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Exported data to %s\n", c.Out)
	return nil
}

type DataImportCmd struct {
	File string `arg:"" help:"Path to a JSON backup file."`
}

func (c *DataImportCmd) Run(ctx *Context) error {
	raw, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	bg := context.Background()
	ctx.State.Flush()
	ctx.PerformAutomaticBackup(bg)

	if !ctx.Svc.Import(bg, string(raw)) {
		return fmt.Errorf("import failed: file is not a valid backup")
	}
	if err := ctx.State.Load(bg); err != nil {
		return err
	}

	fmt.Printf("Imported %d habits.\n", len(ctx.State.Habits()))
	return nil
}

type DataResetCmd struct {
	Force bool `help:"Skip the confirmation prompt."`
}

func (c *DataResetCmd) Run(ctx *Context) error {
	if !c.Force {
		return fmt.Errorf("reset erases all habits and history; re-run with --force")
	}

	bg := context.Background()
	ctx.PerformAutomaticBackup(bg)

	if err := ctx.State.ResetAll(bg); err != nil {
		return err
	}
	fmt.Println("All data erased. Starter habits restored.")
	return nil
}
