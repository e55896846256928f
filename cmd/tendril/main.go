package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tendril/internal/cli"
	"github.com/julianstephens/tendril/internal/constants"
	"github.com/julianstephens/tendril/internal/errors"
	"github.com/julianstephens/tendril/internal/logger"
	"github.com/julianstephens/tendril/internal/storage"
	"github.com/julianstephens/tendril/internal/store"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path." type:"string" default:"~/.config/tendril/tendril.db"`
	Debug   bool   `help:"Enable debug logging."`
	File    bool   `help:"Use the plain JSON file backend instead of SQLite."`

	Habit  cli.HabitCmd  `cmd:"" help:"Manage habits and completions."`
	Data   cli.DataCmd   `cmd:"" help:"Export, import, or reset all data."`
	Backup cli.BackupCmd `cmd:"" help:"Manage data backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker: streaks, completion rates, and history charts"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := expandPath(CLI.Config)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(configPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	var kv storage.KV
	if CLI.File {
		kv = storage.NewFileKV(configPath)
	} else {
		sqliteKV := storage.NewSQLiteKV(configPath)
		if err := sqliteKV.Open(); err != nil {
			errors.Fatal(err)
		}
		kv = sqliteKV
	}
	defer kv.Close()

	svc := storage.NewService(kv)
	state := store.New(svc)
	if err := state.Load(context.Background()); err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		State:      state,
		Svc:        svc,
		ConfigPath: configPath,
	}

	err := ctx.Run(appCtx)
	state.Flush()
	if err != nil {
		errors.Fatal(err)
	}
}

// expandPath resolves a leading ~ against the user's home directory.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
