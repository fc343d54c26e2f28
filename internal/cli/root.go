// Package cli implements the casetrail CLI commands.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/casetrail/casetrail/internal/archive"
	"github.com/casetrail/casetrail/internal/config"
	"github.com/casetrail/casetrail/internal/session"
	"github.com/casetrail/casetrail/internal/store"
)

var configPath string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "casetrail",
	Short: "Track legal research sessions",
	Long:  "Track legal research sessions: queries, crawls, and their results, resumable across runs. State lives under ~/.casetrail (or $CASETRAIL_HOME).",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: <state dir>/config.yaml)")
}

func loadConfig() config.Config {
	path := configPath
	if path == "" {
		path = filepath.Join(config.BaseDir(), "config.yaml")
	}
	cfg, err := config.Load(path)
	if err != nil {
		exitErr("load config", err)
	}
	return cfg
}

// openManager wires the store, archive, and manager from config. Callers
// must Close the returned archive.
func openManager() (*session.Manager, *archive.Archive, config.Config) {
	cfg := loadConfig()

	st, err := store.NewFileStore(cfg.SessionsDir)
	if err != nil {
		exitErr("open store", err)
	}
	arc, err := archive.Open(cfg.ArchivePath)
	if err != nil {
		exitErr("open archive", err)
	}

	m := session.NewManager(st, arc, session.Options{
		IDPrefix:     cfg.IDPrefix,
		IndexQueries: cfg.IndexQueries,
	})
	return m, arc, cfg
}

// exitErr reports the failure and exits with a code callers can branch on:
// 2 when the id or ref does not exist, 1 for everything else.
func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, archive.ErrNotFound) {
		os.Exit(2)
	}
	os.Exit(1)
}
