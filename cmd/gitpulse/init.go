package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitpulse-cli/gitpulse/internal/output"
	"github.com/gitpulse-cli/gitpulse/internal/store"
)

var initCmd = &cobra.Command{
	Use:         "init",
	Short:       "Initialize a new gitpulse workspace",
	Annotations: map[string]string{"skipDB": "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		cfg := getCfg(cmd)

		exists, err := cfg.Exists()
		if err != nil {
			return cmdErr(fmt.Errorf("checking workspace: %w", err), output.ErrGeneral)
		}

		if exists {
			w.Warn("Workspace already exists at %s", cfg.DBPath)

			conn, err := store.Open(cfg.DBPath)
			if err != nil {
				return cmdErr(fmt.Errorf("opening workspace: %w", err), output.ErrGeneral)
			}
			defer conn.Close()

			schemaVersion, err := store.SchemaVersion(conn)
			if err != nil {
				return cmdErr(fmt.Errorf("reading schema version: %w", err), output.ErrGeneral)
			}

			w.Success(struct {
				Path          string `json:"path"`
				DBPath        string `json:"db_path"`
				SchemaVersion int    `json:"schema_version"`
				Created       bool   `json:"created"`
			}{
				Path:          cfg.WorkDir,
				DBPath:        cfg.DBPath,
				SchemaVersion: schemaVersion,
				Created:       false,
			}, "Workspace already initialized")

			return nil
		}

		if err := os.MkdirAll(cfg.WorkDir, 0o755); err != nil {
			return cmdErr(fmt.Errorf("creating directory: %w", err), output.ErrGeneral)
		}

		conn, err := store.Open(cfg.DBPath)
		if err != nil {
			return cmdErr(fmt.Errorf("opening workspace: %w", err), output.ErrGeneral)
		}
		defer conn.Close()

		if err := store.Initialize(conn); err != nil {
			return cmdErr(fmt.Errorf("initializing schema: %w", err), output.ErrGeneral)
		}

		schemaVersion, err := store.SchemaVersion(conn)
		if err != nil {
			return cmdErr(fmt.Errorf("reading schema version: %w", err), output.ErrGeneral)
		}

		w.Success(struct {
			Path          string `json:"path"`
			DBPath        string `json:"db_path"`
			SchemaVersion int    `json:"schema_version"`
			Created       bool   `json:"created"`
		}{
			Path:          cfg.WorkDir,
			DBPath:        cfg.DBPath,
			SchemaVersion: schemaVersion,
			Created:       true,
		}, "Initialized gitpulse workspace")

		w.Info("Initialized workspace at %s", cfg.DBPath)
		w.Info("Consider adding .gitpulse/ to your .gitignore")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
