package main

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/still-asking/sapn-generator/internal/migrations"
)

type migrationStatus struct {
	Database string `json:"database" yaml:"database"`
	Version  uint   `json:"version" yaml:"version"`
	Dirty    bool   `json:"dirty" yaml:"dirty"`
}

func newMigrateCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB(c.cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := migrations.RunMigrations(db, c.cfg.Database.Type, true); err != nil {
				return err
			}
			return c.printMigrationStatus(cmd.OutOrStdout(), db)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB(c.cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()
			return c.printMigrationStatus(cmd.OutOrStdout(), db)
		},
	})
	return cmd
}

func (c *cli) printMigrationStatus(w io.Writer, db *sql.DB) error {
	version, dirty, err := migrations.Version(db, c.cfg.Database.Type)
	if err != nil {
		return err
	}
	status := migrationStatus{Database: c.cfg.Database.Type, Version: version, Dirty: dirty}
	return render(w, c.format, status, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s schema version %d (dirty=%t)\n", status.Database, status.Version, status.Dirty)
		return err
	})
}
