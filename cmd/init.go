package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zjrosen/platekeeper/internal/config"
	"github.com/zjrosen/platekeeper/internal/infrastructure/sqlite"
	"github.com/zjrosen/platekeeper/internal/log"
	"github.com/zjrosen/platekeeper/internal/paths"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file and the registry database",
	Long: `Write the default config and create the registry database with its schema.

The config goes to --config, or .platekeeper/config.yaml when none is given.
An existing config is kept unless --force is set. With --db the database
location is recorded as db_path.

Examples:
  platekeeper init
  platekeeper init --db /srv/gate`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoStore: "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		target := cfgFile
		if target == "" {
			target = filepath.Join(paths.DataDir, "config.yaml")
		}

		out := cmd.OutOrStdout()
		if fileExists(target) && !initForce {
			fmt.Fprintf(out, "Config already exists at %s\n", target)
		} else {
			if err := config.WriteDefaultConfig(target); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote config to %s\n", target)
		}

		source := cfg.DBPath
		if dbFlag != "" {
			if err := config.SaveDBPath(target, dbFlag); err != nil {
				return err
			}
			source = dbFlag
		}

		dbPath := paths.ResolveDBPath(source)
		db, err := sqlite.NewDB(dbPath)
		if err != nil {
			return fmt.Errorf("creating registry %s: %w", dbPath, err)
		}
		if err := db.Close(); err != nil {
			log.ErrorErr(log.CatDB, "closing registry failed", err)
		}
		fmt.Fprintf(out, "Registry ready at %s\n", dbPath)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
