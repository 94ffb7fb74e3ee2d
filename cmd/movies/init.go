package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/uwuok/movie-management-system/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file and create the database",
	Long: `Write a default config file and create the database schema.

An existing config file is left unchanged. The database is created at the
resolved db_path if it does not exist yet.

Creates:
  $XDG_CONFIG_HOME/movies/config.yml   # unless --config is given
  movies.db                            # or the configured db_path`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

// InitResponse reports what init created.
type InitResponse struct {
	StatusResponse
	ConfigCreated bool   `json:"config_created"`
	DBPath        string `json:"db_path"`
}

func runInit(cmd *cobra.Command, args []string) error {
	path := resolvedConfigPath()

	created := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := config.Default().Save(path); err != nil {
			exitWithError(ExitConfigError, "writing config: %v", err)
		}
		created = true
	} else if err != nil {
		exitWithError(ExitConfigError, "checking config: %v", err)
	}

	a := openApp()
	defer a.Close()

	resp := InitResponse{
		StatusResponse: StatusResponse{Status: "initialized", Path: path},
		ConfigCreated:  created,
		DBPath:         a.cfg.DBPath,
	}

	if humanOutput {
		if created {
			outputHuman("Wrote default config to %s\n", path)
		} else {
			outputHuman("Using existing config %s\n", path)
		}
		outputHuman("Database ready at %s\n", resp.DBPath)
		return nil
	}
	return outputJSON(resp)
}

// resolvedConfigPath returns --config when set, else the default location.
func resolvedConfigPath() string {
	if configPath != "" {
		return config.ExpandPath(configPath)
	}
	return config.DefaultPath()
}
