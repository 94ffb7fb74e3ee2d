package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long: `Show the configuration after the config file, environment and flags
have been applied.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

// ConfigResponse is the JSON form of the resolved configuration.
type ConfigResponse struct {
	ConfigFile string `json:"config_file"`
	DBPath     string `json:"db_path"`
	ImportPath string `json:"import_path"`
	ExportPath string `json:"export_path"`
	LogLevel   string `json:"log_level"`
	LogFile    string `json:"log_file,omitempty"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	resp := ConfigResponse{
		ConfigFile: resolvedConfigPath(),
		DBPath:     cfg.DBPath,
		ImportPath: cfg.ImportPath,
		ExportPath: cfg.ExportPath,
		LogLevel:   cfg.LogLevel,
		LogFile:    cfg.LogFile,
	}

	if humanOutput {
		outputHuman("config file: %s\n", resp.ConfigFile)
		outputHuman("db_path:     %s\n", resp.DBPath)
		outputHuman("import_path: %s\n", resp.ImportPath)
		outputHuman("export_path: %s\n", resp.ExportPath)
		outputHuman("log_level:   %s\n", resp.LogLevel)
		if resp.LogFile != "" {
			outputHuman("log_file:    %s\n", resp.LogFile)
		}
		return nil
	}
	return outputJSON(resp)
}
