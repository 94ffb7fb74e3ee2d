// Package main provides the movies CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	// configPath overrides the default config file location
	configPath string
	// dbPathFlag overrides the configured database path
	dbPathFlag string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "movies",
	Short: "Movie inventory manager",
	Long: `movies keeps a small inventory of movies in a local SQLite database.

Run without arguments in a terminal to open the interactive menu, or use the
subcommands directly. Subcommands print JSON by default; pass --human for
readable text.

Configuration is read from $XDG_CONFIG_HOME/movies/config.yml, then from the
environment (MOVIES_DB, MOVIES_IMPORT_FILE, MOVIES_EXPORT_FILE,
MOVIES_LOG_LEVEL, MOVIES_LOG_FILE; a .env file in the working directory is
loaded first), then from flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runRoot,
}

func init() {
	// Load .env file if present (for MOVIES_* settings)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default $XDG_CONFIG_HOME/movies/config.yml)")
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "Path to the SQLite database (overrides config)")
	rootCmd.Version = Version
}

func runRoot(cmd *cobra.Command, args []string) error {
	if !stdinIsTerminal() {
		return cmd.Help()
	}
	return runShell(cmd, args)
}

// stdinIsTerminal reports whether a person is typing on stdin.
func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
