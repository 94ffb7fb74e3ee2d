package main

import (
	"github.com/spf13/cobra"

	"github.com/uwuok/movie-management-system/internal/movie"
)

var searchID int64

func init() {
	searchCmd.Flags().Int64Var(&searchID, "id", 0, "Show the movie with this id instead of searching titles")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [title]",
	Short: "Search movies by title",
	Long: `Search movies whose title contains the given text (case-insensitive
for ASCII letters). With no argument every movie is listed.

With --id, the single movie with that id is printed as an object.

Usage:
  movies search
  movies search incep --human
  movies search --id 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	byID := cmd.Flags().Changed("id")
	if byID && len(args) == 1 {
		exitWithError(ExitError, "pass either a title or --id, not both")
	}

	a := openApp()
	defer a.Close()

	if byID {
		m, err := a.db.FindByID(searchID)
		if err != nil {
			exitWithErr("finding movie", err)
		}
		if m == nil {
			exitWithError(ExitError, "movie %d not found", searchID)
		}
		if humanOutput {
			printMovies(cmd.OutOrStdout(), []movie.Movie{*m})
			return nil
		}
		return outputJSON(m)
	}

	var filter string
	if len(args) == 1 {
		filter = args[0]
	}

	movies, err := a.db.FindByTitleContains(filter)
	if err != nil {
		exitWithErr("searching movies", err)
	}

	if humanOutput {
		if len(movies) == 0 {
			outputHuman("No matching movies found.\n")
			return nil
		}
		printMovies(cmd.OutOrStdout(), movies)
		return nil
	}
	return outputJSON(movies)
}
