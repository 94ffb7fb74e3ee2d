package main

import (
	"github.com/spf13/cobra"
)

var modifyEdits movieInput

func init() {
	modifyCmd.Flags().StringVar(&modifyEdits.Title, "title", "", "New title")
	modifyCmd.Flags().StringVar(&modifyEdits.Director, "director", "", "New director")
	modifyCmd.Flags().StringVar(&modifyEdits.Genre, "genre", "", "New genre")
	modifyCmd.Flags().StringVar(&modifyEdits.Year, "year", "", "New release year")
	modifyCmd.Flags().StringVar(&modifyEdits.Rating, "rating", "", "New rating from 1.0 to 10.0")
	rootCmd.AddCommand(modifyCmd)
}

var modifyCmd = &cobra.Command{
	Use:   "modify <title>",
	Short: "Modify movies whose title matches",
	Long: `Modify every movie whose title contains the given text.

Fields left unset keep their current value. When several movies match, the
current values are taken from the first match and every match receives the
same result.

Usage:
  movies modify Inception --rating 9.0
  movies modify "Dark Knight" --genre Action --year 2008`,
	Args: cobra.ExactArgs(1),
	RunE: runModify,
}

func runModify(cmd *cobra.Command, args []string) error {
	a := openApp()
	defer a.Close()

	changed := false
	for _, name := range []string{"title", "director", "genre", "year", "rating"} {
		changed = changed || cmd.Flags().Changed(name)
	}
	if !changed {
		exitWithError(ExitError, "no update flags provided (use --title, --director, --genre, --year or --rating)")
	}

	filter := args[0]
	matches, err := a.db.FindByTitleContains(filter)
	if err != nil {
		exitWithErr("finding movies", err)
	}
	if len(matches) == 0 {
		exitWithError(ExitError, "no movies match %q", filter)
	}

	updated, err := applyEdits(matches[0], modifyEdits)
	if err != nil {
		exitWithErr("modifying movies", err)
	}

	n, err := a.db.Update(filter, updated)
	if err != nil {
		exitWithErr("modifying movies", err)
	}
	a.logger.PrintInfo("updated movies", map[string]string{"filter": filter})

	if humanOutput {
		outputHuman("Updated %d movies\n", n)
		return nil
	}
	return outputJSON(CountResponse{Updated: &n})
}
