package main

import (
	"github.com/spf13/cobra"

	"github.com/uwuok/movie-management-system/internal/movie"
)

var (
	addTitle    string
	addDirector string
	addGenre    string
	addYear     int
	addRating   float64
)

func init() {
	addCmd.Flags().StringVar(&addTitle, "title", "", "Movie title")
	addCmd.Flags().StringVar(&addDirector, "director", "", "Director")
	addCmd.Flags().StringVar(&addGenre, "genre", "", "Genre")
	addCmd.Flags().IntVar(&addYear, "year", 0, "Release year")
	addCmd.Flags().Float64Var(&addRating, "rating", 0, "Rating from 1.0 to 10.0")
	for _, name := range []string{"title", "director", "genre", "year", "rating"} {
		addCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a movie",
	Long: `Add a single movie.

Usage:
  movies add --title Inception --director "Christopher Nolan" \
    --genre Sci-Fi --year 2010 --rating 8.8`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	a := openApp()
	defer a.Close()

	m := movie.Movie{
		Title:    addTitle,
		Director: addDirector,
		Genre:    addGenre,
		Year:     addYear,
		Rating:   addRating,
	}.Normalize()

	id, err := a.db.Create(m)
	if err != nil {
		exitWithErr("adding movie", err)
	}
	m.ID = id
	a.logger.PrintInfo("added movie", map[string]string{"title": m.Title})

	if humanOutput {
		outputHuman("Added movie %d: %s\n", m.ID, m.Title)
		return nil
	}
	return outputJSON(m)
}
