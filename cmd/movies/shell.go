package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/uwuok/movie-management-system/internal/importer"
	"github.com/uwuok/movie-management-system/internal/movie"
)

func init() {
	rootCmd.AddCommand(shellCmd)
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open the interactive menu",
	Long: `Open the interactive menu.

The menu offers seven actions: import, search, add, modify, delete, export
and quit. Input is read line by line from stdin, so the shell can also be
driven by a script:

  printf '2\ny\n7\n' | movies shell`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	a := openApp()
	defer a.Close()

	if err := newShell(os.Stdin, os.Stdout, a).run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		a.logger.PrintFatal(err, nil)
	}
	return nil
}

const menu = `
----- Movie Manager -----
1. Import movies
2. Search movies
3. Add a movie
4. Modify movies
5. Delete movies
6. Export movies
7. Quit
-------------------------
`

// shell is the interactive front end. Every action reports failures to out
// and returns to the menu; only reading input can end the loop early.
type shell struct {
	in  *bufio.Scanner
	out io.Writer
	app *app
}

func newShell(in io.Reader, out io.Writer, a *app) *shell {
	return &shell{in: bufio.NewScanner(in), out: out, app: a}
}

// run shows the menu until the user quits or input ends.
func (s *shell) run() error {
	for {
		fmt.Fprint(s.out, menu)
		choice, err := s.prompt("Choose an option (1-7): ")
		if err != nil {
			return s.finish(err)
		}

		var actionErr error
		switch strings.TrimSpace(choice) {
		case "1":
			actionErr = s.importMovies()
		case "2":
			actionErr = s.searchMovies()
		case "3":
			actionErr = s.addMovie()
		case "4":
			actionErr = s.modifyMovies()
		case "5":
			actionErr = s.deleteMovies()
		case "6":
			actionErr = s.exportMovies()
		case "7":
			fmt.Fprintln(s.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid option, enter a number from 1 to 7.")
			continue
		}

		if actionErr != nil {
			if errors.Is(actionErr, io.EOF) {
				return s.finish(actionErr)
			}
			fmt.Fprintf(s.out, "error: %v\n", actionErr)
			s.app.logger.PrintError(actionErr, map[string]string{"choice": choice})
		}
	}
}

// finish ends the loop; running out of input is a normal way to quit.
func (s *shell) finish(err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(s.out)
		return nil
	}
	return err
}

// prompt writes label and reads one line. It returns io.EOF when input ends.
func (s *shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

// confirm asks a yes/no question; anything but y/yes is no.
func (s *shell) confirm(label string) (bool, error) {
	answer, err := s.prompt(label)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

// selectMovies asks whether to use every movie or a title filter and
// returns the chosen filter ("" for all).
func (s *shell) selectMovies(allLabel, titleLabel string) (string, error) {
	all, err := s.confirm(allLabel)
	if err != nil || all {
		return "", err
	}
	return s.prompt(titleLabel)
}

func ratingLabel(name string) string {
	return fmt.Sprintf("%s %.1f - %.1f", name, movie.MinRating, movie.MaxRating)
}

func (s *shell) importMovies() error {
	path := s.app.cfg.ImportPath
	report, err := s.app.importer.ImportFrom(path)
	if err != nil {
		return err
	}

	for _, d := range report.Details {
		switch d.Action {
		case importer.ActionSkip:
			fmt.Fprintf(s.out, "Movie %q already exists, skipped.\n", d.Title)
		case importer.ActionFail:
			fmt.Fprintf(s.out, "Entry %d (%s) not imported: %s\n", d.Index, d.Title, d.Reason)
		}
	}
	fmt.Fprintf(s.out, "Imported %s movies from %s (%d skipped, %d failed).\n",
		humanize.Comma(int64(report.Inserted)), path, report.Skipped, report.Failed)

	s.app.logger.PrintInfo("import finished", map[string]string{
		"path":     path,
		"inserted": strconv.Itoa(report.Inserted),
		"skipped":  strconv.Itoa(report.Skipped),
		"failed":   strconv.Itoa(report.Failed),
	})
	return nil
}

func (s *shell) searchMovies() error {
	filter, err := s.selectMovies("Search all movies? (y/n): ", "Title: ")
	if err != nil {
		return err
	}

	movies, err := s.app.db.FindByTitleContains(strings.TrimSpace(filter))
	if err != nil {
		return err
	}
	if len(movies) == 0 {
		fmt.Fprintln(s.out, "No matching movies found.")
		return nil
	}

	fmt.Fprintln(s.out)
	printMovies(s.out, movies)
	return nil
}

func (s *shell) addMovie() error {
	var in movieInput
	fields := []struct {
		label string
		dest  *string
	}{
		{"Title: ", &in.Title},
		{"Director: ", &in.Director},
		{"Genre: ", &in.Genre},
		{"Year: ", &in.Year},
		{ratingLabel("Rating") + ": ", &in.Rating},
	}
	for _, f := range fields {
		value, err := s.prompt(f.label)
		if err != nil {
			return err
		}
		*f.dest = value
	}

	m, err := parseMovieInput(in)
	if err != nil {
		return err
	}

	id, err := s.app.db.Create(m)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Movie added (id %d).\n", id)
	s.app.logger.PrintInfo("added movie", map[string]string{"id": strconv.FormatInt(id, 10), "title": m.Title})
	return nil
}

func (s *shell) modifyMovies() error {
	filter, err := s.prompt("Title of the movie to modify: ")
	if err != nil {
		return err
	}
	filter = strings.TrimSpace(filter)

	matches, err := s.app.db.FindByTitleContains(filter)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintln(s.out, "No matching movies found.")
		return nil
	}

	fmt.Fprintln(s.out)
	printMovies(s.out, matches)
	fmt.Fprintln(s.out)
	if len(matches) > 1 {
		fmt.Fprintf(s.out, "%d movies match; all of them will receive the values below.\n", len(matches))
	}

	var edits movieInput
	fields := []struct {
		label string
		dest  *string
	}{
		{"New title (Enter to keep): ", &edits.Title},
		{"New director (Enter to keep): ", &edits.Director},
		{"New genre (Enter to keep): ", &edits.Genre},
		{"New year (Enter to keep): ", &edits.Year},
		{ratingLabel("New rating") + " (Enter to keep): ", &edits.Rating},
	}
	for _, f := range fields {
		value, err := s.prompt(f.label)
		if err != nil {
			return err
		}
		*f.dest = value
	}

	updated, err := applyEdits(matches[0], edits)
	if err != nil {
		return err
	}

	n, err := s.app.db.Update(filter, updated)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Updated %d movies.\n", n)
	s.app.logger.PrintInfo("updated movies", map[string]string{"filter": filter, "updated": strconv.FormatInt(n, 10)})
	return nil
}

func (s *shell) deleteMovies() error {
	all, err := s.confirm("Delete all movies? (y/n): ")
	if err != nil {
		return err
	}

	if all {
		n, err := s.app.db.DeleteAll()
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Deleted %d movies.\n", n)
		s.app.logger.PrintInfo("deleted all movies", map[string]string{"deleted": strconv.FormatInt(n, 10)})
		return nil
	}

	filter, err := s.prompt("Title of the movie to delete: ")
	if err != nil {
		return err
	}
	filter = strings.TrimSpace(filter)

	matches, err := s.app.db.FindByTitleContains(filter)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintln(s.out, "No matching movies found.")
		return nil
	}

	fmt.Fprintln(s.out)
	printMovies(s.out, matches)
	ok, err := s.confirm("Delete these movies? (y/n): ")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(s.out, "Nothing deleted.")
		return nil
	}

	n, err := s.app.db.DeleteByTitleContains(filter)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Deleted %d movies.\n", n)
	s.app.logger.PrintInfo("deleted movies", map[string]string{"filter": filter, "deleted": strconv.FormatInt(n, 10)})
	return nil
}

func (s *shell) exportMovies() error {
	filter, err := s.selectMovies("Export all movies? (y/n): ", "Title of the movies to export: ")
	if err != nil {
		return err
	}

	path := s.app.cfg.ExportPath
	result, err := s.app.exporter.ExportTo(path, strings.TrimSpace(filter))
	if err != nil {
		return err
	}
	if result.Empty() {
		fmt.Fprintln(s.out, "No matching movies found.")
		return nil
	}

	fmt.Fprintf(s.out, "Exported %d movies to %s (%s).\n", result.Count, path, humanize.Bytes(uint64(result.Bytes)))
	s.app.logger.PrintInfo("export finished", map[string]string{"path": path, "count": strconv.Itoa(result.Count)})
	return nil
}
