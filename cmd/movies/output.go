package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/uwuok/movie-management-system/internal/movie"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	return writeJSON(os.Stdout, v)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// exitWithErr reports err with a short context prefix and exits with the
// code that matches its type.
func exitWithErr(context string, err error) {
	exitWithError(exitCodeFor(err), "%s: %v", context, err)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
// Path is the file the command acted on.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// CountResponse reports how many movies an update or delete touched.
type CountResponse struct {
	Updated *int64 `json:"updated,omitempty"`
	Deleted *int64 `json:"deleted,omitempty"`
}

// printMovies renders movies as an aligned table.
func printMovies(w io.Writer, movies []movie.Movie) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDIRECTOR\tGENRE\tYEAR\tRATING")
	for _, m := range movies {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
			m.ID, m.Title, m.Director, m.Genre, m.Year, formatRating(m.Rating))
	}
	tw.Flush()
}

// formatRating prints a rating with one decimal unless more are needed.
func formatRating(r float64) string {
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if r == float64(int64(r)) {
		s = strconv.FormatFloat(r, 'f', 1, 64)
	}
	return s
}
