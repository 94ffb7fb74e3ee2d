package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	deleteAll bool
	deleteYes bool
)

func init() {
	deleteCmd.Flags().BoolVar(&deleteAll, "all", false, "Delete every movie")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete [title]",
	Short: "Delete movies",
	Long: `Delete every movie whose title contains the given text, or every movie
with --all.

In a terminal you are asked to confirm. When stdin is not a terminal, --yes
is required.

Usage:
  movies delete Inception
  movies delete --all --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	switch {
	case deleteAll && len(args) == 1:
		exitWithError(ExitError, "pass either a title or --all, not both")
	case !deleteAll && len(args) == 0:
		exitWithError(ExitError, "a title is required (or use --all)")
	}

	a := openApp()
	defer a.Close()

	var filter string
	if !deleteAll {
		filter = args[0]
	}

	count, err := countTargets(a, filter)
	if err != nil {
		exitWithErr("finding movies", err)
	}
	if count == 0 {
		return reportDeleted(os.Stdout, 0, "No matching movies found.")
	}

	if !deleteYes {
		if !stdinIsTerminal() {
			exitWithError(ExitError, "refusing to delete %d movies without --yes", count)
		}
		ok, err := confirmDelete(os.Stdin, os.Stderr, count)
		if err != nil {
			exitWithError(ExitError, "reading confirmation: %v", err)
		}
		if !ok {
			return reportDeleted(os.Stdout, 0, "Nothing deleted.")
		}
	}

	var n int64
	if deleteAll {
		n, err = a.db.DeleteAll()
	} else {
		n, err = a.db.DeleteByTitleContains(filter)
	}
	if err != nil {
		exitWithErr("deleting movies", err)
	}
	a.logger.PrintInfo("deleted movies", map[string]string{"filter": filter, "all": fmt.Sprint(deleteAll)})

	return reportDeleted(os.Stdout, n, "")
}

// reportDeleted writes the outcome of a delete. note replaces the human
// message when nothing was deleted; JSON output is always a CountResponse.
func reportDeleted(w io.Writer, n int64, note string) error {
	if !humanOutput {
		return writeJSON(w, CountResponse{Deleted: &n})
	}
	if n == 0 && note != "" {
		_, err := fmt.Fprintln(w, note)
		return err
	}
	_, err := fmt.Fprintf(w, "Deleted %d movies\n", n)
	return err
}

// countTargets reports how many movies a delete with filter would remove.
func countTargets(a *app, filter string) (int, error) {
	if filter == "" {
		return a.db.Count()
	}
	matches, err := a.db.FindByTitleContains(filter)
	if err != nil {
		return 0, err
	}
	return len(matches), nil
}

func confirmDelete(in io.Reader, prompt io.Writer, count int) (bool, error) {
	fmt.Fprintf(prompt, "Delete %d movies? (y/n): ", count)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
