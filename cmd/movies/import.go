package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/uwuok/movie-management-system/internal/importer"
)

var importDryRun bool

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would be imported without writing")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import movies from a JSON document",
	Long: `Import movies from a JSON document.

The document is an array of objects with title, director, genre, year and
rating. Titles already in the database, or repeated earlier in the same
document, are skipped. Entries that fail validation are reported and the
rest are still imported.

Usage:
  movies import                 # reads the configured import file
  movies import movies.json
  movies import movies.json --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	a := openApp()
	defer a.Close()

	path := a.cfg.ImportPath
	if len(args) == 1 {
		path = args[0]
	}

	var (
		report importer.Report
		err    error
	)
	if importDryRun {
		report, err = a.importer.PlanFrom(path)
	} else {
		report, err = a.importer.ImportFrom(path)
	}
	if err != nil {
		a.logger.PrintError(err, map[string]string{"path": path})
		exitWithErr("importing movies", err)
	}

	if !importDryRun {
		a.logger.PrintInfo("import finished", map[string]string{
			"path":     path,
			"inserted": fmt.Sprint(report.Inserted),
			"skipped":  fmt.Sprint(report.Skipped),
			"failed":   fmt.Sprint(report.Failed),
		})
	}

	if humanOutput {
		printImportReport(report, path, importDryRun)
		return nil
	}
	return outputJSON(report)
}

func printImportReport(report importer.Report, path string, dryRun bool) {
	verb := "Imported"
	if dryRun {
		fmt.Println("Dry run - nothing was written.")
		verb = "Would import"
	}
	outputHuman("%s %s movies from %s\n", verb, humanize.Comma(int64(report.Inserted)), path)
	outputHuman("  Skipped: %s\n", humanize.Comma(int64(report.Skipped)))
	outputHuman("  Failed:  %s\n", humanize.Comma(int64(report.Failed)))

	for _, d := range report.Details {
		switch d.Action {
		case importer.ActionSkip:
			outputHuman("  - skipped #%d %q (%s)\n", d.Index, d.Title, d.Reason)
		case importer.ActionFail:
			outputHuman("  - failed  #%d %q: %s\n", d.Index, d.Title, d.Reason)
		}
	}
}
