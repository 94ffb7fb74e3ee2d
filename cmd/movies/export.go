package main

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var exportFilter string

func init() {
	exportCmd.Flags().StringVar(&exportFilter, "filter", "", "Only export movies whose title contains this text")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export movies to a JSON document",
	Long: `Export movies to a JSON document that "movies import" can read back.

The file is replaced atomically. When no movie matches, nothing is written
and the existing file is left alone.

Usage:
  movies export                      # writes the configured export file
  movies export backup.json
  movies export nolan.json --filter Dark`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	a := openApp()
	defer a.Close()

	path := a.cfg.ExportPath
	if len(args) == 1 {
		path = args[0]
	}

	result, err := a.exporter.ExportTo(path, exportFilter)
	if err != nil {
		a.logger.PrintError(err, map[string]string{"path": path})
		exitWithErr("exporting movies", err)
	}
	if !result.Empty() {
		a.logger.PrintInfo("export finished", map[string]string{"path": path})
	}

	if humanOutput {
		if result.Empty() {
			outputHuman("No matching movies found; %s was not written.\n", path)
			return nil
		}
		outputHuman("Exported %d movies to %s (%s)\n", result.Count, result.Path, humanize.Bytes(uint64(result.Bytes)))
		return nil
	}
	return outputJSON(result)
}
