package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export annotations",
}

var exportJSONLCmd = &cobra.Command{
	Use:   "jsonl",
	Short: "Write one JSON record per annotation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runExport(cmd, exportService.WriteJSONL)
	},
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Write the tabular annotation export",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runExport(cmd, exportService.WriteCSV)
	},
}

func init() {
	exportCmd.PersistentFlags().StringVarP(&flagExportOut, "out", "o", "", "write to file instead of stdout")
	exportCmd.AddCommand(exportJSONLCmd)
	exportCmd.AddCommand(exportCSVCmd)
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, write func(context.Context, io.Writer) error) error {
	var w io.Writer = cmd.OutOrStdout()
	if flagExportOut != "" {
		f, err := os.Create(flagExportOut)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := write(context.Background(), w); err != nil {
		return fmt.Errorf("exporting: %w", err)
	}
	if flagExportOut != "" {
		cmd.Printf("Wrote %s.\n", flagExportOut)
	}
	return nil
}
