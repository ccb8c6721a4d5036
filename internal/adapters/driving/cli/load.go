package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load documents into the workspace",
	Long:  `Load documents from pasted text, files (.txt/.csv/.pdf/.zip) or directories.`,
}

var loadTextCmd = &cobra.Command{
	Use:   "text [text]",
	Short: "Add pasted text, blank lines separating documents",
	Long: `Adds the argument (or stdin when absent) to the workspace. A blank
line separates documents; without one the whole input is a single
document.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLoadText,
}

var loadFileCmd = &cobra.Command{
	Use:   "file [path...]",
	Short: "Load one or more files (.txt/.csv/.pdf/.zip)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLoadFile,
}

var loadDirCmd = &cobra.Command{
	Use:   "dir [path]",
	Short: "Load every .txt/.csv/.pdf file in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoadDir,
}

// loadRecursive is a flag for the dir command.
var loadRecursive bool

func init() {
	loadDirCmd.Flags().BoolVarP(&loadRecursive, "recursive", "r", true, "descend into subdirectories")

	loadCmd.AddCommand(loadTextCmd)
	loadCmd.AddCommand(loadFileCmd)
	loadCmd.AddCommand(loadDirCmd)
	rootCmd.AddCommand(loadCmd)
}

func runLoadText(cmd *cobra.Command, args []string) error {
	var raw string
	if len(args) == 1 {
		raw = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		raw = string(data)
	}

	added, err := ingestService.IngestText(context.Background(), raw)
	if err != nil {
		return fmt.Errorf("loading text: %w", err)
	}
	cmd.Printf("Added %d document(s).\n", added)
	return nil
}

func runLoadFile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	added := 0
	failed := 0
	for _, path := range args {
		n, err := ingestService.IngestFile(ctx, path)
		if err != nil {
			// One bad file must not abort the batch.
			fmt.Fprintf(os.Stderr, "Skipped %s: %v\n", path, err)
			failed++
			continue
		}
		added += n
	}
	cmd.Printf("Added %d document(s) from %d file(s).\n", added, len(args)-failed)
	return nil
}

func runLoadDir(cmd *cobra.Command, args []string) error {
	added, err := ingestService.IngestDir(context.Background(), args[0], loadRecursive)
	if err != nil {
		return fmt.Errorf("loading directory: %w", err)
	}
	cmd.Printf("Added %d document(s) from %s.\n", added, args[0])
	return nil
}
