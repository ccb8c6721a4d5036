package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var workspaceCmd = &cobra.Command{
	Use:     "workspace",
	Aliases: []string{"ws"},
	Short:   "Save and restore the whole workspace as JSON",
}

var workspaceSaveCmd = &cobra.Command{
	Use:   "save [file]",
	Short: "Write documents, annotations, relations and labels to a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkspaceSave,
}

var workspaceLoadCmd = &cobra.Command{
	Use:   "load [file]",
	Short: "Replace the workspace from a saved file",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkspaceLoad,
}

func init() {
	workspaceCmd.AddCommand(workspaceSaveCmd)
	workspaceCmd.AddCommand(workspaceLoadCmd)
	rootCmd.AddCommand(workspaceCmd)
}

func runWorkspaceSave(cmd *cobra.Command, args []string) error {
	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("creating workspace file: %w", err)
	}
	defer f.Close()

	if err := workspaceService.Save(context.Background(), f); err != nil {
		return fmt.Errorf("saving workspace: %w", err)
	}
	cmd.Printf("Saved workspace to %s.\n", args[0])
	return nil
}

func runWorkspaceLoad(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening workspace file: %w", err)
	}
	defer f.Close()

	if err := workspaceService.Load(context.Background(), f); err != nil {
		return fmt.Errorf("loading workspace: %w", err)
	}

	docs, err := workspaceService.Documents(context.Background())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}
	cmd.Printf("Loaded %d document(s) from %s.\n", len(docs), args[0])
	return nil
}
