package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
)

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Manage the label set",
}

var labelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List labels in order",
	Args:  cobra.NoArgs,
	RunE:  runLabelList,
}

var labelAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a label unless already present",
	Args:  cobra.ExactArgs(1),
	RunE:  runLabelAdd,
}

var labelResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default label set",
	Args:  cobra.NoArgs,
	RunE:  runLabelReset,
}

func init() {
	labelCmd.AddCommand(labelListCmd)
	labelCmd.AddCommand(labelAddCmd)
	labelCmd.AddCommand(labelResetCmd)
	rootCmd.AddCommand(labelCmd)
}

func runLabelList(cmd *cobra.Command, _ []string) error {
	labels, err := workspaceService.Labels(context.Background())
	if err != nil {
		return fmt.Errorf("listing labels: %w", err)
	}
	for _, l := range labels {
		cmd.Printf("  %-12s %s\n", l, domain.ColourFor(l))
	}
	return nil
}

func runLabelAdd(cmd *cobra.Command, args []string) error {
	if err := workspaceService.AddLabel(context.Background(), args[0]); err != nil {
		return fmt.Errorf("adding label: %w", err)
	}
	cmd.Printf("Added %s.\n", args[0])
	return nil
}

func runLabelReset(cmd *cobra.Command, _ []string) error {
	if err := workspaceService.ResetLabels(context.Background()); err != nil {
		return fmt.Errorf("resetting labels: %w", err)
	}
	cmd.Println("Labels reset to defaults.")
	return nil
}
