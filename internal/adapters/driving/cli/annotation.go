package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var annotationCmd = &cobra.Command{
	Use:     "annotation",
	Aliases: []string{"ann"},
	Short:   "Manage annotations",
}

var annotationAddCmd = &cobra.Command{
	Use:   "add [doc-id] [start] [end] [label]",
	Short: "Annotate a span by character offsets",
	Args:  cobra.ExactArgs(4),
	RunE:  runAnnotationAdd,
}

var annotationListCmd = &cobra.Command{
	Use:   "list [doc-id]",
	Short: "List a document's annotations",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotationList,
}

var annotationRemoveCmd = &cobra.Command{
	Use:   "remove [doc-id] [annotation-id]",
	Short: "Remove an annotation and any relations using it",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnnotationRemove,
}

func init() {
	annotationCmd.AddCommand(annotationAddCmd)
	annotationCmd.AddCommand(annotationListCmd)
	annotationCmd.AddCommand(annotationRemoveCmd)
	rootCmd.AddCommand(annotationCmd)
}

func runAnnotationAdd(cmd *cobra.Command, args []string) error {
	docID := args[0]
	var start, end int
	if _, err := fmt.Sscanf(args[1], "%d", &start); err != nil {
		return fmt.Errorf("bad start offset %q", args[1])
	}
	if _, err := fmt.Sscanf(args[2], "%d", &end); err != nil {
		return fmt.Errorf("bad end offset %q", args[2])
	}

	ann, err := workspaceService.AddAnnotation(context.Background(), docID, start, end, args[3], nil)
	if err != nil {
		return fmt.Errorf("adding annotation: %w", err)
	}
	cmd.Printf("Added %s: %s %q [%d,%d)\n", ann.ID, ann.Label, truncate(ann.Text, 40), ann.Start, ann.End)
	return nil
}

func runAnnotationList(cmd *cobra.Command, args []string) error {
	anns, err := workspaceService.Annotations(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("listing annotations: %w", err)
	}

	if len(anns) == 0 {
		cmd.Println("No annotations yet.")
		return nil
	}
	for i, a := range anns {
		source := a.Attrs["source"]
		if source == "" {
			source = "manual"
		}
		cmd.Printf("  %d: %s  [%d,%d) %-12s %-14s %q\n",
			i, a.ID, a.Start, a.End, a.Label, source, truncate(a.Text, 40))
	}
	cmd.Printf("Total: %d annotation(s)\n", len(anns))
	return nil
}

func runAnnotationRemove(cmd *cobra.Command, args []string) error {
	if err := workspaceService.RemoveAnnotation(context.Background(), args[0], args[1]); err != nil {
		return fmt.Errorf("removing annotation: %w", err)
	}
	cmd.Printf("Removed %s.\n", args[1])
	return nil
}

// truncate shortens s for one-line display, collapsing newlines.
// Cuts on rune boundaries so multi-byte text is never split mid-rune.
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
