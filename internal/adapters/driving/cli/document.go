package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
	"github.com/raghuraavi99/annotation-app/internal/core/services"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage workspace documents",
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Print a document with its annotations highlighted",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentShow,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and everything attached to it",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentShowCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	docs, err := workspaceService.Documents(ctx)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents. Use 'annotate load' to add some.")
		return nil
	}

	for _, doc := range docs {
		anns, err := workspaceService.Annotations(ctx, doc.ID)
		if err != nil {
			return err
		}
		cmd.Printf("  %s  %4d bytes  %d annotation(s)\n", doc.ID, len(doc.Text), len(anns))
	}
	cmd.Printf("Total: %d document(s)\n", len(docs))
	return nil
}

func runDocumentShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	docID := args[0]

	doc, err := workspaceService.Document(ctx, docID)
	if err != nil {
		return fmt.Errorf("getting %s: %w", docID, err)
	}
	anns, err := workspaceService.Annotations(ctx, docID)
	if err != nil {
		return err
	}

	segments := services.Render(doc.Text, anns, nil)
	for _, seg := range segments {
		if seg.Kind == domain.SegmentHighlight {
			cmd.Printf("[%s|%s]", seg.Content, seg.Label)
			continue
		}
		cmd.Print(seg.Content)
	}
	cmd.Println()
	cmd.Printf("\n%d byte(s), %d annotation(s)\n", len(doc.Text), len(anns))
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if err := workspaceService.RemoveDocument(context.Background(), args[0]); err != nil {
		return fmt.Errorf("deleting %s: %w", args[0], err)
	}
	searchService.Clear(args[0])
	cmd.Printf("Deleted %s.\n", args[0])
	return nil
}
