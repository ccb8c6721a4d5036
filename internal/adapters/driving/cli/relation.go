package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var relationCmd = &cobra.Command{
	Use:     "relation",
	Aliases: []string{"rel"},
	Short:   "Manage relations between annotations",
}

var relationAddCmd = &cobra.Command{
	Use:   "add [doc-id] [head-id] [tail-id] [label]",
	Short: "Link two annotations with a typed relation",
	Args:  cobra.ExactArgs(4),
	RunE:  runRelationAdd,
}

var relationListCmd = &cobra.Command{
	Use:   "list [doc-id]",
	Short: "List a document's relations",
	Args:  cobra.ExactArgs(1),
	RunE:  runRelationList,
}

var relationRemoveCmd = &cobra.Command{
	Use:   "remove [doc-id] [relation-id]",
	Short: "Remove a relation",
	Args:  cobra.ExactArgs(2),
	RunE:  runRelationRemove,
}

func init() {
	relationCmd.AddCommand(relationAddCmd)
	relationCmd.AddCommand(relationListCmd)
	relationCmd.AddCommand(relationRemoveCmd)
	rootCmd.AddCommand(relationCmd)
}

func runRelationAdd(cmd *cobra.Command, args []string) error {
	rel, err := workspaceService.AddRelation(context.Background(), args[0], args[1], args[2], args[3])
	if err != nil {
		return fmt.Errorf("adding relation: %w", err)
	}
	cmd.Printf("Added %s: %s -[%s]-> %s\n", rel.ID, rel.HeadID, rel.Label, rel.TailID)
	return nil
}

func runRelationList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	docID := args[0]

	rels, err := workspaceService.Relations(ctx, docID)
	if err != nil {
		return fmt.Errorf("listing relations: %w", err)
	}
	if len(rels) == 0 {
		cmd.Println("No relations yet.")
		return nil
	}

	anns, err := workspaceService.Annotations(ctx, docID)
	if err != nil {
		return fmt.Errorf("listing annotations: %w", err)
	}
	texts := make(map[string]string, len(anns))
	for _, a := range anns {
		texts[a.ID] = a.Text
	}

	for i, r := range rels {
		cmd.Printf("  %d: %s  %q -[%s]-> %q\n",
			i, r.ID, truncate(texts[r.HeadID], 30), r.Label, truncate(texts[r.TailID], 30))
	}
	cmd.Printf("Total: %d relation(s)\n", len(rels))
	return nil
}

func runRelationRemove(cmd *cobra.Command, args []string) error {
	if err := workspaceService.RemoveRelation(context.Background(), args[0], args[1]); err != nil {
		return fmt.Errorf("removing relation: %w", err)
	}
	cmd.Printf("Removed %s.\n", args[1])
	return nil
}
