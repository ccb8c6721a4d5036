package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagSearchLabel string
	flagSearchAll   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [doc-id] [term]",
	Short: "Find every occurrence of a term in a document",
	Long: `search lists all case-insensitive literal matches of a term in
one document. With --label the matches are annotated: the first match
only, or every match with --all.`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&flagSearchLabel, "label", "", "annotate matches with this label")
	searchCmd.Flags().BoolVar(&flagSearchAll, "all", false, "annotate every match, not just the first")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	docID, term := args[0], args[1]

	n, err := searchService.Find(ctx, docID, term)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}
	if n == 0 {
		cmd.Printf("No matches for %q in %s.\n", term, docID)
		return nil
	}

	doc, err := workspaceService.Document(ctx, docID)
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}
	st := searchService.State(docID)
	for i, span := range st.Positions {
		cmd.Printf("  %d/%d [%d,%d) %q\n", i+1, n, span.Start, span.End, doc.Text[span.Start:span.End])
	}

	if flagSearchLabel == "" {
		return nil
	}
	if flagSearchAll {
		added, err := searchService.AnnotateAll(ctx, docID, flagSearchLabel)
		if err != nil {
			return fmt.Errorf("annotating matches: %w", err)
		}
		cmd.Printf("Annotated %d match(es) as %s.\n", added, flagSearchLabel)
		return nil
	}
	ann, err := searchService.AnnotateCurrent(ctx, docID, flagSearchLabel)
	if err != nil {
		return fmt.Errorf("annotating match: %w", err)
	}
	cmd.Printf("Annotated match at [%d,%d) as %s.\n", ann.Start, ann.End, ann.Label)
	return nil
}
