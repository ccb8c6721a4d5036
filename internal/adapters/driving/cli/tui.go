package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/raghuraavi99/annotation-app/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive annotation UI",
	Long: `Launch the interactive terminal user interface.

The TUI shows the document list, renders annotated documents with
highlighted spans and match badges, and supports in-document search
with annotate-current and annotate-all.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Open document / confirm
  /        - Search within a document
  n, N     - Next / previous match
  a, A     - Annotate current match / all matches
  p        - Run PHI rules on the open document
  Esc      - Back / cancel
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Recover so a panicked view leaves a stack trace, not a wedged
	// terminal.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(&tui.Ports{
		Workspace: workspaceService,
		Search:    searchService,
		Rules:     ruleService,
	})
	if err != nil {
		return fmt.Errorf("creating TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
