package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	configfile "github.com/raghuraavi99/annotation-app/internal/adapters/driven/config/file"
	"github.com/raghuraavi99/annotation-app/internal/adapters/driven/storage/memory"
	wscodec "github.com/raghuraavi99/annotation-app/internal/adapters/driven/workspace"
	"github.com/raghuraavi99/annotation-app/internal/core/services"
	"github.com/raghuraavi99/annotation-app/internal/loaders"
	"github.com/raghuraavi99/annotation-app/internal/loaders/csvfile"
	"github.com/raghuraavi99/annotation-app/internal/loaders/plaintext"
)

// setupTestServices wires the commands to in-memory services and
// disables the SQLite wiring in PersistentPreRunE for the duration of
// a test.
func setupTestServices() func() {
	prevPre := rootCmd.PersistentPreRunE
	prevPost := rootCmd.PersistentPostRunE
	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error { return nil }
	rootCmd.PersistentPostRunE = func(*cobra.Command, []string) error { return nil }

	// Flag values persist between Execute calls; start each test clean.
	flagSearchLabel = ""
	flagSearchAll = false
	flagRulesDoc = ""
	flagExportOut = ""
	config = configfile.DefaultConfig()

	ws := services.NewWorkspaceService(memory.NewStore(), wscodec.NewJSONCodec())
	workspaceService = ws
	searchService = services.NewSearchService(ws)
	ruleService = services.NewRuleService(ws)
	exportService = services.NewExportService(ws)
	ingestService = services.NewIngestService(ws, loaders.NewRegistry(plaintext.New(), csvfile.New()))

	return func() {
		rootCmd.PersistentPreRunE = prevPre
		rootCmd.PersistentPostRunE = prevPost
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}
}

// execute runs the root command with args and captures its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// addTestDocument puts a document into the wired workspace directly.
func addTestDocument(t *testing.T, text string) string {
	t.Helper()
	id, err := workspaceService.AddDocument(context.Background(), "", text)
	require.NoError(t, err)
	return id
}
