// Package cli implements the cobra command tree driving the core
// services.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	configfile "github.com/raghuraavi99/annotation-app/internal/adapters/driven/config/file"
	"github.com/raghuraavi99/annotation-app/internal/adapters/driven/storage/sqlite"
	wscodec "github.com/raghuraavi99/annotation-app/internal/adapters/driven/workspace"
	"github.com/raghuraavi99/annotation-app/internal/core/ports/driving"
	"github.com/raghuraavi99/annotation-app/internal/core/services"
	"github.com/raghuraavi99/annotation-app/internal/loaders"
	"github.com/raghuraavi99/annotation-app/internal/loaders/csvfile"
	"github.com/raghuraavi99/annotation-app/internal/loaders/pdf"
	"github.com/raghuraavi99/annotation-app/internal/loaders/plaintext"
	"github.com/raghuraavi99/annotation-app/internal/loaders/ziparchive"
	"github.com/raghuraavi99/annotation-app/internal/logger"
)

// Services the commands drive, wired in PersistentPreRunE.
var (
	workspaceService driving.WorkspaceService
	searchService    driving.SearchService
	ruleService      driving.RuleService
	ingestService    driving.IngestService
	exportService    driving.ExportService

	config configfile.Config
	store  *sqlite.Store
)

// Persistent flags.
var (
	flagVerbose bool
	flagDataDir string
)

var rootCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Span annotation for text documents",
	Long: `annotate marks labelled character spans in documents, links spans
into typed relations, runs gazetteer and PHI rules, and exports the
result. State persists in a local SQLite workspace between commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)

		cfg, err := configfile.Load("")
		if err != nil {
			logger.Warn("config unreadable, using defaults: %v", err)
			cfg = configfile.DefaultConfig()
		}
		config = cfg

		dataDir := flagDataDir
		if dataDir == "" {
			dataDir = cfg.DataDir
		}

		s, err := sqlite.NewStore(dataDir)
		if err != nil {
			return fmt.Errorf("opening workspace store: %w", err)
		}
		store = s

		workspaceService = services.NewWorkspaceService(store, wscodec.NewJSONCodec()).
			WithDefaultLabels(cfg.DefaultLabels)
		searchService = services.NewSearchService(workspaceService)
		ruleService = services.NewRuleService(workspaceService)
		exportService = services.NewExportService(workspaceService)

		registry := loaders.NewRegistry(plaintext.New(), csvfile.New(), pdf.New())
		registry.Register(ziparchive.New(registry))
		ingestService = services.NewIngestService(workspaceService, registry)

		return nil
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "workspace data directory (default ~/.annotate/data)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
