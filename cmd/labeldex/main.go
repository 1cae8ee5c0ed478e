package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/policygraph/labeldex/internal/config"
	"github.com/policygraph/labeldex/internal/db/redis"
	"github.com/policygraph/labeldex/internal/feed"
	logpkg "github.com/policygraph/labeldex/internal/logger"
	"github.com/policygraph/labeldex/internal/metrics"
	documentrepo "github.com/policygraph/labeldex/internal/repository/document"
	sourcerepo "github.com/policygraph/labeldex/internal/repository/source"
	"github.com/policygraph/labeldex/internal/transform"
	pipelineuc "github.com/policygraph/labeldex/internal/usecase/pipeline"
	"github.com/policygraph/labeldex/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "labeldex",
		Short:   "Label derivation and faceted search over labelled documents",
		Version: fmt.Sprintf("%s (%s, %s)", version.Version, version.Commit, version.Date),
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(feedCmd())
	rootCmd.AddCommand(diagramCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// feedCmd runs the extract -> transform -> persist -> feed pipeline over a
// JSONL export of the upstream document database.
func feedCmd() *cobra.Command {
	var input string
	var skipPersist bool

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Transform a source export and write the index feed artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := config.GetEnv()
			cfg, err := config.Load(env)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			metrics.RegisterTransformMetrics()

			ctx := cmd.Context()

			var store pipelineuc.Store
			if !skipPersist {
				dbStore, err := redis.NewStore(redis.Config{
					Addrs:    cfg.Database.Addrs,
					Username: cfg.Database.Username,
					Password: cfg.Database.Password,
				})
				if err != nil {
					return fmt.Errorf("create database store: %w", err)
				}
				defer dbStore.Close()
				store = documentrepo.New(dbStore, cfg.Storage.KeyPrefix)
			}

			if err := os.MkdirAll(cfg.Feed.OutputDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			feedPath := filepath.Join(cfg.Feed.OutputDir, "documents.jsonl")
			out, err := os.Create(feedPath)
			if err != nil {
				return fmt.Errorf("create feed file: %w", err)
			}
			defer out.Close()

			engine := transform.NewEngine(transform.DefaultRules())
			pipeline := pipelineuc.New(
				sourcerepo.NewJSONLReader(input),
				engine,
				store,
				feed.NewWriter(out, cfg.Index.Namespace, cfg.Index.DocType),
				logger,
			)

			stats, err := pipeline.Run(ctx)
			if err != nil {
				return err
			}

			logger.Info("feed written",
				zap.String("path", feedPath),
				zap.Int("documents", stats.Documents),
				zap.Int("relationships", stats.Relationships),
			)
			fmt.Printf("Wrote %d documents to %s\n", stats.Documents, feedPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "path to the source JSONL export (required)")
	cmd.Flags().BoolVar(&skipPersist, "skip-persist", false, "write the feed without persisting to the document store")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// diagramCmd prints the rule dependency diagram for operators.
func diagramCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diagram",
		Short: "Print the mermaid diagram of the transform rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := transform.NewEngine(transform.DefaultRules())
			fmt.Println(transform.Diagram(engine))
			return nil
		},
	}
}

// waitForStore blocks until the document store answers pings.
func waitForStore(ctx context.Context, store *redis.Store, cfg config.DatabaseConfig) error {
	return store.WaitForReady(ctx, secondsOf(cfg.ReadinessTimeout))
}
