package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/DurishettyAnirudh/memora/internal/agent"
	"github.com/DurishettyAnirudh/memora/internal/credential"
	"github.com/DurishettyAnirudh/memora/internal/docs"
	"github.com/DurishettyAnirudh/memora/internal/enrich"
	"github.com/DurishettyAnirudh/memora/internal/intent"
	"github.com/DurishettyAnirudh/memora/internal/model"
	"github.com/DurishettyAnirudh/memora/internal/oracle"
	"github.com/DurishettyAnirudh/memora/internal/store"
	"github.com/DurishettyAnirudh/memora/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the assistant HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := model.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
		taskStore, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer taskStore.Close()

		opts := []oracle.Option{
			oracle.WithBaseURL(cfg.Oracle.BaseURL),
			oracle.WithModel(cfg.Oracle.Model),
			oracle.WithTemperature(cfg.Oracle.Temperature),
			oracle.WithMaxTokens(cfg.Oracle.MaxTokens),
		}
		// The gateway token is optional; a missing credential is normal.
		if token, err := credential.Get(credential.KeyOracleToken); err == nil && token != "" {
			opts = append(opts, oracle.WithToken(token))
		}
		oracleClient := oracle.NewClient(opts...)

		embedder := docs.NewOllamaEmbedder(cfg.Oracle.BaseURL, cfg.Oracle.EmbedModel)
		index, err := docs.NewIndex(taskStore.DB(), embedder)
		if err != nil {
			return err
		}

		resolver := intent.NewResolver(oracleClient)
		executor := agent.NewExecutor(taskStore, oracleClient, docSearcher{index}, nil)
		assistant := agent.New(resolver, executor, enrich.New(index))

		server := web.NewServer(
			assistant, taskStore, index, oracleClient,
			cfg.Server.CORSOrigins, nil,
		)

		fmt.Printf("memora listening on %s (model %s)\n", cfg.Server.Addr, cfg.Oracle.Model)
		return server.Run(cfg.Server.Addr)
	},
}

// docSearcher adapts the document index to the executor's snippet
// lookup.
type docSearcher struct {
	index *docs.Index
}

func (d docSearcher) Search(ctx context.Context, query string, topK int) ([]agent.DocHit, error) {
	hits, err := d.index.Search(ctx, query, topK)
	if err != nil {
		return nil, err
	}
	out := make([]agent.DocHit, len(hits))
	for i, h := range hits {
		out[i] = agent.DocHit{Title: h.Title, Snippet: h.Snippet, Score: h.Score}
	}
	return out, nil
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
