package cmd

import (
	"fmt"

	"github.com/matheuskafuri/hnsearch/internal/config"
	"github.com/matheuskafuri/hnsearch/internal/logging"
	"github.com/matheuskafuri/hnsearch/internal/search"
	"github.com/matheuskafuri/hnsearch/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newClient(cfg *config.Config) *search.Client {
	client := search.NewClient(cfg.BaseURL, cfg.TimeoutDuration())
	client.UserAgent = cfg.UserAgent
	return client
}

func newStore(cfg *config.Config, query string, log *zap.Logger) *search.Store {
	if query == "" {
		query = cfg.GetDefaultQuery()
	}
	return search.NewStore(newClient(cfg), search.Options{
		DefaultQuery: query,
		HitsPerPage:  cfg.HitsPerPage,
		Logger:       log,
	})
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logging.ForTUI(flagDebug, config.LogPath())
	if err != nil {
		return err
	}
	defer log.Sync()

	store := newStore(cfg, flagQuery, log)
	log.Debug("starting", zap.String("query", store.Snapshot().SearchTerm), zap.String("base_url", cfg.BaseURL))

	return tui.Run(tui.RunOpts{Store: store, Logger: log})
}
