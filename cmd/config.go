package cmd

import (
	"fmt"
	"strconv"

	"github.com/matheuskafuri/hnsearch/internal/config"
	"github.com/matheuskafuri/hnsearch/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		path := flagConfig
		if path == "" {
			path = config.DefaultConfigPath()
		}

		timeout := "none"
		if d := cfg.TimeoutDuration(); d > 0 {
			timeout = d.String()
		}

		table := output.NewTable(cmd.OutOrStdout(), []string{"Key", "Value"})
		table.AddRow([]string{"file", path})
		table.AddRow([]string{"base_url", cfg.BaseURL})
		table.AddRow([]string{"default_query", cfg.GetDefaultQuery()})
		table.AddRow([]string{"hits_per_page", strconv.Itoa(cfg.HitsPerPage)})
		table.AddRow([]string{"timeout", timeout})
		table.AddRow([]string{"user_agent", cfg.UserAgent})
		table.AddRow([]string{"log", config.LogPath()})
		return table.Render()
	},
}
