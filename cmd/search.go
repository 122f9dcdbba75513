package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/matheuskafuri/hnsearch/internal/config"
	"github.com/matheuskafuri/hnsearch/internal/logging"
	"github.com/matheuskafuri/hnsearch/internal/output"
	"github.com/matheuskafuri/hnsearch/internal/search"
	"github.com/spf13/cobra"
)

var (
	flagPages int
	flagJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [term...]",
	Short: "Print search results without the interactive UI",
	Long: `Fetch one or more pages of results for a term and print them.

The term defaults to default_query from the config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagPages < 1 {
			return fmt.Errorf("--pages must be at least 1, got %d", flagPages)
		}

		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		log, err := logging.New(logging.Options{Debug: flagDebug})
		if err != nil {
			return err
		}
		defer log.Sync()

		store := newStore(cfg, strings.Join(args, " "), log)
		defer store.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		view, err := collectPages(ctx, store, flagPages)
		if err != nil {
			return err
		}

		if flagJSON {
			return writeJSON(cmd.OutOrStdout(), view)
		}
		return writeTable(cmd.OutOrStdout(), cmd.ErrOrStderr(), view)
	},
}

func init() {
	searchCmd.Flags().IntVarP(&flagPages, "pages", "p", 1, "number of pages to fetch")
	searchCmd.Flags().BoolVar(&flagJSON, "json", false, "print results as JSON")
}

// collectPages runs the session's first fetch and then pages-1 next-page
// fetches, stopping at the first failure.
func collectPages(ctx context.Context, store *search.Store, pages int) (search.View, error) {
	f := store.Start()
	for i := 0; i < pages; i++ {
		if i > 0 {
			f = store.FetchNextPage()
		}
		store.Apply(f.Run(ctx))
		if view := store.Snapshot(); view.Err != nil {
			return view, fmt.Errorf("searching %q page %d: %w", f.Key, f.Page, view.Err)
		}
	}
	return store.Snapshot(), nil
}

func writeJSON(w io.Writer, view search.View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(search.ResultPage{Hits: view.Hits, Page: view.Page})
}

func writeTable(out, errOut io.Writer, view search.View) error {
	p := output.NewPrinter(out, errOut)
	if len(view.Hits) == 0 {
		p.Warn("No results for %q", view.SearchKey)
		return nil
	}

	table := output.NewTable(out, []string{"Title", "Author", "Points", "Comments", "URL"})
	for _, h := range view.Hits {
		table.AddRow([]string{
			output.Truncate(h.Title, 60),
			h.Author,
			strconv.Itoa(h.Points),
			strconv.Itoa(h.NumComments),
			h.Link(),
		})
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	p.Info("%d stories for %q through page %d", len(view.Hits), view.SearchKey, view.Page)
	return nil
}

