package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/matheuskafuri/hnsearch/internal/config"
	"github.com/matheuskafuri/hnsearch/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hnServer serves one hit per page, failing from page failFrom onward
// (never when failFrom is negative).
func hnServer(t *testing.T, failFrom int) (*httptest.Server, func() []string) {
	t.Helper()
	var (
		mu      sync.Mutex
		queries []string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		queries = append(queries, r.URL.RawQuery)
		mu.Unlock()

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || (failFrom >= 0 && page >= failFrom) {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintf(w, `{"hits":[{"objectID":"p%[1]d","title":"Story on page %[1]d","author":"pg","points":5,"num_comments":2,"url":"https://example.com/%[1]d"}],"page":%[1]d}`, page)
	}))
	t.Cleanup(ts.Close)
	return ts, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), queries...)
	}
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{BaseURL: baseURL, DefaultQuery: "redux", HitsPerPage: 25}
}

func TestCollectPages(t *testing.T) {
	ts, queries := hnServer(t, -1)
	store := newStore(testConfig(ts.URL), "state machines", nil)
	defer store.Close()

	view, err := collectPages(context.Background(), store, 3)
	require.NoError(t, err)

	assert.Equal(t, "state machines", view.SearchKey)
	assert.Equal(t, 2, view.Page)
	require.Len(t, view.Hits, 3)
	assert.Equal(t, "p0", view.Hits[0].ObjectID)
	assert.Equal(t, "p2", view.Hits[2].ObjectID)
	assert.Equal(t, []string{
		"query=state+machines&page=0&hitsPerPage=25",
		"query=state+machines&page=1&hitsPerPage=25",
		"query=state+machines&page=2&hitsPerPage=25",
	}, queries())
}

func TestCollectPagesUsesConfiguredDefaultQuery(t *testing.T) {
	ts, queries := hnServer(t, -1)
	store := newStore(testConfig(ts.URL), "", nil)
	defer store.Close()

	_, err := collectPages(context.Background(), store, 1)
	require.NoError(t, err)
	got := queries()
	require.Len(t, got, 1)
	assert.True(t, strings.HasPrefix(got[0], "query=redux&"))
}

func TestCollectPagesStopsOnFailure(t *testing.T) {
	ts, queries := hnServer(t, 1)
	store := newStore(testConfig(ts.URL), "redux", nil)
	defer store.Close()

	view, err := collectPages(context.Background(), store, 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, search.ErrFetchFailed)
	assert.Len(t, queries(), 2)

	// The first page is still cached.
	assert.Equal(t, 0, view.Page)
	assert.Len(t, view.Hits, 1)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	view := search.View{
		SearchKey: "redux",
		Page:      1,
		Hits:      []search.Hit{{ObjectID: "1", Title: "A", Author: "pg", Points: 3}},
	}
	require.NoError(t, writeJSON(&buf, view))

	var got search.ResultPage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, view.Hits, got.Hits)
	assert.Contains(t, buf.String(), `"objectID": "1"`)
	assert.Contains(t, buf.String(), `"num_comments": 0`)
}

func TestWriteTable(t *testing.T) {
	var out, errOut bytes.Buffer
	view := search.View{
		SearchKey: "redux",
		Hits: []search.Hit{
			{ObjectID: "1", Title: "Redux in 2024", Author: "dan", Points: 40, NumComments: 12, URL: "https://a.com"},
			{ObjectID: "2", Title: "Ask HN: state?", Author: "pg"},
		},
	}
	require.NoError(t, writeTable(&out, &errOut, view))

	s := out.String()
	for _, want := range []string{"Redux in 2024", "dan", "40", "https://a.com", "news.ycombinator.com/item?id=2", "2 stories"} {
		assert.Contains(t, s, want)
	}
	assert.Empty(t, errOut.String())
}

func TestWriteTableNoResults(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, writeTable(&out, &errOut, search.View{SearchKey: "zzz"}))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), `No results for "zzz"`)
}

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-01-01")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown") })

	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "hnsearch 1.2.3 (commit: abc123, built: 2026-01-01)\n", buf.String())
}

func TestExecuteReportsErrors(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = noColor
		flagPages, flagConfig = 1, ""
	})

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad pages", []string{"search", "--pages", "0"}, "✗ --pages must be at least 1, got 0\n"},
		{"missing config", []string{"config", "--config", filepath.Join(t.TempDir(), "confg.yaml")}, "✗ loading config: reading config: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			err := execute(&out, &errOut, tt.args)
			require.Error(t, err)
			assert.True(t, strings.HasPrefix(errOut.String(), tt.want), errOut.String())
			assert.NotContains(t, errOut.String(), "Usage:")
			assert.Empty(t, out.String())
		})
	}
}
