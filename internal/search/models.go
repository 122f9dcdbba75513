package search

import (
	"net/url"
	"strings"
)

const itemBaseURL = "https://news.ycombinator.com/item?id="

// Hit is one story record returned by the search API.
type Hit struct {
	ObjectID    string `json:"objectID"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Author      string `json:"author"`
	NumComments int    `json:"num_comments"`
	Points      int    `json:"points"`
}

// DiscussionURL is the Hacker News comment page for the hit.
func (h Hit) DiscussionURL() string {
	return itemBaseURL + url.QueryEscape(h.ObjectID)
}

// Link returns the story URL, falling back to the discussion page for
// text posts that carry no URL.
func (h Hit) Link() string {
	if h.URL != "" {
		return h.URL
	}
	return h.DiscussionURL()
}

// ResultPage is the cumulative state for one search key: every hit fetched
// so far (minus dismissals) and the last fetched page number.
type ResultPage struct {
	Hits []Hit `json:"hits"`
	Page int   `json:"page"`
}

// MatchTitle returns a predicate reporting whether a hit's title contains
// term, ignoring case. An empty term matches everything.
func MatchTitle(term string) func(Hit) bool {
	term = strings.ToLower(term)
	return func(h Hit) bool {
		return strings.Contains(strings.ToLower(h.Title), term)
	}
}

// FilterHits returns the hits whose titles contain term.
func FilterHits(hits []Hit, term string) []Hit {
	if term == "" {
		return hits
	}
	match := MatchTitle(term)
	out := make([]Hit, 0, len(hits))
	for _, h := range hits {
		if match(h) {
			out = append(out, h)
		}
	}
	return out
}
