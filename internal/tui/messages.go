package tui

import "github.com/matheuskafuri/hnsearch/internal/search"

type fetchDoneMsg struct {
	result search.Result
}

type openErrMsg struct {
	err error
}
