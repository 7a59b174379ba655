package controller

import "shroud/internal/domain"

// searchDoneMsg carries the outcome of a search back into Update
type searchDoneMsg struct {
	gen     uint64
	id      string
	query   string
	results []domain.SearchResult
	err     error
}

// pageDoneMsg carries the outcome of a proxy fetch back into Update
type pageDoneMsg struct {
	gen  uint64
	id   string
	url  string
	page domain.Page
	err  error
}

// ReloadMsg asks the program to discard the controller and start from scratch
type ReloadMsg struct{}
