//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type fakeResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

type fakePage struct {
	URL  string `json:"url"`
	HTML string `json:"html"`
}

// FakeBackend serves canned search results and proxied pages
type FakeBackend struct {
	srv *httptest.Server

	mu      sync.Mutex
	results []fakeResult
	pages   map[string]string
	resets  int
}

// NewFakeBackend starts a backend that is stopped when the test ends
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	b := &FakeBackend{
		results: []fakeResult{
			{Title: "Gophers of the world", Snippet: "A field guide", URL: "https://gophers.example/"},
			{Title: "Burrow engineering", Snippet: "Tunnels explained", URL: "https://burrows.example/"},
		},
		pages: map[string]string{
			"https://gophers.example/":      `<h1>Field guide</h1><p>Gophers dig. <a href="#" data-proxy-href="https://gophers.example/diet">Diet</a></p>`,
			"https://gophers.example/diet":  `<h1>Diet</h1><p>Roots and tubers.</p>`,
			"https://burrows.example/":      `<p>Tunnels all the way down.</p>`,
			"https://plain.example/article": `<p>Plain article text for the pager.</p>`,
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, b.results)
	})
	mux.HandleFunc("/proxy", func(w http.ResponseWriter, r *http.Request) {
		target := r.URL.Query().Get("url")
		b.mu.Lock()
		html, ok := b.pages[target]
		b.mu.Unlock()
		if !ok {
			http.Error(w, "unknown page", http.StatusBadGateway)
			return
		}
		writeJSON(w, fakePage{URL: target, HTML: html})
	})
	mux.HandleFunc("/session/reset", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.resets++
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})

	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)
	return b
}

// URL is the base URL passed to -backend
func (b *FakeBackend) URL() string {
	return b.srv.URL
}

// Resets reports how many session resets were received
func (b *FakeBackend) Resets() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.resets
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
