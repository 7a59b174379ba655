package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shroud/internal/domain"
)

func resultsJSON(n int) string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf(`{"title":"t%d","snippet":"s%d","url":"https://r%d.example/"}`, i, i, i)
	}
	return "[" + strings.Join(items, ",") + "]"
}

func TestSearchTruncatesToTen(t *testing.T) {
	var gotQuery, gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, resultsJSON(15))
	}))
	defer srv.Close()

	results, err := NewClient(Options{BaseURL: srv.URL}).Search(context.Background(), "hello world")
	require.NoError(t, err)

	assert.Equal(t, "hello world", gotQuery)
	assert.Equal(t, "10", gotLimit)
	require.Len(t, results, domain.MaxResults)
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("t%d", i), r.Title, "backend order must be kept")
	}
}

func TestSearchDegradesOnOddBodies(t *testing.T) {
	for name, body := range map[string]string{
		"object":    `{"results":[]}`,
		"malformed": `[{"title":`,
		"null":      `null`,
		"empty":     ``,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, body)
			}))
			defer srv.Close()

			results, err := NewClient(Options{BaseURL: srv.URL}).Search(context.Background(), "x")
			require.NoError(t, err)
			assert.Empty(t, results)
		})
	}
}

func TestSearchFailureIsNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(Options{BaseURL: srv.URL}).Search(context.Background(), "x")
	require.Error(t, err)

	var netErr *domain.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, domain.MsgSearchFailed, netErr.Error())
	assert.Equal(t, http.StatusServiceUnavailable, netErr.Status)
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchPageRetriesOnce(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/proxy", r.URL.Path)
		assert.Equal(t, "https://example.com", r.URL.Query().Get("url"))
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"url":"https://example.com","html":"<p>hi</p>"}`)
	}))
	defer srv.Close()

	page, err := NewClient(Options{BaseURL: srv.URL}).FetchPage(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.Page{URL: "https://example.com", HTML: "<p>hi</p>"}, page)
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetchPageFailsAfterTwoAttempts(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	attempts := 0
	client := NewClient(Options{BaseURL: srv.URL, OnAttempt: func(int, string) { attempts++ }})

	_, err := client.FetchPage(context.Background(), "https://down.example/")
	require.Error(t, err)
	assert.Equal(t, domain.MsgProxyFetchFailed, err.Error())
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, 2, attempts)
}

func TestFetchPageMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>not json</html>`)
	}))
	defer srv.Close()

	_, err := NewClient(Options{BaseURL: srv.URL}).FetchPage(context.Background(), "https://a.com/")
	var netErr *domain.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, domain.MsgProxyFetchFailed, netErr.Message)
	assert.Error(t, netErr.Unwrap())
}

func TestRequestsCarryNoCredentials(t *testing.T) {
	var leaked atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cookie") != "" || r.Header.Get("Authorization") != "" {
			leaked.Add(1)
		}
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: "tracker", Path: "/"})
		switch r.URL.Path {
		case "/search":
			fmt.Fprint(w, `[]`)
		case "/proxy":
			fmt.Fprint(w, `{"url":"https://a.com/","html":"<p></p>"}`)
		}
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL})
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := client.Search(ctx, "x")
		require.NoError(t, err)
		_, err = client.FetchPage(ctx, "https://a.com/")
		require.NoError(t, err)
		client.ResetSession(ctx)
	}
	assert.Zero(t, leaked.Load(), "cookies set by the backend must never be sent back")
}

func TestResetSession(t *testing.T) {
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		fmt.Fprint(w, `{"ok":true,"message":"Session cleared"}`)
	}))
	defer srv.Close()

	NewClient(Options{BaseURL: srv.URL + "/"}).ResetSession(context.Background())
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/session/reset", path)
}

func TestResetSessionSwallowsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	assert.NotPanics(t, func() {
		NewClient(Options{BaseURL: base}).ResetSession(context.Background())
	})
}
