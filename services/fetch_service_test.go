package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"MenuMate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestMenuURL(t *testing.T) {
	hall, _ := models.LookupHall("East Quad")
	assert.Equal(t,
		"https://dining.umich.edu/menus-locations/dining-halls/east-quad/?menuDate=2024-11-04",
		MenuURL("https://dining.umich.edu/menus-locations/dining-halls/", hall, testDate))
}

func TestHTTPFetcher(t *testing.T) {
	var gotPath, gotDate string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotDate = r.URL.Query().Get("menuDate")
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	hall, _ := models.LookupHall("North Quad")
	body, err := NewHTTPFetcher(srv.URL, time.Second, 0).Fetch(context.Background(), hall, testDate)
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", string(body))
	assert.Equal(t, "/north-quad/", gotPath)
	assert.Equal(t, testDate, gotDate)
}

func TestFetchAndSaveNonSuccessWritesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	pages := NewPageCache(t.TempDir())
	svc := NewFetchService(NewHTTPFetcher(srv.URL, time.Second, 0), pages, zaptest.NewLogger(t))
	hall, _ := models.LookupHall("Bursley")

	_, err := svc.FetchAndSave(context.Background(), hall, testDate)
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Equal(t, "Bursley", fetchErr.Hall)

	_, statErr := os.Stat(pages.PagePath(testDate, hall))
	assert.ErrorIs(t, statErr, os.ErrNotExist)
	assert.False(t, pages.Exists(testDate))
}

func TestFetchAndSaveWritesPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>menu</html>"))
	}))
	defer srv.Close()

	pages := NewPageCache(t.TempDir())
	svc := NewFetchService(NewHTTPFetcher(srv.URL, time.Second, 0), pages, zaptest.NewLogger(t))
	hall, _ := models.LookupHall("Markley")

	body, err := svc.FetchAndSave(context.Background(), hall, testDate)
	require.NoError(t, err)

	cached, err := pages.Read(testDate, hall)
	require.NoError(t, err)
	assert.Equal(t, body, cached)
}

func TestHTTPFetcherTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	hall, _ := models.LookupHall("South Quad")
	_, err := NewHTTPFetcher(srv.URL, 50*time.Millisecond, 0).Fetch(context.Background(), hall, testDate)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Zero(t, fetchErr.StatusCode)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
