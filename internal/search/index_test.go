package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/comic_catalog/internal/models"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

type fakeES struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	response string
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(body)})
	status, response := f.status, f.response
	f.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	if response == "" {
		response = `{}`
	}
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(response))
}

func (f *fakeES) last() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func newTestIndex(t *testing.T, fake *fakeES) *Index {
	t.Helper()

	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewIndex(client, "comics")
}

func TestDocumentFromComic(t *testing.T) {
	t.Parallel()

	c := &models.Comic{
		Base:   models.Base{ID: "c1"},
		Slug:   "one-piece",
		Name:   "One Piece",
		Status: models.StatusOngoing,
		Genres: []models.Genre{{Name: "Action"}, {Name: "Adventure"}},
	}
	doc := DocumentFromComic(c)
	assert.Equal(t, "c1", doc.ID)
	assert.Equal(t, "ongoing", doc.Status)
	assert.Equal(t, []string{"Action", "Adventure"}, doc.Genres)
}

func TestIndex_IndexComic(t *testing.T) {
	t.Parallel()

	fake := &fakeES{status: http.StatusCreated, response: `{"result":"created"}`}
	idx := newTestIndex(t, fake)

	err := idx.IndexComic(context.Background(), &models.Comic{Base: models.Base{ID: "c1"}, Name: "Naruto"})
	require.NoError(t, err)

	req := fake.last()
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/comics/_doc/c1", req.Path)
	assert.Contains(t, req.Body, `"name":"Naruto"`)
}

func TestIndex_DeleteComic_NotFoundIsOK(t *testing.T) {
	t.Parallel()

	fake := &fakeES{status: http.StatusNotFound, response: `{"result":"not_found"}`}
	idx := newTestIndex(t, fake)

	require.NoError(t, idx.DeleteComic(context.Background(), "c1"))
	assert.Equal(t, http.MethodDelete, fake.last().Method)
	assert.Equal(t, "/comics/_doc/c1", fake.last().Path)
}

func TestIndex_SearchComics(t *testing.T) {
	t.Parallel()

	fake := &fakeES{response: `{"hits":{"total":{"value":2},"hits":[{"_id":"b"},{"_id":"a"}]}}`}
	idx := newTestIndex(t, fake)

	total, ids, err := idx.SearchComics(context.Background(), "naruto", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []string{"b", "a"}, ids)

	req := fake.last()
	assert.True(t, strings.HasSuffix(req.Path, "/comics/_search"))

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(req.Body), &body))
	assert.EqualValues(t, 10, body["size"])
}

func TestIndex_SearchComics_ErrorResponse(t *testing.T) {
	t.Parallel()

	fake := &fakeES{status: http.StatusInternalServerError, response: `{"error":"boom"}`}
	idx := newTestIndex(t, fake)

	_, _, err := idx.SearchComics(context.Background(), "naruto", 0, 10)
	require.Error(t, err)
}
