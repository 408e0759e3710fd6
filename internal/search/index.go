package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/Skotchmaster/comic_catalog/internal/models"
)

// Document is the searchable projection of a comic.
type Document struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Author    string    `json:"author"`
	Artist    string    `json:"artist"`
	Synopsis  string    `json:"synopsis"`
	Status    string    `json:"status"`
	Genres    []string  `json:"genres"`
	CreatedAt time.Time `json:"created_at"`
}

func DocumentFromComic(c *models.Comic) Document {
	genres := make([]string, 0, len(c.Genres))
	for _, g := range c.Genres {
		genres = append(genres, g.Name)
	}
	return Document{
		ID:        c.ID,
		Slug:      c.Slug,
		Name:      c.Name,
		Author:    c.Author,
		Artist:    c.Artist,
		Synopsis:  c.Synopsis,
		Status:    string(c.Status),
		Genres:    genres,
		CreatedAt: c.CreatedAt,
	}
}

type Index struct {
	es    *elasticsearch.Client
	index string
}

func NewIndex(es *elasticsearch.Client, index string) *Index {
	return &Index{es: es, index: index}
}

func (i *Index) IndexComic(ctx context.Context, comic *models.Comic) error {
	body, err := json.Marshal(DocumentFromComic(comic))
	if err != nil {
		return fmt.Errorf("search: encode document: %w", err)
	}

	res, err := i.es.Index(
		i.index,
		bytes.NewReader(body),
		i.es.Index.WithContext(ctx),
		i.es.Index.WithDocumentID(comic.ID),
	)
	if err != nil {
		return fmt.Errorf("search: index %s: %w", comic.ID, err)
	}
	defer res.Body.Close()

	return responseError(res, "index")
}

// DeleteComic treats a document that is already gone as deleted.
func (i *Index) DeleteComic(ctx context.Context, id string) error {
	res, err := i.es.Delete(i.index, id, i.es.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("search: delete %s: %w", id, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	return responseError(res, "delete")
}

// SearchComics returns the total hit count and the ids of the requested page, best match first.
func (i *Index) SearchComics(ctx context.Context, query string, from, size int) (int64, []string, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^3", "author^2", "artist", "synopsis", "genres"},
				"fuzziness": "AUTO",
			},
		},
		"from":    from,
		"size":    size,
		"_source": []string{"id"},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := i.es.Search(
		i.es.Search.WithContext(ctx),
		i.es.Search.WithIndex(i.index),
		i.es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: query: %w", err)
	}
	defer res.Body.Close()

	if err := responseError(res, "search"); err != nil {
		return 0, nil, err
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("search: decode response: %w", err)
	}

	ids := make([]string, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		ids = append(ids, hit.ID)
	}
	return r.Hits.Total.Value, ids, nil
}

func responseError(res *esapi.Response, op string) error {
	if !res.IsError() {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	return fmt.Errorf("search: %s returned %s: %s", op, res.Status(), bytes.TrimSpace(body))
}
