package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/comic_catalog/internal/db/dbtest"
	"github.com/Skotchmaster/comic_catalog/internal/events"
	"github.com/Skotchmaster/comic_catalog/internal/hash"
	"github.com/Skotchmaster/comic_catalog/internal/media"
	"github.com/Skotchmaster/comic_catalog/internal/models"
	"github.com/Skotchmaster/comic_catalog/internal/repo"
	"github.com/Skotchmaster/comic_catalog/internal/tokens"
)

var (
	testAccessSecret  = []byte("service-access-secret")
	testRefreshSecret = []byte("service-refresh-secret")
	testHasher        = hash.New(bcrypt.MinCost)
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, _, _ string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ev, ok := event.(events.Event); ok {
		p.events = append(p.events, ev)
	}
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type fakeUploader struct {
	mu        sync.Mutex
	uploads   int
	destroyed []string
	err       error
}

func (f *fakeUploader) Upload(_ context.Context, file io.Reader, filename string) (media.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return media.Image{}, f.err
	}
	if _, err := io.ReadAll(file); err != nil {
		return media.Image{}, err
	}
	f.uploads++
	id := "comics/" + filename
	return media.Image{
		URL:      "https://res.cloudinary.com/demo/image/upload/v1/" + id + ".jpg",
		PublicID: id,
	}, nil
}

func (f *fakeUploader) Destroy(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

type memCache struct {
	mu      sync.Mutex
	entries map[string]*models.Comic
	reads   int
}

func newMemCache() *memCache { return &memCache{entries: map[string]*models.Comic{}} }

func (c *memCache) GetComic(_ context.Context, slug string) (*models.Comic, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads++
	comic, ok := c.entries[slug]
	return comic, ok, nil
}

func (c *memCache) SetComic(_ context.Context, comic *models.Comic) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[comic.Slug] = comic
	return nil
}

func (c *memCache) DeleteComic(_ context.Context, slugs ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range slugs {
		delete(c.entries, s)
	}
	return nil
}

func (c *memCache) has(slug string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[slug]
	return ok
}

type fakeIndex struct {
	mu      sync.Mutex
	docs    map[string]string
	hits    []string
	err     error
	deleted []string
}

func newFakeIndex() *fakeIndex { return &fakeIndex{docs: map[string]string{}} }

func (f *fakeIndex) IndexComic(_ context.Context, comic *models.Comic) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[comic.ID] = comic.Slug
	return nil
}

func (f *fakeIndex) DeleteComic(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndex) SearchComics(_ context.Context, _ string, _, _ int) (int64, []string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, nil, f.err
	}
	return int64(len(f.hits)), f.hits, nil
}

func newTestIssuer(t *testing.T, opts ...tokens.Option) *tokens.Issuer {
	t.Helper()
	iss, err := tokens.NewIssuer(testAccessSecret, testRefreshSecret, opts...)
	require.NoError(t, err)
	return iss
}

func newTestStore(t *testing.T) *repo.GormRepo {
	t.Helper()
	return repo.New(dbtest.Open(t))
}

func seedUser(t *testing.T, r *repo.GormRepo, username, password string, role models.Role) *models.User {
	t.Helper()

	pwHash, err := testHasher.Hash(password)
	require.NoError(t, err)

	email := username + "@example.com"
	u := &models.User{Name: username, Email: &email, Username: username, PasswordHash: pwHash, Role: role}
	require.NoError(t, r.CreateUser(context.Background(), u))
	return u
}

var errBoom = errors.New("boom")

func pastClock() time.Time { return time.Now().Add(-30 * 24 * time.Hour) }
