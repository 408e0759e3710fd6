package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Skotchmaster/comic_catalog/internal/events"
	"github.com/Skotchmaster/comic_catalog/internal/logging"
	"github.com/Skotchmaster/comic_catalog/internal/media"
	"github.com/Skotchmaster/comic_catalog/internal/models"
	"github.com/Skotchmaster/comic_catalog/internal/transport"
	"github.com/Skotchmaster/comic_catalog/internal/util"
)

type ComicStore interface {
	CreateComic(ctx context.Context, comic *models.Comic) error
	GetComicBySlug(ctx context.Context, slug string) (*models.Comic, error)
	LookupComic(ctx context.Context, slug string) (*models.Comic, error)
	GetComicByID(ctx context.Context, id string) (*models.Comic, error)
	GetComics(ctx context.Context, offset, limit int) (int64, []models.Comic, error)
	SearchComics(ctx context.Context, q string, offset, limit int) (int64, []models.Comic, error)
	GetComicsByIDs(ctx context.Context, ids []string) ([]models.Comic, error)
	UpdateComic(ctx context.Context, comic *models.Comic, genres []models.Genre) error
	DeleteComic(ctx context.Context, id string) error
	GetComicType(ctx context.Context, id string) (*models.ComicType, error)
	GetGenresByIDs(ctx context.Context, ids []string) ([]models.Genre, error)
}

type ComicIndex interface {
	IndexComic(ctx context.Context, comic *models.Comic) error
	DeleteComic(ctx context.Context, id string) error
	SearchComics(ctx context.Context, query string, from, size int) (int64, []string, error)
}

type ComicCache interface {
	GetComic(ctx context.Context, slug string) (*models.Comic, bool, error)
	SetComic(ctx context.Context, comic *models.Comic) error
	DeleteComic(ctx context.Context, slugs ...string) error
}

type ImageUpload struct {
	File     io.Reader
	Filename string
}

type ComicService struct {
	Repo   ComicStore
	Media  media.Uploader
	Events events.Publisher
	// Index and Cache are optional.
	Index ComicIndex
	Cache ComicCache
}

type ComicPage struct {
	Items  []models.Comic
	Paging util.Paging
}

func (s *ComicService) Create(ctx context.Context, userID string, req transport.ComicRequest, image *ImageUpload) (*models.Comic, error) {
	l := logging.FromContext(ctx).With("svc", "comics.create")

	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if image == nil || image.File == nil {
		return nil, &ValidationError{Fields: map[string]string{"image": "is required"}}
	}

	slug, err := comicSlug(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, slug, ""); err != nil {
		return nil, err
	}

	ct, genres, err := s.resolveRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	img, err := s.upload(ctx, image)
	if err != nil {
		return nil, err
	}

	comic := &models.Comic{
		Slug:        slug,
		Image:       &img.URL,
		ComicTypeID: ct.ID,
		Genres:      genres,
	}
	applyComicFields(comic, req)
	if userID != "" {
		comic.UserID = &userID
	}

	if err := s.Repo.CreateComic(ctx, comic); err != nil {
		s.destroy(ctx, img.PublicID)
		return nil, storeErr(err, fmt.Sprintf("comic %q", slug))
	}
	comic.ComicType = ct

	s.reindex(ctx, comic)
	publish(ctx, s.Events, events.TopicComicEvents, comic.ID,
		events.New(events.ComicCreated, events.ComicEvent{ComicID: comic.ID, Slug: comic.Slug, UserID: userID}))

	l.Info("comic_created", "comic_id", comic.ID, "slug", comic.Slug)
	return comic, nil
}

func (s *ComicService) List(ctx context.Context, page, size int) (*ComicPage, error) {
	offset, limit := util.Calculate(page, size)

	total, items, err := s.Repo.GetComics(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return &ComicPage{Items: items, Paging: util.NewPaging(offset/limit+1, limit, total)}, nil
}

// Search uses the search index when one is configured and falls back to the database.
func (s *ComicService) Search(ctx context.Context, q string, page, size int) (*ComicPage, error) {
	l := logging.FromContext(ctx).With("svc", "comics.search")

	q = strings.TrimSpace(q)
	if q == "" {
		return nil, &ValidationError{Fields: map[string]string{"q": "is required"}}
	}
	offset, limit := util.Calculate(page, size)
	current := offset/limit + 1

	if s.Index != nil {
		total, ids, err := s.Index.SearchComics(ctx, q, offset, limit)
		if err == nil {
			items, err := s.Repo.GetComicsByIDs(ctx, ids)
			if err != nil {
				return nil, err
			}
			return &ComicPage{Items: items, Paging: util.NewPaging(current, limit, total)}, nil
		}
		l.Warn("search_index_failed", "reason", "falling back to database", "error", err)
	}

	total, items, err := s.Repo.SearchComics(ctx, q, offset, limit)
	if err != nil {
		return nil, err
	}
	return &ComicPage{Items: items, Paging: util.NewPaging(current, limit, total)}, nil
}

func (s *ComicService) Get(ctx context.Context, slug string) (*models.Comic, error) {
	l := logging.FromContext(ctx).With("svc", "comics.get")

	if s.Cache != nil {
		comic, ok, err := s.Cache.GetComic(ctx, slug)
		if err != nil {
			l.Warn("comic_cache_read_failed", "slug", slug, "error", err)
		} else if ok {
			return comic, nil
		}
	}

	comic, err := s.Repo.GetComicBySlug(ctx, slug)
	if err != nil {
		return nil, storeErr(err, "comic")
	}

	if s.Cache != nil {
		if err := s.Cache.SetComic(ctx, comic); err != nil {
			l.Warn("comic_cache_write_failed", "slug", slug, "error", err)
		}
	}
	return comic, nil
}

// Update replaces every field of the comic. The image is optional; a new one replaces the old upload.
func (s *ComicService) Update(ctx context.Context, id string, req transport.ComicRequest, image *ImageUpload) (*models.Comic, error) {
	l := logging.FromContext(ctx).With("svc", "comics.update")

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	comic, err := s.Repo.GetComicByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "comic")
	}
	oldSlug := comic.Slug

	slug, err := comicSlug(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, slug, comic.ID); err != nil {
		return nil, err
	}

	ct, genres, err := s.resolveRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	var (
		oldPublicID string
		newImage    *media.Image
	)
	if image != nil && image.File != nil {
		img, err := s.upload(ctx, image)
		if err != nil {
			return nil, err
		}
		newImage = &img
		if comic.Image != nil {
			oldPublicID = media.PublicIDFromURL(*comic.Image)
		}
		comic.Image = &img.URL
	}

	comic.Slug = slug
	comic.ComicTypeID = ct.ID
	comic.ComicType = nil
	applyComicFields(comic, req)

	if err := s.Repo.UpdateComic(ctx, comic, genres); err != nil {
		if newImage != nil {
			s.destroy(ctx, newImage.PublicID)
		}
		return nil, storeErr(err, fmt.Sprintf("comic %q", slug))
	}
	comic.ComicType = ct

	s.destroy(ctx, oldPublicID)
	s.invalidate(ctx, oldSlug, slug)
	s.reindex(ctx, comic)
	publish(ctx, s.Events, events.TopicComicEvents, comic.ID,
		events.New(events.ComicUpdated, events.ComicEvent{ComicID: comic.ID, Slug: comic.Slug}))

	l.Info("comic_updated", "comic_id", comic.ID, "slug", comic.Slug)
	return comic, nil
}

// Delete removes the comic with its chapters, its image and its index entry.
func (s *ComicService) Delete(ctx context.Context, slug string) (*models.Comic, error) {
	l := logging.FromContext(ctx).With("svc", "comics.delete")

	comic, err := s.Repo.LookupComic(ctx, slug)
	if err != nil {
		return nil, storeErr(err, "comic")
	}

	if err := s.Repo.DeleteComic(ctx, comic.ID); err != nil {
		return nil, storeErr(err, "comic")
	}

	if comic.Image != nil {
		s.destroy(ctx, media.PublicIDFromURL(*comic.Image))
	}
	s.invalidate(ctx, comic.Slug)
	if s.Index != nil {
		if err := s.Index.DeleteComic(ctx, comic.ID); err != nil {
			l.Warn("search_index_delete_failed", "comic_id", comic.ID, "error", err)
		}
	}
	publish(ctx, s.Events, events.TopicComicEvents, comic.ID,
		events.New(events.ComicDeleted, events.ComicEvent{ComicID: comic.ID, Slug: comic.Slug}))

	l.Info("comic_deleted", "comic_id", comic.ID, "slug", comic.Slug)
	return comic, nil
}

func comicSlug(name string) (string, error) {
	slug := util.GenerateSlug(name)
	if slug == "" {
		return "", &ValidationError{Fields: map[string]string{"name": "must contain letters or digits"}}
	}
	return slug, nil
}

// ensureSlugFree fails with ErrConflict when another comic than selfID owns slug.
func (s *ComicService) ensureSlugFree(ctx context.Context, slug, selfID string) error {
	existing, err := s.Repo.LookupComic(ctx, slug)
	if err != nil {
		if err = storeErr(err, "comic"); errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	return fmt.Errorf("%w: comic %q already exists", ErrConflict, slug)
}

func (s *ComicService) resolveRefs(ctx context.Context, req transport.ComicRequest) (*models.ComicType, []models.Genre, error) {
	ct, err := s.Repo.GetComicType(ctx, req.ComicTypeID)
	if err != nil {
		if err = storeErr(err, "comic type"); errors.Is(err, ErrNotFound) {
			return nil, nil, &ValidationError{Fields: map[string]string{"comicTypeId": "unknown comic type"}}
		}
		return nil, nil, err
	}

	ids := uniqueStrings(req.GenreIDs)
	genres, err := s.Repo.GetGenresByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	if len(genres) != len(ids) {
		return nil, nil, &ValidationError{Fields: map[string]string{"genreId": "unknown genre"}}
	}
	return ct, genres, nil
}

func (s *ComicService) upload(ctx context.Context, image *ImageUpload) (media.Image, error) {
	img, err := s.Media.Upload(ctx, image.File, image.Filename)
	if err != nil {
		logging.FromContext(ctx).Error("image_upload_failed", "filename", image.Filename, "error", err)
		return media.Image{}, fmt.Errorf("%w: image upload", ErrUpstream)
	}
	return img, nil
}

func (s *ComicService) destroy(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := s.Media.Destroy(ctx, publicID); err != nil {
		logging.FromContext(ctx).Warn("image_destroy_failed", "public_id", publicID, "error", err)
	}
}

func (s *ComicService) invalidate(ctx context.Context, slugs ...string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.DeleteComic(ctx, slugs...); err != nil {
		logging.FromContext(ctx).Warn("comic_cache_invalidate_failed", "slugs", slugs, "error", err)
	}
}

func (s *ComicService) reindex(ctx context.Context, comic *models.Comic) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexComic(ctx, comic); err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "comic_id", comic.ID, "error", err)
	}
}

func applyComicFields(c *models.Comic, req transport.ComicRequest) {
	c.Name = strings.TrimSpace(req.Name)
	c.Synopsis = req.Synopsis
	c.Author = req.Author
	c.Artist = req.Artist
	c.Release = req.Release
	c.Status = models.ComicStatus(req.Status)
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
