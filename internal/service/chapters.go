package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/comic_catalog/internal/logging"
	"github.com/Skotchmaster/comic_catalog/internal/models"
	"github.com/Skotchmaster/comic_catalog/internal/transport"
	"github.com/Skotchmaster/comic_catalog/internal/util"
)

type ChapterStore interface {
	LookupComic(ctx context.Context, slug string) (*models.Comic, error)
	CreateChapter(ctx context.Context, chapter *models.Chapter) error
	GetChapters(ctx context.Context, comicID string) ([]models.Chapter, error)
	GetChapterBySlug(ctx context.Context, comicID, slug string) (*models.Chapter, error)
	GetChapterByID(ctx context.Context, comicID, id string) (*models.Chapter, error)
	UpdateChapter(ctx context.Context, chapter *models.Chapter) error
	DeleteChapters(ctx context.Context, comicID string, slugs []string) (int64, error)
}

type ChapterService struct {
	Repo ChapterStore
	// Cache holds comic detail pages, which embed chapters.
	Cache ComicCache
}

func (s *ChapterService) comic(ctx context.Context, slug string) (*models.Comic, error) {
	comic, err := s.Repo.LookupComic(ctx, slug)
	if err != nil {
		return nil, storeErr(err, "comic")
	}
	return comic, nil
}

// chapterSlug prefixes the chapter name with the comic slug so chapter slugs stay unique per comic.
func chapterSlug(comic *models.Comic, name string) (string, error) {
	part := util.GenerateSlug(name)
	if part == "" {
		return "", &ValidationError{Fields: map[string]string{"name": "must contain letters or digits"}}
	}
	return comic.Slug + "-" + part, nil
}

func (s *ChapterService) Create(ctx context.Context, comicSlug string, req transport.ChapterRequest) (*models.Chapter, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	comic, err := s.comic(ctx, comicSlug)
	if err != nil {
		return nil, err
	}
	slug, err := chapterSlug(comic, req.Name)
	if err != nil {
		return nil, err
	}

	chapter := &models.Chapter{
		Slug:    slug,
		Name:    strings.TrimSpace(req.Name),
		Content: req.Content,
		ComicID: comic.ID,
	}
	if err := s.Repo.CreateChapter(ctx, chapter); err != nil {
		return nil, storeErr(err, "chapter "+slug)
	}

	s.invalidate(ctx, comic.Slug)
	return chapter, nil
}

func (s *ChapterService) List(ctx context.Context, comicSlug string) ([]models.Chapter, error) {
	comic, err := s.comic(ctx, comicSlug)
	if err != nil {
		return nil, err
	}
	return s.Repo.GetChapters(ctx, comic.ID)
}

func (s *ChapterService) Get(ctx context.Context, comicSlug, chapterSlug string) (*models.Chapter, error) {
	comic, err := s.comic(ctx, comicSlug)
	if err != nil {
		return nil, err
	}
	chapter, err := s.Repo.GetChapterBySlug(ctx, comic.ID, chapterSlug)
	if err != nil {
		return nil, storeErr(err, "chapter")
	}
	return chapter, nil
}

func (s *ChapterService) Update(ctx context.Context, comicSlug, id string, req transport.ChapterRequest) (*models.Chapter, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	comic, err := s.comic(ctx, comicSlug)
	if err != nil {
		return nil, err
	}
	chapter, err := s.Repo.GetChapterByID(ctx, comic.ID, id)
	if err != nil {
		return nil, storeErr(err, "chapter")
	}

	slug, err := chapterSlug(comic, req.Name)
	if err != nil {
		return nil, err
	}
	chapter.Slug = slug
	chapter.Name = strings.TrimSpace(req.Name)
	chapter.Content = req.Content

	if err := s.Repo.UpdateChapter(ctx, chapter); err != nil {
		return nil, storeErr(err, "chapter "+slug)
	}

	s.invalidate(ctx, comic.Slug)
	return chapter, nil
}

// Delete accepts one slug or a comma separated list and reports how many chapters went.
func (s *ChapterService) Delete(ctx context.Context, comicSlug, slugOrSlugs string) (int64, error) {
	slugs := uniqueStrings(strings.Split(slugOrSlugs, ","))
	if len(slugs) == 0 {
		return 0, &ValidationError{Fields: map[string]string{"slug": "is required"}}
	}

	comic, err := s.comic(ctx, comicSlug)
	if err != nil {
		return 0, err
	}

	n, err := s.Repo.DeleteChapters(ctx, comic.ID, slugs)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: no matching chapters", ErrNotFound)
	}

	s.invalidate(ctx, comic.Slug)
	return n, nil
}

func (s *ChapterService) invalidate(ctx context.Context, comicSlug string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.DeleteComic(ctx, comicSlug); err != nil {
		logging.FromContext(ctx).Warn("comic_cache_invalidate_failed", "slug", comicSlug, "error", err)
	}
}
