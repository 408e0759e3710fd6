package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/comic_catalog/internal/models"
	"github.com/Skotchmaster/comic_catalog/internal/transport"
)

type ComicTypeStore interface {
	CreateComicType(ctx context.Context, ct *models.ComicType) error
	ListComicTypes(ctx context.Context) ([]models.ComicType, error)
	GetComicType(ctx context.Context, id string) (*models.ComicType, error)
	UpdateComicType(ctx context.Context, id, name, slug string) (*models.ComicType, error)
	DeleteComicType(ctx context.Context, id string) error
}

type ComicTypeService struct {
	Repo ComicTypeStore
}

func (s *ComicTypeService) Create(ctx context.Context, req transport.NameRequest) (*models.ComicType, error) {
	name, slug, err := nameAndSlug(req)
	if err != nil {
		return nil, err
	}
	ct := &models.ComicType{Name: name, Slug: slug}
	if err := s.Repo.CreateComicType(ctx, ct); err != nil {
		return nil, storeErr(err, fmt.Sprintf("comic type %q", slug))
	}
	return ct, nil
}

func (s *ComicTypeService) List(ctx context.Context) ([]models.ComicType, error) {
	return s.Repo.ListComicTypes(ctx)
}

func (s *ComicTypeService) Get(ctx context.Context, id string) (*models.ComicType, error) {
	ct, err := s.Repo.GetComicType(ctx, id)
	if err != nil {
		return nil, storeErr(err, "comic type")
	}
	return ct, nil
}

func (s *ComicTypeService) Update(ctx context.Context, id string, req transport.NameRequest) (*models.ComicType, error) {
	name, slug, err := nameAndSlug(req)
	if err != nil {
		return nil, err
	}
	ct, err := s.Repo.UpdateComicType(ctx, id, name, slug)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("comic type %q", slug))
	}
	return ct, nil
}

// Delete refuses with ErrConflict while comics still use the type.
func (s *ComicTypeService) Delete(ctx context.Context, id string) error {
	return storeErr(s.Repo.DeleteComicType(ctx, id), "comic type")
}
