package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/comic_catalog/internal/models"
	"github.com/Skotchmaster/comic_catalog/internal/transport"
	"github.com/Skotchmaster/comic_catalog/internal/util"
)

type GenreStore interface {
	CreateGenre(ctx context.Context, genre *models.Genre) error
	ListGenres(ctx context.Context) ([]models.Genre, error)
	GetGenre(ctx context.Context, id string) (*models.Genre, error)
	UpdateGenre(ctx context.Context, id, name, slug string) (*models.Genre, error)
	DeleteGenre(ctx context.Context, id string) error
}

type GenreService struct {
	Repo GenreStore
}

func nameAndSlug(req transport.NameRequest) (string, string, error) {
	if err := validateStruct(req); err != nil {
		return "", "", err
	}
	name := strings.TrimSpace(req.Name)
	slug := util.GenerateSlug(name)
	if slug == "" {
		return "", "", &ValidationError{Fields: map[string]string{"name": "must contain letters or digits"}}
	}
	return name, slug, nil
}

func (s *GenreService) Create(ctx context.Context, req transport.NameRequest) (*models.Genre, error) {
	name, slug, err := nameAndSlug(req)
	if err != nil {
		return nil, err
	}
	genre := &models.Genre{Name: name, Slug: slug}
	if err := s.Repo.CreateGenre(ctx, genre); err != nil {
		return nil, storeErr(err, fmt.Sprintf("genre %q", slug))
	}
	return genre, nil
}

func (s *GenreService) List(ctx context.Context) ([]models.Genre, error) {
	return s.Repo.ListGenres(ctx)
}

func (s *GenreService) Get(ctx context.Context, id string) (*models.Genre, error) {
	genre, err := s.Repo.GetGenre(ctx, id)
	if err != nil {
		return nil, storeErr(err, "genre")
	}
	return genre, nil
}

func (s *GenreService) Update(ctx context.Context, id string, req transport.NameRequest) (*models.Genre, error) {
	name, slug, err := nameAndSlug(req)
	if err != nil {
		return nil, err
	}
	genre, err := s.Repo.UpdateGenre(ctx, id, name, slug)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("genre %q", slug))
	}
	return genre, nil
}

func (s *GenreService) Delete(ctx context.Context, id string) error {
	return storeErr(s.Repo.DeleteGenre(ctx, id), "genre")
}
