package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/comic_catalog/internal/models"
)

func (r *GormRepo) CreateGenre(ctx context.Context, genre *models.Genre) error {
	return wrapWrite(r.DB.WithContext(ctx).Create(genre).Error)
}

func (r *GormRepo) ListGenres(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *GormRepo) GetGenre(ctx context.Context, id string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

// GetGenresByIDs returns the genres that exist among ids.
func (r *GormRepo) GetGenresByIDs(ctx context.Context, ids []string) ([]models.Genre, error) {
	genres := make([]models.Genre, 0, len(ids))
	if len(ids) == 0 {
		return genres, nil
	}
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *GormRepo) UpdateGenre(ctx context.Context, id, name, slug string) (*models.Genre, error) {
	res := r.DB.WithContext(ctx).Model(&models.Genre{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "slug": slug})
	if res.Error != nil {
		return nil, wrapWrite(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetGenre(ctx, id)
}

func (r *GormRepo) DeleteGenre(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Genre{Base: models.Base{ID: id}}).Association("Comics").Clear(); err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Genre{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
