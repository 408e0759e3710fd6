package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/comic_catalog/internal/models"
)

func (r *GormRepo) CreateComicType(ctx context.Context, ct *models.ComicType) error {
	return wrapWrite(r.DB.WithContext(ctx).Create(ct).Error)
}

func (r *GormRepo) ListComicTypes(ctx context.Context) ([]models.ComicType, error) {
	var types []models.ComicType
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *GormRepo) GetComicType(ctx context.Context, id string) (*models.ComicType, error) {
	var ct models.ComicType
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&ct).Error; err != nil {
		return nil, err
	}
	return &ct, nil
}

func (r *GormRepo) UpdateComicType(ctx context.Context, id, name, slug string) (*models.ComicType, error) {
	res := r.DB.WithContext(ctx).Model(&models.ComicType{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "slug": slug})
	if res.Error != nil {
		return nil, wrapWrite(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetComicType(ctx, id)
}

// DeleteComicType refuses types still referenced by comics with ErrInUse.
func (r *GormRepo) DeleteComicType(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var used int64
		if err := tx.Model(&models.Comic{}).Where("comic_type_id = ?", id).Count(&used).Error; err != nil {
			return err
		}
		if used > 0 {
			return ErrInUse
		}
		res := tx.Where("id = ?", id).Delete(&models.ComicType{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
