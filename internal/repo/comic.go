package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/comic_catalog/internal/models"
)

// CreateComic inserts the comic and links its genres without touching the genre rows.
func (r *GormRepo) CreateComic(ctx context.Context, comic *models.Comic) error {
	return wrapWrite(r.DB.WithContext(ctx).Omit("Genres.*", "ComicType", "Chapters").Create(comic).Error)
}

func (r *GormRepo) GetComicBySlug(ctx context.Context, slug string) (*models.Comic, error) {
	var comic models.Comic
	err := r.DB.WithContext(ctx).
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.name ASC") }).
		Preload("ComicType").
		Preload("Chapters", func(db *gorm.DB) *gorm.DB { return db.Order("chapters.created_at DESC") }).
		Where("slug = ?", slug).
		First(&comic).Error
	if err != nil {
		return nil, err
	}
	return &comic, nil
}

// LookupComic loads only the comic row, without associations.
func (r *GormRepo) LookupComic(ctx context.Context, slug string) (*models.Comic, error) {
	var comic models.Comic
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&comic).Error; err != nil {
		return nil, err
	}
	return &comic, nil
}

func (r *GormRepo) GetComicByID(ctx context.Context, id string) (*models.Comic, error) {
	var comic models.Comic
	if err := r.DB.WithContext(ctx).Preload("Genres").Where("id = ?", id).First(&comic).Error; err != nil {
		return nil, err
	}
	return &comic, nil
}

func (r *GormRepo) GetComics(ctx context.Context, offset, limit int) (int64, []models.Comic, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Comic{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Comic, 0, limit)
	if err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

// SearchComics is a case-insensitive substring match on name and author.
func (r *GormRepo) SearchComics(ctx context.Context, q string, offset, limit int) (int64, []models.Comic, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
	where := "LOWER(name) LIKE ? OR LOWER(author) LIKE ?"

	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Comic{}).Where(where, pattern, pattern).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Comic, 0, limit)
	if err := r.DB.WithContext(ctx).
		Where(where, pattern, pattern).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

// GetComicsByIDs loads comics and returns them in the order of ids, skipping unknown ones.
func (r *GormRepo) GetComicsByIDs(ctx context.Context, ids []string) ([]models.Comic, error) {
	out := make([]models.Comic, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var found []models.Comic
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]models.Comic, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// UpdateComic saves the comic columns and replaces its genre links in one transaction.
func (r *GormRepo) UpdateComic(ctx context.Context, comic *models.Comic, genres []models.Genre) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(comic).Error; err != nil {
			return wrapWrite(err)
		}
		links := tx.Model(comic).Omit("Genres.*").Association("Genres")
		if len(genres) == 0 {
			if err := links.Clear(); err != nil {
				return err
			}
			comic.Genres = nil
			return nil
		}
		return links.Replace(genres)
	})
}

// DeleteComic removes the comic with its chapters and genre links.
func (r *GormRepo) DeleteComic(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comic_id = ?", id).Delete(&models.Chapter{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Comic{Base: models.Base{ID: id}}).Association("Genres").Clear(); err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Comic{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
