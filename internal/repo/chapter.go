package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/comic_catalog/internal/models"
)

func (r *GormRepo) CreateChapter(ctx context.Context, chapter *models.Chapter) error {
	return wrapWrite(r.DB.WithContext(ctx).Omit("Comic").Create(chapter).Error)
}

func (r *GormRepo) GetChapters(ctx context.Context, comicID string) ([]models.Chapter, error) {
	chapters := make([]models.Chapter, 0)
	if err := r.DB.WithContext(ctx).
		Where("comic_id = ?", comicID).
		Order("created_at DESC").
		Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

func (r *GormRepo) GetChapterBySlug(ctx context.Context, comicID, slug string) (*models.Chapter, error) {
	var chapter models.Chapter
	if err := r.DB.WithContext(ctx).Where("comic_id = ? AND slug = ?", comicID, slug).First(&chapter).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *GormRepo) GetChapterByID(ctx context.Context, comicID, id string) (*models.Chapter, error) {
	var chapter models.Chapter
	if err := r.DB.WithContext(ctx).Where("comic_id = ? AND id = ?", comicID, id).First(&chapter).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *GormRepo) UpdateChapter(ctx context.Context, chapter *models.Chapter) error {
	res := r.DB.WithContext(ctx).Model(&models.Chapter{}).
		Where("id = ?", chapter.ID).
		Updates(map[string]any{"name": chapter.Name, "slug": chapter.Slug, "content": chapter.Content})
	if res.Error != nil {
		return wrapWrite(res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteChapters deletes the comic's chapters matching slugs and reports how many went.
func (r *GormRepo) DeleteChapters(ctx context.Context, comicID string, slugs []string) (int64, error) {
	if len(slugs) == 0 {
		return 0, nil
	}
	res := r.DB.WithContext(ctx).Where("comic_id = ? AND slug IN ?", comicID, slugs).Delete(&models.Chapter{})
	return res.RowsAffected, res.Error
}
