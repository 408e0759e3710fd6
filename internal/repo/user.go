package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/comic_catalog/internal/models"
)

func (r *GormRepo) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.getUser(ctx, "id = ?", id)
}

func (r *GormRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getUser(ctx, "username = ?", username)
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, "email = ?", email)
}

func (r *GormRepo) GetUserByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return r.getUser(ctx, "refresh_token = ?", token)
}

func (r *GormRepo) GetUserRole(ctx context.Context, id string) (models.Role, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Select("role").Where("id = ?", id).First(&user).Error; err != nil {
		return "", err
	}
	return user.Role, nil
}

// SaveSession marks the user online and replaces any stored refresh token.
func (r *GormRepo) SaveSession(ctx context.Context, userID, refreshToken string) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{"refresh_token": refreshToken, "is_online": true})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SwapRefreshToken stores newToken only if oldToken is still the user's current
// token. It reports false when another request already replaced it.
func (r *GormRepo) SwapRefreshToken(ctx context.Context, userID, oldToken, newToken string) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND refresh_token = ?", userID, oldToken).
		Update("refresh_token", newToken)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ClearSession signs out whoever holds token. A token nobody holds is ErrRecordNotFound.
func (r *GormRepo) ClearSession(ctx context.Context, token string) (*models.User, error) {
	user, err := r.GetUserByRefreshToken(ctx, token)
	if err != nil {
		return nil, err
	}

	res := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND refresh_token = ?", user.ID, token).
		Updates(map[string]any{"refresh_token": nil, "is_online": false})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	user.RefreshToken = nil
	user.IsOnline = false
	return user, nil
}

func (r *GormRepo) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return wrapWrite(r.DB.WithContext(ctx).Create(user).Error)
}

func (r *GormRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormRepo) UpdateUserRole(ctx context.Context, username string, role models.Role) (*models.User, error) {
	res := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).
		Update("role", role)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetUserByUsername(ctx, username)
}

func (r *GormRepo) DeleteUser(ctx context.Context, username string) error {
	res := r.DB.WithContext(ctx).Where("username = ?", username).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
