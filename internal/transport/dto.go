package transport

import (
	"time"

	"github.com/Skotchmaster/comic_catalog/internal/models"
	"github.com/Skotchmaster/comic_catalog/internal/util"
)

type SignInRequest struct {
	Identifier string `json:"identifier" validate:"required_without=Username"`
	Username   string `json:"username"   validate:"required_without=Identifier"`
	Password   string `json:"password"   validate:"required"`
}

// Login is the identifier, falling back to the legacy username field.
func (r SignInRequest) Login() string {
	if r.Identifier != "" {
		return r.Identifier
	}
	return r.Username
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword        string `json:"oldPassword"        validate:"required"`
	NewPassword        string `json:"newPassword"        validate:"required,min=8,bcryptlen"`
	ConfirmNewPassword string `json:"confirmNewPassword" validate:"required,eqfield=NewPassword"`
}

type ProfileResponse struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Username string      `json:"username"`
	Email    *string     `json:"email,omitempty"`
	Role     models.Role `json:"role"`
	IsOnline bool        `json:"isOnline"`
}

func NewProfileResponse(u *models.User) ProfileResponse {
	return ProfileResponse{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		IsOnline: u.IsOnline,
	}
}

type CreateUserRequest struct {
	Name            string `json:"name"            validate:"max=100"`
	Email           string `json:"email"           validate:"omitempty,email"`
	Username        string `json:"username"        validate:"required,min=6,max=100"`
	Password        string `json:"password"        validate:"required,min=8,bcryptlen"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Role            string `json:"role"            validate:"required,role"`
}

type UpdateUserRequest struct {
	Role string `json:"role" validate:"required,role"`
}

type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     *string     `json:"email,omitempty"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	IsOnline  bool        `json:"isOnline"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Username:  u.Username,
		Role:      u.Role,
		IsOnline:  u.IsOnline,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NameRequest is the body for genres and comic types.
type NameRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type ComicRequest struct {
	Name        string   `form:"name"        validate:"required,max=200"`
	Synopsis    string   `form:"synopsis"`
	Author      string   `form:"author"      validate:"max=200"`
	Artist      string   `form:"artist"      validate:"max=200"`
	Release     string   `form:"release"     validate:"max=50"`
	Status      string   `form:"status"      validate:"required,oneof=ongoing completed"`
	GenreIDs    []string `form:"genreId"     validate:"dive,required"`
	ComicTypeID string   `form:"comicTypeId" validate:"required"`
}

type ChapterRequest struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Content string `json:"content"`
}

type PageResponse struct {
	Data   any         `json:"data"`
	Paging util.Paging `json:"paging"`
}

type DataResponse struct {
	Data any `json:"data"`
}
