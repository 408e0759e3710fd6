package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleSuper Role = "super"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSuper
}

type ComicStatus string

const (
	StatusOngoing   ComicStatus = "ongoing"
	StatusCompleted ComicStatus = "completed"
)

// Base gives every table a uuid string key assigned on insert.
type Base struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `                                   json:"createdAt"`
	UpdatedAt time.Time `                                   json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

type User struct {
	Base
	Name         string  `gorm:"not null;default:''"      json:"name"`
	Email        *string `gorm:"uniqueIndex"              json:"email,omitempty"`
	Username     string  `gorm:"uniqueIndex;not null"     json:"username"`
	PasswordHash string  `gorm:"not null"                 json:"-"`
	Role         Role    `gorm:"not null;default:admin"   json:"role"`
	IsOnline     bool    `gorm:"not null;default:false"   json:"isOnline"`
	RefreshToken *string `gorm:"uniqueIndex"              json:"-"`
}

type Genre struct {
	Base
	Slug   string  `gorm:"uniqueIndex;not null" json:"slug"`
	Name   string  `gorm:"not null"             json:"name"`
	Comics []Comic `gorm:"many2many:comic_genres" json:"-"`
}

type ComicType struct {
	Base
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
	Name string `gorm:"not null"             json:"name"`
}

type Comic struct {
	Base
	Slug        string      `gorm:"uniqueIndex;not null"                            json:"slug"`
	Name        string      `gorm:"not null"                                        json:"name"`
	Image       *string     `                                                       json:"image"`
	Synopsis    string      `gorm:"not null;default:''"                             json:"synopsis"`
	Author      string      `gorm:"not null;default:''"                             json:"author"`
	Artist      string      `gorm:"not null;default:''"                             json:"artist"`
	Release     string      `gorm:"not null;default:''"                             json:"release"`
	Status      ComicStatus `gorm:"not null;default:ongoing"                        json:"status"`
	ComicTypeID string      `gorm:"type:varchar(36);index;not null"                 json:"comicTypeId"`
	ComicType   *ComicType  `gorm:"constraint:OnDelete:RESTRICT"                    json:"comicType,omitempty"`
	UserID      *string     `gorm:"type:varchar(36);index"                          json:"userId,omitempty"`
	Genres      []Genre     `gorm:"many2many:comic_genres;constraint:OnDelete:CASCADE" json:"genres,omitempty"`
	Chapters    []Chapter   `gorm:"constraint:OnDelete:CASCADE"                     json:"chapters,omitempty"`
}

type Chapter struct {
	Base
	Slug    string `gorm:"uniqueIndex;not null"            json:"slug"`
	Name    string `gorm:"not null"                        json:"name"`
	Content string `gorm:"type:text;not null;default:''"   json:"content"`
	ComicID string `gorm:"type:varchar(36);index;not null" json:"comicId"`
	Comic   *Comic `                                       json:"comic,omitempty"`
}

// All lists every model in migration order.
func All() []any {
	return []any{&User{}, &Genre{}, &ComicType{}, &Comic{}, &Chapter{}}
}
