package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"type:varchar(32);default:'user'" json:"role"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}

// Page is a statically known leaf view of the site. The set is seeded at
// startup; the navigation overlay links to pages by path.
type Page struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Path        string     `gorm:"uniqueIndex;not null" json:"path"`
	Description string     `json:"description"`
	Content     string     `gorm:"type:text" json:"content"`
	Template    string     `gorm:"default:'page'" json:"template"`
	Published   bool       `gorm:"default:false" json:"published"`
	PublishAt   *time.Time `gorm:"index" json:"publish_at,omitempty"`
	PublishedAt *time.Time `gorm:"index" json:"published_at,omitempty"`

	Order int `gorm:"default:0" json:"order"`
}

type CreatePageRequest struct {
	Title       string     `json:"title" binding:"required"`
	Slug        string     `json:"slug" binding:"omitempty,slug"`
	Path        string     `json:"path"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	Template    string     `json:"template"`
	Published   bool       `json:"published"`
	Order       int        `json:"order"`
	PublishAt   *time.Time `json:"publish_at"`
}

type UpdatePageRequest struct {
	Title       *string    `json:"title"`
	Path        *string    `json:"path"`
	Description *string    `json:"description"`
	Content     *string    `json:"content"`
	Template    *string    `json:"template"`
	Published   *bool      `json:"published"`
	Order       *int       `json:"order"`
	PublishAt   *time.Time `json:"publish_at"`
}

// MenuItem backs one button of the navigation overlay.
type MenuItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Label    string `gorm:"not null" json:"label"`
	URL      string `gorm:"not null" json:"url"`
	Location string `gorm:"type:varchar(32);not null;default:'header'" json:"location"`
	Order    int    `gorm:"default:0" json:"order"`
}

func (m *MenuItem) Normalize() {
	if m == nil {
		return
	}
	m.Label = strings.TrimSpace(m.Label)
	m.URL = strings.TrimSpace(m.URL)
	if strings.TrimSpace(m.Location) == "" {
		m.Location = "header"
	}
}

type CreateMenuItemRequest struct {
	Label    string `json:"label" binding:"required"`
	URL      string `json:"url" binding:"required"`
	Location string `json:"location"`
	Order    *int   `json:"order"`
}

type UpdateMenuItemRequest struct {
	Label    string  `json:"label" binding:"required"`
	URL      string  `json:"url" binding:"required"`
	Location *string `json:"location"`
	Order    *int    `json:"order"`
}

type MenuOrder struct {
	ID    uint `json:"id"`
	Order int  `json:"order"`
}

type ReorderMenuItemsRequest struct {
	Orders []MenuOrder `json:"orders" binding:"required"`
}

// WordEntry is one row of the bee dictionary. The columns mirror the
// pipe-delimited import format: word|origins|part_of_speech|pronunciation|meaning.
type WordEntry struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Word          string `gorm:"uniqueIndex;not null" json:"word"`
	Origins       string `json:"origins"`
	PartOfSpeech  string `json:"part_of_speech"`
	Pronunciation string `json:"pronunciation"`
	Meaning       string `gorm:"type:text;not null" json:"meaning"`
}

type CreateWordRequest struct {
	Word          string `json:"word" binding:"required,dictionary_word"`
	Origins       string `json:"origins"`
	PartOfSpeech  string `json:"part_of_speech"`
	Pronunciation string `json:"pronunciation"`
	Meaning       string `json:"meaning" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
