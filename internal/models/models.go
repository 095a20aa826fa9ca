package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"  json:"email"`
	PasswordHash string    `gorm:"not null"              json:"-"`
	Name         string    `json:"name"`
	Mobile       string    `json:"mobile"`
	Role         string    `gorm:"not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Book struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null"             json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null"             json:"price"`
	Category    string    `json:"category"`
	CoverImage  string    `json:"bookImage,omitempty"`
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// CartItem rows are ordered by their autoincrement ID, which preserves the
// order books were added in. The composite unique index keeps a book from
// appearing twice in the same user's cart even under concurrent adds.
type CartItem struct {
	ID     uint      `gorm:"primaryKey"                                         json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_book"  json:"user_id"`
	BookID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_book"  json:"book_id"`
}
