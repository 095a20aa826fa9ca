package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"online-bookstore/internal/models"
)

// AddCartItem appends a book to the user's cart. The check and the insert run
// in one transaction, and the (user_id, book_id) unique index backs them up:
// two racing adds for the same pair cannot both commit, the loser gets
// gorm.ErrDuplicatedKey either from the pre-check or from the index itself.
func (r *GormRepo) AddCartItem(ctx context.Context, userID, bookID uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.CartItem
		err := tx.Where("user_id = ? AND book_id = ?", userID, bookID).First(&existing).Error
		if err == nil {
			return gorm.ErrDuplicatedKey
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&models.CartItem{UserID: userID, BookID: bookID}).Error
	})
}

// CartBookIDs returns the ids in the user's cart in insertion order.
func (r *GormRepo) CartBookIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.BookID)
	}
	return ids, nil
}

// CartBooks resolves the cart to full book records, preserving insertion
// order. Ids whose book no longer exists are dropped, not reported.
func (r *GormRepo) CartBooks(ctx context.Context, userID uuid.UUID) ([]models.Book, error) {
	ids, err := r.CartBookIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Book{}, nil
	}

	var books []models.Book
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&books).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	ordered := make([]models.Book, 0, len(ids))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			ordered = append(ordered, b)
		}
	}
	return ordered, nil
}

// RemoveCartItem deletes every row for the pair; removing an absent book is a
// no-op success.
func (r *GormRepo) RemoveCartItem(ctx context.Context, userID, bookID uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&models.CartItem{}).Error
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}
