package repo

import (
	"context"

	"github.com/google/uuid"

	"online-bookstore/internal/models"
)

func (r *GormRepo) ListBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := r.DB.WithContext(ctx).Order("title ASC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormRepo) GetBook(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	var book models.Book
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *GormRepo) CreateBook(ctx context.Context, b *models.Book) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *GormRepo) SaveBook(ctx context.Context, b *models.Book) error {
	return r.DB.WithContext(ctx).Save(b).Error
}

func (r *GormRepo) DeleteBook(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Delete(&models.Book{}, "id = ?", id).Error
}

func (r *GormRepo) SearchBooksByTitle(ctx context.Context, query string) ([]models.Book, error) {
	var books []models.Book
	err := r.DB.WithContext(ctx).
		Where("LOWER(title) LIKE LOWER(?)", "%"+query+"%").
		Order("title ASC").
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}
