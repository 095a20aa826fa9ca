package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"online-bookstore/internal/events"
	"online-bookstore/internal/models"
	"online-bookstore/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Book{}, &models.CartItem{}))
	return db
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	return &AuthService{
		Repo:      &repo.GormRepo{DB: newTestDB(t)},
		Producer:  events.NewProducer(""),
		JWTSecret: []byte("test-jwt-secret"),
		TokenTTL:  15 * time.Minute,
	}
}

func newTestCartService(t *testing.T) *CartService {
	t.Helper()

	return &CartService{
		Repo:     &repo.GormRepo{DB: newTestDB(t)},
		Producer: events.NewProducer(""),
	}
}

func newTestCatalogService(t *testing.T) *CatalogService {
	t.Helper()

	return &CatalogService{
		Repo:     &repo.GormRepo{DB: newTestDB(t)},
		Producer: events.NewProducer(""),
	}
}

func createBook(t *testing.T, db *gorm.DB, title string) *models.Book {
	t.Helper()

	book := &models.Book{Title: title, Author: "test author", Price: 9.99}
	require.NoError(t, db.Create(book).Error)
	return book
}
