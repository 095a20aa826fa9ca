package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"online-bookstore/internal/events"
	"online-bookstore/internal/logging"
	"online-bookstore/internal/models"
	"online-bookstore/internal/repo"
	"online-bookstore/internal/search"
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	ES       *elasticsearch.Client
	ESIndex  string
}

type BookInput struct {
	Title       string
	Author      string
	Description string
	Price       float64
	Category    string
	CoverImage  string
}

func (in *BookInput) validate() error {
	if in.Title == "" {
		return fmt.Errorf("title is required: %w", ErrValidation)
	}
	if in.Price < 0 {
		return fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}
	return nil
}

func (s *CatalogService) ListBooks(ctx context.Context) ([]models.Book, error) {
	return s.Repo.ListBooks(ctx)
}

func (s *CatalogService) GetBook(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	book, err := s.Repo.GetBook(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book: %w", ErrNotFound)
		}
		return nil, err
	}
	return book, nil
}

func (s *CatalogService) CreateBook(ctx context.Context, in BookInput) (*models.Book, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create_book")

	if err := in.validate(); err != nil {
		return nil, err
	}

	book := &models.Book{
		Title:       in.Title,
		Author:      in.Author,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		CoverImage:  in.CoverImage,
	}
	if err := s.Repo.CreateBook(ctx, book); err != nil {
		l.Error("create_book_failed", "reason", "db_error", "error", err)
		return nil, err
	}

	s.index(ctx, book)
	s.publish(ctx, book.ID, map[string]any{
		"type":   "book_created",
		"bookID": book.ID,
		"title":  book.Title,
	})

	l.Info("create_book_success", "bookID", book.ID)
	return book, nil
}

func (s *CatalogService) UpdateBook(ctx context.Context, id uuid.UUID, in BookInput) (*models.Book, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.update_book")

	if err := in.validate(); err != nil {
		return nil, err
	}

	book, err := s.Repo.GetBook(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book: %w", ErrNotFound)
		}
		return nil, err
	}

	book.Title = in.Title
	book.Author = in.Author
	book.Description = in.Description
	book.Price = in.Price
	book.Category = in.Category
	if in.CoverImage != "" {
		book.CoverImage = in.CoverImage
	}

	if err := s.Repo.SaveBook(ctx, book); err != nil {
		l.Error("update_book_failed", "reason", "db_error", "error", err)
		return nil, err
	}

	s.index(ctx, book)
	s.publish(ctx, book.ID, map[string]any{
		"type":   "book_updated",
		"bookID": book.ID,
		"title":  book.Title,
	})

	l.Info("update_book_success", "bookID", book.ID)
	return book, nil
}

func (s *CatalogService) DeleteBook(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.delete_book")

	book, err := s.Repo.GetBook(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book: %w", ErrNotFound)
		}
		return nil, err
	}

	if err := s.Repo.DeleteBook(ctx, id); err != nil {
		l.Error("delete_book_failed", "reason", "db_error", "error", err)
		return nil, err
	}

	if s.ES != nil {
		if err := search.DeleteBook(ctx, s.ES, s.ESIndex, id.String()); err != nil {
			l.Warn("search_delete_failed", "bookID", id, "error", err)
		}
	}
	s.publish(ctx, id, map[string]any{
		"type":   "book_deleted",
		"bookID": id,
	})

	l.Info("delete_book_success", "bookID", id)
	return book, nil
}

// Search goes through Elasticsearch when a client is configured and falls
// back to a substring match on titles in the database otherwise.
func (s *CatalogService) Search(ctx context.Context, query string, from, size int) ([]models.Book, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is required: %w", ErrValidation)
	}

	if s.ES != nil {
		_, books, err := search.Search(ctx, s.ES, s.ESIndex, query, from, size)
		return books, err
	}
	return s.Repo.SearchBooksByTitle(ctx, query)
}

func (s *CatalogService) index(ctx context.Context, book *models.Book) {
	if s.ES == nil {
		return
	}
	if err := search.IndexBook(ctx, s.ES, s.ESIndex, book); err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "bookID", book.ID, "error", err)
	}
}

func (s *CatalogService) publish(ctx context.Context, bookID uuid.UUID, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, events.TopicBookEvents, bookID.String(), event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", events.TopicBookEvents, "error", err)
	}
}
