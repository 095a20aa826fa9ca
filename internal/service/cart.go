package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"online-bookstore/internal/events"
	"online-bookstore/internal/logging"
	"online-bookstore/internal/models"
	"online-bookstore/internal/repo"
)

type CartService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

// AddBook verifies both entities exist, then appends. Re-adding a book in the
// cart fails with ErrDuplicateInCart rather than silently succeeding.
func (s *CartService) AddBook(ctx context.Context, userID, bookID uuid.UUID) ([]uuid.UUID, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add_book")

	if _, err := s.Repo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, err
	}
	if _, err := s.Repo.GetBook(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book: %w", ErrNotFound)
		}
		return nil, err
	}

	if err := s.Repo.AddCartItem(ctx, userID, bookID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			l.Warn("add_book_failed", "reason", "duplicate", "bookID", bookID)
			return nil, ErrDuplicateInCart
		}
		l.Error("add_book_failed", "reason", "db_error", "error", err)
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":   "cart_book_added",
		"userID": userID,
		"bookID": bookID,
	})

	return s.Repo.CartBookIDs(ctx, userID)
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]models.Book, error) {
	if _, err := s.Repo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, err
	}
	return s.Repo.CartBooks(ctx, userID)
}

// RemoveBook removes every occurrence of the book; removing a book that is
// not in the cart succeeds.
func (s *CartService) RemoveBook(ctx context.Context, userID, bookID uuid.UUID) ([]uuid.UUID, error) {
	if _, err := s.Repo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, err
	}

	if err := s.Repo.RemoveCartItem(ctx, userID, bookID); err != nil {
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":   "cart_book_removed",
		"userID": userID,
		"bookID": bookID,
	})

	return s.Repo.CartBookIDs(ctx, userID)
}

func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.Repo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user: %w", ErrNotFound)
		}
		return err
	}

	if err := s.Repo.ClearCart(ctx, userID); err != nil {
		return err
	}

	s.publish(ctx, userID, map[string]any{
		"type":   "cart_cleared",
		"userID": userID,
	})
	return nil
}

func (s *CartService) publish(ctx context.Context, userID uuid.UUID, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, events.TopicCartEvents, userID.String(), event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", events.TopicCartEvents, "error", err)
	}
}
