// Package ledger exposes balance reads, audit history and manual point
// adjustments over the append-only point ledger.
package ledger

import (
	"context"
	"errors"
	"log"

	domainerr "pointbank/internal/errors"
	"pointbank/internal/models"
	"pointbank/internal/repositories"
)

const (
	DefaultHistoryLimit = 100
	MaxHistoryLimit     = 500
)

// Service errors.
var (
	ErrInvalidChange    = errors.New("change must not be zero")
	ErrInvalidEventType = errors.New("event type must be adjust, earn or redeem")
)

// Cache is the subset of the cache service the ledger needs. A nil Cache
// disables caching.
type Cache interface {
	GetBalance(ctx context.Context, userID uint) (int64, error)
	CacheBalance(ctx context.Context, userID uint, balance int64) error
	InvalidateBalance(ctx context.Context, userID uint) error
}

// Service reads balances and appends manual ledger events.
type Service interface {
	Balance(ctx context.Context, userID uint) (int64, error)
	History(ctx context.Context, userID uint, limit, offset int) ([]models.LedgerEntry, error)
	Adjust(ctx context.Context, userID uint, change int64, eventType models.EventType, reference string) (*models.LedgerEntry, error)
}

type service struct {
	ledgerRepo repositories.LedgerRepository
	userRepo   repositories.UserRepository
	cache      Cache
}

// NewService creates a new ledger service.
func NewService(ledgerRepo repositories.LedgerRepository, userRepo repositories.UserRepository, cache Cache) Service {
	if ledgerRepo == nil {
		panic("ledger repository is required")
	}
	if userRepo == nil {
		panic("user repository is required")
	}
	return &service{ledgerRepo: ledgerRepo, userRepo: userRepo, cache: cache}
}

func (s *service) Balance(ctx context.Context, userID uint) (int64, error) {
	if s.cache != nil {
		if balance, err := s.cache.GetBalance(ctx, userID); err == nil {
			return balance, nil
		}
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return 0, domainerr.ErrUserNotFound
		}
		return 0, err
	}

	balance, err := s.ledgerRepo.CurrentBalance(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.CacheBalance(ctx, userID, balance); err != nil {
			log.Printf("failed to cache balance for user %d: %v", userID, err)
		}
	}
	return balance, nil
}

func (s *service) History(ctx context.Context, userID uint, limit, offset int) ([]models.LedgerEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, domainerr.ErrUserNotFound
		}
		return nil, err
	}
	return s.ledgerRepo.ListByUser(ctx, userID, limit, offset)
}

func (s *service) Adjust(ctx context.Context, userID uint, change int64, eventType models.EventType, reference string) (*models.LedgerEntry, error) {
	if change == 0 {
		return nil, ErrInvalidChange
	}
	switch eventType {
	case models.EventTypeAdjust:
	case models.EventTypeEarn:
		if change < 0 {
			return nil, ErrInvalidChange
		}
	case models.EventTypeRedeem:
		if change > 0 {
			return nil, ErrInvalidChange
		}
	default:
		return nil, ErrInvalidEventType
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, domainerr.ErrUserNotFound
		}
		return nil, err
	}

	entry, err := s.ledgerRepo.AdjustPoints(ctx, userID, change, eventType, reference, nil)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, domainerr.ErrUserNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateBalance(ctx, userID); err != nil {
			log.Printf("failed to invalidate balance cache for user %d: %v", userID, err)
		}
	}
	return entry, nil
}
