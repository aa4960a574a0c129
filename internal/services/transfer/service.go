package transfer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	domainerr "pointbank/internal/errors"
	"pointbank/internal/models"
	"pointbank/internal/repositories"
	"pointbank/internal/validation"
)

type service struct {
	transferRepo repositories.TransferRepository
	ledgerRepo   repositories.LedgerRepository
	userRepo     repositories.UserRepository
	cache        Cache
	metrics      MetricsCollector
}

// NewService creates a new transfer orchestrator. Cache and metrics are
// optional; the repositories are required.
func NewService(
	transferRepo repositories.TransferRepository,
	ledgerRepo repositories.LedgerRepository,
	userRepo repositories.UserRepository,
	cache Cache,
	metrics MetricsCollector,
) Service {
	if transferRepo == nil {
		panic("transfer repository is required")
	}
	if ledgerRepo == nil {
		panic("ledger repository is required")
	}
	if userRepo == nil {
		panic("user repository is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{
		transferRepo: transferRepo,
		ledgerRepo:   ledgerRepo,
		userRepo:     userRepo,
		cache:        cache,
		metrics:      metrics,
	}
}

func (s *service) Create(ctx context.Context, req *models.CreateTransferRequest) (*models.Transfer, error) {
	if err := validation.ValidateCreateTransfer(req); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, req.FromUserID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, fmt.Errorf("from user: %w", domainerr.ErrUserNotFound)
		}
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, req.ToUserID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, fmt.Errorf("to user: %w", domainerr.ErrUserNotFound)
		}
		return nil, err
	}

	// Advisory pre-check. No lock is held here; the authoritative re-check
	// runs inside ExecuteTransfer under the sender's row lock.
	balance, err := s.ledgerRepo.CurrentBalance(ctx, req.FromUserID)
	if err != nil {
		return nil, err
	}
	if balance < req.Amount {
		s.metrics.RecordError("create", domainerr.ErrInsufficientPoints.Code)
		return nil, domainerr.ErrInsufficientPoints
	}

	transfer, err := s.transferRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	if _, _, moveErr := s.ledgerRepo.ExecuteTransfer(ctx, transfer); moveErr != nil {
		return s.markFailed(ctx, transfer, moveErr)
	}
	return s.markCompleted(ctx, transfer)
}

// markCompleted transitions a pending transfer to its completed terminal
// state. If the status write fails the error propagates and the row stays
// pending for an external reconciliation pass.
func (s *service) markCompleted(ctx context.Context, transfer *models.Transfer) (*models.Transfer, error) {
	now := time.Now().UTC()
	if err := s.transferRepo.UpdateStatus(ctx, transfer.IdempotencyKey, models.TransferStatusCompleted, &now, nil); err != nil {
		return nil, err
	}
	transfer.Status = models.TransferStatusCompleted
	transfer.CompletedAt = &now
	transfer.UpdatedAt = now

	s.afterProcess(ctx, transfer)
	s.metrics.RecordTransfer(models.TransferStatusCompleted, transfer.Amount)
	return transfer, nil
}

// markFailed transitions a pending transfer to failed, preserving the cause.
// The record is still returned to the caller: a failed attempt is an
// auditable outcome, not a request error.
func (s *service) markFailed(ctx context.Context, transfer *models.Transfer, cause error) (*models.Transfer, error) {
	reason := cause.Error()
	if err := s.transferRepo.UpdateStatus(ctx, transfer.IdempotencyKey, models.TransferStatusFailed, nil, &reason); err != nil {
		return nil, err
	}
	transfer.Status = models.TransferStatusFailed
	transfer.FailReason = &reason
	transfer.UpdatedAt = time.Now().UTC()

	s.afterProcess(ctx, transfer)
	s.metrics.RecordTransfer(models.TransferStatusFailed, transfer.Amount)
	return transfer, nil
}

// afterProcess refreshes the caches once a transfer reached a terminal state.
// Cache errors are logged, never surfaced.
func (s *service) afterProcess(ctx context.Context, transfer *models.Transfer) {
	if s.cache == nil {
		return
	}
	if err := s.cache.CacheTransfer(ctx, transfer); err != nil {
		log.Printf("failed to cache transfer %s: %v", transfer.IdempotencyKey, err)
	}
	for _, userID := range []uint{transfer.FromUserID, transfer.ToUserID} {
		if err := s.cache.InvalidateBalance(ctx, userID); err != nil {
			log.Printf("failed to invalidate balance cache for user %d: %v", userID, err)
		}
	}
}

func (s *service) Get(ctx context.Context, idemKey string) (*models.Transfer, error) {
	if s.cache != nil {
		if transfer, err := s.cache.GetTransfer(ctx, idemKey); err == nil {
			return transfer, nil
		}
	}

	transfer, err := s.transferRepo.GetByIdemKey(ctx, idemKey)
	if err != nil {
		if errors.Is(err, repositories.ErrTransferNotFound) {
			return nil, domainerr.ErrTransferNotFound
		}
		return nil, err
	}

	if s.cache != nil && transfer.Status.Terminal() {
		if err := s.cache.CacheTransfer(ctx, transfer); err != nil {
			log.Printf("failed to cache transfer %s: %v", idemKey, err)
		}
	}
	return transfer, nil
}

func (s *service) List(ctx context.Context, userID uint, page, pageSize int) (*ListResult, error) {
	if err := validation.ValidatePagination(page, pageSize); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, domainerr.ErrUserNotFound
		}
		return nil, err
	}

	transfers, total, err := s.transferRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &ListResult{
		Data:     transfers,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}
