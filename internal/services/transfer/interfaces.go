package transfer

import (
	"context"

	"pointbank/internal/models"
)

// Service is the transfer orchestrator.
type Service interface {
	// Create validates, persists and processes a transfer end-to-end,
	// returning the record in whichever terminal state it reached.
	Create(ctx context.Context, req *models.CreateTransferRequest) (*models.Transfer, error)

	// Get looks up a transfer by idempotency key.
	Get(ctx context.Context, idemKey string) (*models.Transfer, error)

	// List returns the user's transfers (sent or received), newest first.
	List(ctx context.Context, userID uint, page, pageSize int) (*ListResult, error)
}

// Cache is the subset of the cache service the orchestrator needs.
// A nil Cache disables caching.
type Cache interface {
	GetTransfer(ctx context.Context, idemKey string) (*models.Transfer, error)
	CacheTransfer(ctx context.Context, transfer *models.Transfer) error
	InvalidateBalance(ctx context.Context, userID uint) error
}
