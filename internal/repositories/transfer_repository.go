package repositories

import (
	"context"
	"time"

	"pointbank/internal/models"
)

// TransferRepository persists transfer records keyed by idempotency key.
type TransferRepository interface {
	// Create generates a fresh idempotency key, persists the transfer with
	// status pending and returns the full record.
	Create(ctx context.Context, req *models.CreateTransferRequest) (*models.Transfer, error)

	GetByIdemKey(ctx context.Context, idemKey string) (*models.Transfer, error)

	// ListByUser returns transfers where the user is sender or receiver,
	// newest first, plus the total count of matching rows.
	ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]models.Transfer, int64, error)

	// UpdateStatus transitions an existing record and refreshes updated_at.
	UpdateStatus(ctx context.Context, idemKey string, status models.TransferStatus, completedAt *time.Time, failReason *string) error
}
