package models

import (
	"fmt"
	"time"
)

// TransferStatus is the lifecycle state of a transfer.
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusCompleted TransferStatus = "completed"
	TransferStatusFailed    TransferStatus = "failed"

	// Reserved vocabulary. No code path currently produces these; they exist
	// so stored rows written by future workflows still parse.
	TransferStatusProcessing TransferStatus = "processing"
	TransferStatusCancelled  TransferStatus = "cancelled"
	TransferStatusReversed   TransferStatus = "reversed"
)

// Terminal reports whether no further transition may occur from s.
func (s TransferStatus) Terminal() bool {
	return s == TransferStatusCompleted || s == TransferStatusFailed
}

// ParseTransferStatus validates a stored status string.
func ParseTransferStatus(s string) (TransferStatus, error) {
	switch TransferStatus(s) {
	case TransferStatusPending, TransferStatusProcessing, TransferStatusCompleted,
		TransferStatusFailed, TransferStatusCancelled, TransferStatusReversed:
		return TransferStatus(s), nil
	}
	return "", fmt.Errorf("invalid transfer status: %q", s)
}

// Transfer is one row per transfer attempt. Rows are created once in state
// pending and mutated only through status transitions; they are never deleted.
type Transfer struct {
	ID             uint           `gorm:"primarykey" json:"transferId"`
	IdempotencyKey string         `gorm:"uniqueIndex;not null" json:"idemKey"`
	FromUserID     uint           `gorm:"not null;index" json:"fromUserId"`
	ToUserID       uint           `gorm:"not null;index" json:"toUserId"`
	Amount         int64          `gorm:"not null" json:"amount"`
	Status         TransferStatus `gorm:"not null;default:'pending'" json:"status"`
	Note           string         `json:"note,omitempty"`
	CreatedAt      time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	CompletedAt    *time.Time     `json:"completedAt,omitempty"`
	FailReason     *string        `json:"failReason,omitempty"`
}

// CreateTransferRequest is the payload for initiating a transfer.
// ToUserID must differ from FromUserID and the amount must be positive.
type CreateTransferRequest struct {
	FromUserID uint   `json:"fromUserId" validate:"required"`
	ToUserID   uint   `json:"toUserId" validate:"required,nefield=FromUserID"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
	Note       string `json:"note" validate:"max=512"`
}
