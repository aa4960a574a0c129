package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pointbank/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transferRepository struct {
	db *gorm.DB
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(db *gorm.DB) TransferRepository {
	return &transferRepository{db: db}
}

func (r *transferRepository) Create(ctx context.Context, req *models.CreateTransferRequest) (*models.Transfer, error) {
	transfer := &models.Transfer{
		IdempotencyKey: uuid.NewString(),
		FromUserID:     req.FromUserID,
		ToUserID:       req.ToUserID,
		Amount:         req.Amount,
		Status:         models.TransferStatusPending,
		Note:           req.Note,
	}
	if err := r.db.WithContext(ctx).Create(transfer).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return transfer, nil
}

func (r *transferRepository) GetByIdemKey(ctx context.Context, idemKey string) (*models.Transfer, error) {
	var transfer models.Transfer
	err := r.db.WithContext(ctx).
		Where("idempotency_key = ?", idemKey).
		First(&transfer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransferNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return &transfer, nil
}

func (r *transferRepository) ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]models.Transfer, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Transfer{}).
		Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}

	var transfers []models.Transfer
	if err := r.db.WithContext(ctx).
		Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&transfers).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return transfers, total, nil
}

func (r *transferRepository) UpdateStatus(ctx context.Context, idemKey string, status models.TransferStatus, completedAt *time.Time, failReason *string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Transfer{}).
		Where("idempotency_key = ?", idemKey).
		Updates(map[string]interface{}{
			"status":       status,
			"updated_at":   time.Now().UTC(),
			"completed_at": completedAt,
			"fail_reason":  failReason,
		})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransferNotFound
	}
	return nil
}
