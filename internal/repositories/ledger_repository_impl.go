package repositories

import (
	"context"
	"errors"
	"fmt"

	domainerr "pointbank/internal/errors"
	"pointbank/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) CurrentBalance(ctx context.Context, userID uint) (int64, error) {
	return currentBalance(r.db.WithContext(ctx), userID)
}

// currentBalance reads the newest ledger snapshot for a user, falling back to
// the seed points on the user row. Runs against tx so callers holding row
// locks see their own view.
func currentBalance(tx *gorm.DB, userID uint) (int64, error) {
	var entry models.LedgerEntry
	err := tx.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&entry).Error
	if err == nil {
		return entry.BalanceAfter, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}

	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return user.Points, nil
}

func (r *ledgerRepository) Append(ctx context.Context, entry *models.LedgerEntry) (*models.LedgerEntry, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return entry, nil
}

func (r *ledgerRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return entries, nil
}

func (r *ledgerRepository) ExecuteTransfer(ctx context.Context, transfer *models.Transfer) (*models.LedgerEntry, *models.LedgerEntry, error) {
	var out, in *models.LedgerEntry

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUsers(tx, transfer.FromUserID, transfer.ToUserID); err != nil {
			return err
		}

		fromBalance, err := currentBalance(tx, transfer.FromUserID)
		if err != nil {
			return err
		}
		if fromBalance < transfer.Amount {
			return domainerr.ErrInsufficientPoints
		}

		toBalance, err := currentBalance(tx, transfer.ToUserID)
		if err != nil {
			return err
		}

		meta := models.JSON{
			"transferId": transfer.ID,
			"idemKey":    transfer.IdempotencyKey,
			"note":       transfer.Note,
		}
		transferID := transfer.ID

		out = &models.LedgerEntry{
			UserID:       transfer.FromUserID,
			Change:       -transfer.Amount,
			BalanceAfter: fromBalance - transfer.Amount,
			EventType:    models.EventTypeTransferOut,
			TransferID:   &transferID,
			Reference:    fmt.Sprintf("Transfer to user %d", transfer.ToUserID),
			Metadata:     meta,
		}
		if err := tx.Create(out).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
		}

		in = &models.LedgerEntry{
			UserID:       transfer.ToUserID,
			Change:       transfer.Amount,
			BalanceAfter: toBalance + transfer.Amount,
			EventType:    models.EventTypeTransferIn,
			TransferID:   &transferID,
			Reference:    fmt.Sprintf("Transfer from user %d", transfer.FromUserID),
			Metadata:     meta,
		}
		if err := tx.Create(in).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return out, in, nil
}

func (r *ledgerRepository) AdjustPoints(ctx context.Context, userID uint, change int64, eventType models.EventType, reference string, metadata models.JSON) (*models.LedgerEntry, error) {
	var entry *models.LedgerEntry

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUsers(tx, userID); err != nil {
			return err
		}

		balance, err := currentBalance(tx, userID)
		if err != nil {
			return err
		}
		if balance+change < 0 {
			return domainerr.ErrInsufficientPoints
		}

		entry = &models.LedgerEntry{
			UserID:       userID,
			Change:       change,
			BalanceAfter: balance + change,
			EventType:    eventType,
			Reference:    reference,
			Metadata:     metadata,
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// lockUsers takes FOR UPDATE locks on the given user rows in ascending id
// order so concurrent transfers touching the same pair cannot deadlock.
func lockUsers(tx *gorm.DB, ids ...uint) error {
	ordered := make([]uint, len(ids))
	copy(ordered, ids)
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if ordered[j] < ordered[i] {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}
	for _, id := range ordered {
		var user models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
		}
	}
	return nil
}
