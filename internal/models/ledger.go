package models

import (
	"fmt"
	"time"
)

// EventType classifies a balance-changing ledger event.
type EventType string

const (
	EventTypeTransferOut EventType = "transfer_out"
	EventTypeTransferIn  EventType = "transfer_in"
	EventTypeAdjust      EventType = "adjust"
	EventTypeEarn        EventType = "earn"
	EventTypeRedeem      EventType = "redeem"
)

// ParseEventType validates a stored event type string.
func ParseEventType(s string) (EventType, error) {
	switch EventType(s) {
	case EventTypeTransferOut, EventTypeTransferIn, EventTypeAdjust,
		EventTypeEarn, EventTypeRedeem:
		return EventType(s), nil
	}
	return "", fmt.Errorf("invalid event type: %q", s)
}

// LedgerEntry is one immutable row per balance change. BalanceAfter is the
// authoritative balance snapshot: a user's current balance is the
// BalanceAfter of their newest entry.
type LedgerEntry struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uint      `gorm:"not null;index:idx_ledger_user_created" json:"userId"`
	Change       int64     `gorm:"not null" json:"change"`
	BalanceAfter int64     `gorm:"not null" json:"balanceAfter"`
	EventType    EventType `gorm:"not null" json:"eventType"`
	TransferID   *uint     `gorm:"index" json:"transferId,omitempty"`
	Reference    string    `json:"reference,omitempty"`
	Metadata     JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time `gorm:"index:idx_ledger_user_created" json:"createdAt"`
}

// TableName keeps the historical table name.
func (LedgerEntry) TableName() string { return "point_ledger" }
