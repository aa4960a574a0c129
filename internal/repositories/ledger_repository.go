package repositories

import (
	"context"

	"pointbank/internal/models"
)

// LedgerRepository is the append-only point ledger. Entries are created once
// and immutable thereafter; a user's balance is the BalanceAfter of their
// newest entry, falling back to the user's seed points when no history exists.
type LedgerRepository interface {
	CurrentBalance(ctx context.Context, userID uint) (int64, error)

	// Append is a pure insert with no business validation; it trusts the
	// caller and returns the persisted entry.
	Append(ctx context.Context, entry *models.LedgerEntry) (*models.LedgerEntry, error)

	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.LedgerEntry, error)

	// ExecuteTransfer moves points for a pending transfer. The sender balance
	// re-check and both ledger inserts run in one database transaction with
	// both user rows locked, so concurrent transfers out of the same sender
	// serialize and can never overdraw. Returns ErrInsufficientPoints from
	// the errors package without writing anything when the re-check fails.
	ExecuteTransfer(ctx context.Context, transfer *models.Transfer) (out, in *models.LedgerEntry, err error)

	// AdjustPoints appends a single adjust/earn/redeem entry under the same
	// row lock. A negative change that would overdraw the balance is refused.
	AdjustPoints(ctx context.Context, userID uint, change int64, eventType models.EventType, reference string, metadata models.JSON) (*models.LedgerEntry, error)
}
