package transfer

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	domainerr "pointbank/internal/errors"
	"pointbank/internal/models"
	"pointbank/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes for the repository interfaces.

type fakeUserRepo struct {
	users map[uint]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error { return nil }
func (r *fakeUserRepo) Delete(_ context.Context, id uint) error           { return nil }
func (r *fakeUserRepo) List(_ context.Context, _, _ int) ([]models.User, int64, error) {
	return nil, 0, nil
}

type fakeTransferRepo struct {
	byKey     map[string]*models.Transfer
	ordered   []*models.Transfer
	nextID    uint
	createErr error
	updateErr error
}

func newFakeTransferRepo() *fakeTransferRepo {
	return &fakeTransferRepo{byKey: make(map[string]*models.Transfer), nextID: 1}
}

func (r *fakeTransferRepo) Create(_ context.Context, req *models.CreateTransferRequest) (*models.Transfer, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	now := time.Now().UTC()
	t := &models.Transfer{
		ID:             r.nextID,
		IdempotencyKey: uuid.NewString(),
		FromUserID:     req.FromUserID,
		ToUserID:       req.ToUserID,
		Amount:         req.Amount,
		Status:         models.TransferStatusPending,
		Note:           req.Note,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.nextID++
	r.byKey[t.IdempotencyKey] = t
	r.ordered = append(r.ordered, t)
	return t, nil
}

func (r *fakeTransferRepo) GetByIdemKey(_ context.Context, idemKey string) (*models.Transfer, error) {
	t, ok := r.byKey[idemKey]
	if !ok {
		return nil, repositories.ErrTransferNotFound
	}
	return t, nil
}

func (r *fakeTransferRepo) ListByUser(_ context.Context, userID uint, page, pageSize int) ([]models.Transfer, int64, error) {
	var matches []models.Transfer
	for _, t := range r.ordered {
		if t.FromUserID == userID || t.ToUserID == userID {
			matches = append(matches, *t)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	total := int64(len(matches))
	start := (page - 1) * pageSize
	if start >= len(matches) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end], total, nil
}

func (r *fakeTransferRepo) UpdateStatus(_ context.Context, idemKey string, status models.TransferStatus, completedAt *time.Time, failReason *string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	t, ok := r.byKey[idemKey]
	if !ok {
		return repositories.ErrTransferNotFound
	}
	t.Status = status
	t.CompletedAt = completedAt
	t.FailReason = failReason
	t.UpdatedAt = time.Now().UTC()
	return nil
}

type fakeLedgerRepo struct {
	entries    map[uint][]models.LedgerEntry
	seeds      map[uint]int64
	nextID     uint
	executeErr error
}

func newFakeLedgerRepo(seeds map[uint]int64) *fakeLedgerRepo {
	return &fakeLedgerRepo{
		entries: make(map[uint][]models.LedgerEntry),
		seeds:   seeds,
		nextID:  1,
	}
}

func (r *fakeLedgerRepo) CurrentBalance(_ context.Context, userID uint) (int64, error) {
	if history := r.entries[userID]; len(history) > 0 {
		return history[len(history)-1].BalanceAfter, nil
	}
	return r.seeds[userID], nil
}

func (r *fakeLedgerRepo) Append(_ context.Context, entry *models.LedgerEntry) (*models.LedgerEntry, error) {
	entry.ID = r.nextID
	r.nextID++
	entry.CreatedAt = time.Now().UTC()
	r.entries[entry.UserID] = append(r.entries[entry.UserID], *entry)
	return entry, nil
}

func (r *fakeLedgerRepo) ListByUser(_ context.Context, userID uint, limit, offset int) ([]models.LedgerEntry, error) {
	history := r.entries[userID]
	out := make([]models.LedgerEntry, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, history[i])
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeLedgerRepo) ExecuteTransfer(ctx context.Context, transfer *models.Transfer) (*models.LedgerEntry, *models.LedgerEntry, error) {
	if r.executeErr != nil {
		return nil, nil, r.executeErr
	}
	fromBalance, _ := r.CurrentBalance(ctx, transfer.FromUserID)
	if fromBalance < transfer.Amount {
		return nil, nil, domainerr.ErrInsufficientPoints
	}
	toBalance, _ := r.CurrentBalance(ctx, transfer.ToUserID)

	transferID := transfer.ID
	out, _ := r.Append(ctx, &models.LedgerEntry{
		UserID:       transfer.FromUserID,
		Change:       -transfer.Amount,
		BalanceAfter: fromBalance - transfer.Amount,
		EventType:    models.EventTypeTransferOut,
		TransferID:   &transferID,
	})
	in, _ := r.Append(ctx, &models.LedgerEntry{
		UserID:       transfer.ToUserID,
		Change:       transfer.Amount,
		BalanceAfter: toBalance + transfer.Amount,
		EventType:    models.EventTypeTransferIn,
		TransferID:   &transferID,
	})
	return out, in, nil
}

func (r *fakeLedgerRepo) AdjustPoints(ctx context.Context, userID uint, change int64, eventType models.EventType, reference string, metadata models.JSON) (*models.LedgerEntry, error) {
	balance, _ := r.CurrentBalance(ctx, userID)
	if balance+change < 0 {
		return nil, domainerr.ErrInsufficientPoints
	}
	return r.Append(ctx, &models.LedgerEntry{
		UserID:       userID,
		Change:       change,
		BalanceAfter: balance + change,
		EventType:    eventType,
		Reference:    reference,
		Metadata:     metadata,
	})
}

func newTestService(seeds map[uint]int64) (Service, *fakeTransferRepo, *fakeLedgerRepo, *fakeUserRepo) {
	users := newFakeUserRepo()
	for id := range seeds {
		users.users[id] = &models.User{ID: id, Points: seeds[id]}
	}
	transfers := newFakeTransferRepo()
	ledgers := newFakeLedgerRepo(seeds)
	return NewService(transfers, ledgers, users, nil, nil), transfers, ledgers, users
}

func TestCreate_CompletedTransfer(t *testing.T) {
	svc, _, ledgers, _ := newTestService(map[uint]int64{1: 1500, 2: 750})

	result, err := svc.Create(context.Background(), &models.CreateTransferRequest{
		FromUserID: 1,
		ToUserID:   2,
		Amount:     500,
		Note:       "birthday points",
	})
	require.NoError(t, err)

	assert.Equal(t, models.TransferStatusCompleted, result.Status)
	require.NotNil(t, result.CompletedAt)
	assert.Nil(t, result.FailReason)
	assert.NotEmpty(t, result.IdempotencyKey)

	fromBalance, _ := ledgers.CurrentBalance(context.Background(), 1)
	toBalance, _ := ledgers.CurrentBalance(context.Background(), 2)
	assert.Equal(t, int64(1000), fromBalance)
	assert.Equal(t, int64(1250), toBalance)

	// Conservation: exactly two entries referencing the transfer, summing to 0.
	outEntries := ledgers.entries[1]
	inEntries := ledgers.entries[2]
	require.Len(t, outEntries, 1)
	require.Len(t, inEntries, 1)
	assert.Equal(t, models.EventTypeTransferOut, outEntries[0].EventType)
	assert.Equal(t, models.EventTypeTransferIn, inEntries[0].EventType)
	assert.Equal(t, int64(-500), outEntries[0].Change)
	assert.Equal(t, int64(500), inEntries[0].Change)
	assert.Equal(t, int64(0), outEntries[0].Change+inEntries[0].Change)
	assert.Equal(t, int64(1000), outEntries[0].BalanceAfter)
	assert.Equal(t, int64(1250), inEntries[0].BalanceAfter)
	require.NotNil(t, outEntries[0].TransferID)
	assert.Equal(t, result.ID, *outEntries[0].TransferID)
}

func TestCreate_Validation(t *testing.T) {
	longNote := strings.Repeat("x", 513)

	tests := []struct {
		name    string
		req     *models.CreateTransferRequest
		wantErr error
	}{
		{
			name:    "zero amount",
			req:     &models.CreateTransferRequest{FromUserID: 1, ToUserID: 2, Amount: 0},
			wantErr: domainerr.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			req:     &models.CreateTransferRequest{FromUserID: 1, ToUserID: 2, Amount: -5},
			wantErr: domainerr.ErrInvalidAmount,
		},
		{
			name:    "same user",
			req:     &models.CreateTransferRequest{FromUserID: 1, ToUserID: 1, Amount: 100},
			wantErr: domainerr.ErrSameUser,
		},
		{
			name:    "note too long",
			req:     &models.CreateTransferRequest{FromUserID: 1, ToUserID: 2, Amount: 100, Note: longNote},
			wantErr: domainerr.ErrNoteTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, transfers, ledgers, _ := newTestService(map[uint]int64{1: 1000, 2: 1000})
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, transfers.ordered)
			assert.Empty(t, ledgers.entries[1])
		})
	}
}

func TestCreate_UserNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(map[uint]int64{1: 1000})

	_, err := svc.Create(context.Background(), &models.CreateTransferRequest{
		FromUserID: 99, ToUserID: 1, Amount: 100,
	})
	assert.ErrorIs(t, err, domainerr.ErrUserNotFound)
	assert.Contains(t, err.Error(), "from user")

	_, err = svc.Create(context.Background(), &models.CreateTransferRequest{
		FromUserID: 1, ToUserID: 99, Amount: 100,
	})
	assert.ErrorIs(t, err, domainerr.ErrUserNotFound)
	assert.Contains(t, err.Error(), "to user")
}

func TestCreate_InsufficientPointsPreCheck(t *testing.T) {
	svc, transfers, ledgers, _ := newTestService(map[uint]int64{1: 100, 2: 0})

	_, err := svc.Create(context.Background(), &models.CreateTransferRequest{
		FromUserID: 1, ToUserID: 2, Amount: 500,
	})
	assert.ErrorIs(t, err, domainerr.ErrInsufficientPoints)

	// A pre-check rejection creates nothing at all.
	assert.Empty(t, transfers.ordered)
	assert.Empty(t, ledgers.entries[1])
	assert.Empty(t, ledgers.entries[2])
}

func TestCreate_RecheckRaceMarksFailed(t *testing.T) {
	svc, transfers, ledgers, _ := newTestService(map[uint]int64{1: 1000, 2: 0})
	// The pre-check passes but the authoritative re-check inside the ledger
	// store loses the race.
	ledgers.executeErr = domainerr.ErrInsufficientPoints

	result, err := svc.Create(context.Background(), &models.CreateTransferRequest{
		FromUserID: 1, ToUserID: 2, Amount: 500,
	})
	require.NoError(t, err)

	assert.Equal(t, models.TransferStatusFailed, result.Status)
	require.NotNil(t, result.FailReason)
	assert.Equal(t, domainerr.ErrInsufficientPoints.Message, *result.FailReason)
	assert.Nil(t, result.CompletedAt)

	// The record is persisted in its failed state; no points moved.
	stored := transfers.byKey[result.IdempotencyKey]
	require.NotNil(t, stored)
	assert.Equal(t, models.TransferStatusFailed, stored.Status)
	assert.Empty(t, ledgers.entries[1])
}

func TestCreate_StatusWriteFailureLeavesPending(t *testing.T) {
	svc, transfers, _, _ := newTestService(map[uint]int64{1: 1000, 2: 0})
	transfers.updateErr = errors.New("connection reset")

	_, err := svc.Create(context.Background(), &models.CreateTransferRequest{
		FromUserID: 1, ToUserID: 2, Amount: 500,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	require.Len(t, transfers.ordered, 1)
	assert.Equal(t, models.TransferStatusPending, transfers.ordered[0].Status)
}

func TestCreate_IdempotencyKeysUnique(t *testing.T) {
	svc, _, _, _ := newTestService(map[uint]int64{1: 1000, 2: 0})

	first, err := svc.Create(context.Background(), &models.CreateTransferRequest{
		FromUserID: 1, ToUserID: 2, Amount: 100,
	})
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), &models.CreateTransferRequest{
		FromUserID: 1, ToUserID: 2, Amount: 100,
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.IdempotencyKey, second.IdempotencyKey)
}

func TestCreate_SequentialDrainToZero(t *testing.T) {
	svc, _, ledgers, _ := newTestService(map[uint]int64{1: 600, 2: 0})

	for _, amount := range []int64{100, 200, 300} {
		result, err := svc.Create(context.Background(), &models.CreateTransferRequest{
			FromUserID: 1, ToUserID: 2, Amount: amount,
		})
		require.NoError(t, err)
		assert.Equal(t, models.TransferStatusCompleted, result.Status)
	}

	fromBalance, _ := ledgers.CurrentBalance(context.Background(), 1)
	toBalance, _ := ledgers.CurrentBalance(context.Background(), 2)
	assert.Equal(t, int64(0), fromBalance)
	assert.Equal(t, int64(600), toBalance)

	// The next transfer out has nothing left to move.
	_, err := svc.Create(context.Background(), &models.CreateTransferRequest{
		FromUserID: 1, ToUserID: 2, Amount: 1,
	})
	assert.ErrorIs(t, err, domainerr.ErrInsufficientPoints)
}

func TestGet(t *testing.T) {
	svc, _, _, _ := newTestService(map[uint]int64{1: 1000, 2: 0})

	created, err := svc.Create(context.Background(), &models.CreateTransferRequest{
		FromUserID: 1, ToUserID: 2, Amount: 250, Note: "lunch",
	})
	require.NoError(t, err)

	found, err := svc.Get(context.Background(), created.IdempotencyKey)
	require.NoError(t, err)
	assert.Equal(t, created.FromUserID, found.FromUserID)
	assert.Equal(t, created.ToUserID, found.ToUserID)
	assert.Equal(t, created.Amount, found.Amount)

	_, err = svc.Get(context.Background(), "no-such-key")
	assert.ErrorIs(t, err, domainerr.ErrTransferNotFound)
}

func TestList(t *testing.T) {
	svc, _, _, _ := newTestService(map[uint]int64{1: 10000, 2: 0})

	for i := 0; i < 25; i++ {
		_, err := svc.Create(context.Background(), &models.CreateTransferRequest{
			FromUserID: 1, ToUserID: 2, Amount: 10,
		})
		require.NoError(t, err)
	}

	result, err := svc.List(context.Background(), 1, 1, 20)
	require.NoError(t, err)
	assert.Len(t, result.Data, 20)
	assert.Equal(t, int64(25), result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.PageSize)

	result, err = svc.List(context.Background(), 1, 2, 20)
	require.NoError(t, err)
	assert.Len(t, result.Data, 5)
}

func TestList_PaginationBounds(t *testing.T) {
	svc, _, _, _ := newTestService(map[uint]int64{1: 1000})

	tests := []struct {
		name     string
		page     int
		pageSize int
		wantErr  error
	}{
		{"zero page", 0, 20, domainerr.ErrInvalidPage},
		{"zero page size", 1, 0, domainerr.ErrInvalidPageSize},
		{"page size over limit", 1, 201, domainerr.ErrInvalidPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.List(context.Background(), 1, tt.page, tt.pageSize)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestList_UnknownUser(t *testing.T) {
	svc, _, _, _ := newTestService(map[uint]int64{1: 1000})

	_, err := svc.List(context.Background(), 42, 1, 20)
	assert.ErrorIs(t, err, domainerr.ErrUserNotFound)
}
