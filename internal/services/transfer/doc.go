/*
Package transfer orchestrates point transfers between users.

A transfer runs through a fixed lifecycle: the request is validated, both
parties are resolved, the sender's balance is pre-checked, a pending record
is persisted, and the balance move is executed as one atomic ledger
operation. The record then transitions to completed or failed; both terminal
outcomes return the record to the caller so every attempt stays auditable.

Usage:

	svc := transfer.NewService(transferRepo, ledgerRepo, userRepo, cache, metrics)

	t, err := svc.Create(ctx, &models.CreateTransferRequest{
	    FromUserID: 1,
	    ToUserID:   2,
	    Amount:     500,
	})

	t, err = svc.Get(ctx, t.IdempotencyKey)

	res, err := svc.List(ctx, 1, 1, 20)

The pre-check is advisory only; the authoritative re-check happens inside the
ledger store's transaction. A transfer that passes the pre-check but loses a
race at the re-check is marked failed rather than rejected, so the caller
still receives the record.
*/
package transfer
