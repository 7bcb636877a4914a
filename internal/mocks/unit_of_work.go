package mocks

import (
	"context"

	"flowx-relief/internal/repository"
)

// UnitOfWork runs the callback against mock repositories. Committed reports
// whether the last callback returned nil.
type UnitOfWork struct {
	Repos     repository.TxRepositories
	Calls     int
	Committed bool
}

func (u *UnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	u.Calls++
	err := fn(ctx, u.Repos)
	u.Committed = err == nil
	return err
}
