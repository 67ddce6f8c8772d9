package mocks

import (
	"context"

	"github.com/n0secutiry/taskapi/internal/store"
)

// MockTransactor implements store.Transactor without a database. The
// function runs with a nil *sql.Tx, which mock stores ignore in WithTx.
type MockTransactor struct {
	// Err, when set, is returned instead of running the function
	Err error

	Calls int
}

// Ensure MockTransactor implements store.Transactor interface
var _ store.Transactor = (*MockTransactor)(nil)

// RunInTransaction implements store.Transactor.
func (m *MockTransactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx, nil)
}
