package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/collabrate/collabrate/core"
)

// Store wraps a DB handle and runs work inside a single transaction.
type Store struct {
	db core.DB
}

func NewStore(db core.DB) *Store {
	return &Store{db: db}
}

// Atomic runs fn inside one transaction; fn receives the transaction as the
// executor to pass down to repositories. The transaction is rolled back on
// any error.
func (s *Store) Atomic(ctx context.Context, fn func(exec core.DBExecutor) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Wrapf(err, "rolling back: %v", rbErr)
		}
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}
