package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-contact-keeper/internal/logger"
)

type sqlTransactor struct {
	db *DB
}

// InTx implements [Transactor].
func (t *sqlTransactor) InTx(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) (err error) {
	log := logger.FromContext(ctx)

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "sqlTransactor.InTx").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	repos := newRepositories(newConn(tx, t.db.dialect, t.db.errorClassificator))

	if fnErr := fn(ctx, repos); fnErr != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Err(rbErr).Str("func", "sqlTransactor.InTx").Msg("failed to roll back transaction")
			return errors.Join(fnErr, rbErr)
		}
		return fnErr
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).Str("func", "sqlTransactor.InTx").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}
