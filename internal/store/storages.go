package store

import (
	"context"

	"github.com/MKhiriev/go-contact-keeper/internal/logger"
)

// Storages is the storage facade handed to the service layer.
type Storages struct {
	*Repositories
	Transactor Transactor

	db *DB
}

// NewStorages binds the repositories and the transactor to db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	log.Debug().Str("dialect", db.dialect.name).Msg("creating storages")
	return &Storages{
		Repositories: newRepositories(db.conn()),
		Transactor:   &sqlTransactor{db: db},
		db:           db,
	}
}

// Ping checks that the database is reachable.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Storages) Close() error {
	return s.db.Close()
}
