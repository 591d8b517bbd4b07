package store

import "github.com/ltcdata/insurance-api/internal/logger"

// Storages bundles every repository backed by the warehouse database.
type Storages struct {
	UserRepository    UserRepository
	DatasetRepository DatasetRepository
}

// NewStorages wires all repositories to the shared database connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		DatasetRepository: NewDatasetRepository(db, log),
	}
}
