// Package storage defines the persistence interfaces the scanning engine
// relies on. It abstracts entity storage and transaction management so
// different backends (e.g. PostgreSQL) can provide concrete implementations.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import "context"

// AllStorage is a composite interface that includes all domain-specific
// storage capabilities required by the engine.
type AllStorage interface {
	ScanStorage
	FindingStorage
	CompanyStorage
	SubscriptionStorage
	JobStorage
}

// TxStorage is a storage handle bound to a database transaction. It exposes
// the same capabilities as AllStorage plus commit/rollback. Implementations
// become unusable after Commit or Rollback.
type TxStorage interface {
	AllStorage

	// Commit finalizes the transaction, persisting all changes.
	Commit() error
	// Rollback aborts the transaction, discarding all uncommitted changes.
	Rollback() error
}

// Storage is a non-transactional storage handle with the ability to start
// transactions and release underlying resources.
type Storage interface {
	AllStorage

	// Close releases resources held by the implementation (e.g. the
	// connection pool). After Close the instance must not be used.
	Close() error

	// Begin starts a new transaction.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx begins a transaction, invokes cb with a transactional handle,
	// commits on success and rolls back when cb returns an error.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}
