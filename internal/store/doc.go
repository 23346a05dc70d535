// Package store defines the persistence contracts for users, collections,
// and saved decks, plus the shared transaction helper. Services depend on
// these interfaces; the PostgreSQL implementations live in
// internal/platform/postgres.
package store
