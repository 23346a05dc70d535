// Package postgres implements the persistence interfaces from internal/store
// on PostgreSQL: user accounts, each user's card collection (stored as a
// JSONB quantity map), and saved decks. It owns the SQL, the row mapping,
// and the translation of driver errors into store error types.
package postgres
