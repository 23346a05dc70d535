// Package domain contains the core business entities, value objects, and
// domain logic of the application: card records, owned pools, the
// allowed-card boundary, theme intents, and built/validated decks. It
// represents the heart of the system, independent of any specific
// infrastructure or delivery mechanism. Everything here is immutable once
// constructed and free of I/O.
package domain
