// Package store declares the persistence contracts for users and tasks, the
// transaction helper every write goes through, and the sentinel errors that
// implementations return. Concrete stores live in internal/platform/postgres.
package store
