// Package postgres implements store.UserStore and store.TaskStore on
// database/sql with the pgx driver, maps PostgreSQL error codes onto the
// store sentinels and runs the embedded goose migrations.
package postgres
