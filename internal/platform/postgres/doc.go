// Package postgres provides a PostgreSQL implementation of store.TaskStore
// and the goose migrations that create its schema. Connections go through
// database/sql with the pgx stdlib driver.
package postgres
