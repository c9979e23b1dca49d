// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database. Tests using it skip unless DATABASE_URL or
// TODOS_TEST_DB_URL is set.
package testdb
