// Package store defines the persistence contract for tasks. The interface
// abstracts the underlying key-value table from request handling, so the
// handler does not depend on DynamoDB, PostgreSQL or MongoDB specifics.
package store
