// Package service contains the task list use cases. It orchestrates the
// domain Task and the store.TaskStore contract to implement list, get,
// create, update and delete, and owns task ID allocation.
//
// The service depends on store interfaces only, never on a specific backend.
package service
