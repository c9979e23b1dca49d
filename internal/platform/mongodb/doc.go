// Package mongodb implements store.TaskStore on a MongoDB collection. The
// task_id is stored as the document _id, so the primary index enforces
// uniqueness and PutIfAbsent is a plain insert.
package mongodb
