// Package dynamo implements store.TaskStore on an Amazon DynamoDB table
// keyed by the string attribute task_id.
//
// Conditional writes use ConditionExpression and rejected conditions map to
// store.ErrConditionFailed. Scans page through LastEvaluatedKey so tables
// larger than one response page are read completely.
package dynamo
