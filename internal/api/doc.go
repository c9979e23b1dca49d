// Package api maps incoming requests onto task operations.
//
// Every request is identified by its route key, "<METHOD> <resource>", where
// resource is the route template rather than the concrete path. Five keys
// are supported:
//
//	GET    /todos
//	POST   /todos
//	GET    /todos/{task_id}
//	PUT    /todos/{task_id}
//	DELETE /todos/{task_id}
//
// Anything else receives 400 {"Message":"Unsupported route"}. Failures of a
// supported operation receive 400 {"Error:": "<message>"}. All responses are
// JSON and carry a permissive CORS header.
//
// TaskHandler.Handle is transport-neutral. HandleAPIGateway adapts API
// Gateway proxy events for AWS Lambda, and NewRouter serves the same handler
// over HTTP with chi.
package api
