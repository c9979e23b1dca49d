package api

import "fmt"

// Resource templates and path parameters as they appear in route keys.
const (
	TodosResource = "/todos"
	TaskResource  = "/todos/{task_id}"
	TaskIDParam   = "task_id"
)

// Route is the closed set of operations the handler dispatches to.
type Route int

const (
	RouteUnsupported Route = iota
	RouteListTasks
	RouteGetTask
	RouteDeleteTask
	RouteCreateTask
	RouteUpdateTask
)

var routeNames = map[Route]string{
	RouteUnsupported: "unsupported",
	RouteListTasks:   "list_tasks",
	RouteGetTask:     "get_task",
	RouteDeleteTask:  "delete_task",
	RouteCreateTask:  "create_task",
	RouteUpdateTask:  "update_task",
}

func (r Route) String() string {
	if name, ok := routeNames[r]; ok {
		return name
	}
	return fmt.Sprintf("route(%d)", int(r))
}

// RouteKey joins a method and resource template, e.g. "GET /todos/{task_id}".
func RouteKey(method, resource string) string {
	return method + " " + resource
}

// ParseRoute resolves a method and resource template to a Route. Anything
// outside the five task routes is RouteUnsupported.
func ParseRoute(method, resource string) Route {
	switch RouteKey(method, resource) {
	case "GET " + TodosResource:
		return RouteListTasks
	case "GET " + TaskResource:
		return RouteGetTask
	case "DELETE " + TaskResource:
		return RouteDeleteTask
	case "POST " + TodosResource:
		return RouteCreateTask
	case "PUT " + TaskResource:
		return RouteUpdateTask
	default:
		return RouteUnsupported
	}
}

// NeedsTaskID reports whether the route addresses a single task by path.
func (r Route) NeedsTaskID() bool {
	switch r {
	case RouteGetTask, RouteDeleteTask, RouteUpdateTask:
		return true
	default:
		return false
	}
}
