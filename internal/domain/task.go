package domain

// StatusPending is the status every newly created task starts with.
const StatusPending = "Pending"

// Task is a single entry in the task list. Status is free text: it starts as
// StatusPending and is otherwise whatever the caller last wrote.
type Task struct {
	TaskID      string `json:"task_id"     dynamodbav:"task_id"     bson:"_id"`
	Title       string `json:"title"       dynamodbav:"title"       bson:"title"`
	Description string `json:"description" dynamodbav:"description" bson:"description"`
	Status      string `json:"status"      dynamodbav:"status"      bson:"status"`
}

// NewTask builds a pending task with the given identity and content.
func NewTask(taskID, title, description string) (*Task, error) {
	task := &Task{
		TaskID:      taskID,
		Title:       title,
		Description: description,
		Status:      StatusPending,
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks that the task can be stored. Title, description and status
// may be empty strings but are always present on a typed Task.
func (t *Task) Validate() error {
	if t.TaskID == "" {
		return ErrEmptyTaskID
	}
	return nil
}
