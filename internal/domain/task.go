package domain

import "fmt"

var ErrEmptyTaskName = fmt.Errorf("%w: name cannot be empty", ErrValidation)

// Task is a named to-do record. Names are unique across all tasks and tasks
// have no owner.
type Task struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Content string `json:"task"`
}

// NewTask builds an unsaved Task. The ID is assigned by the store on insert.
func NewTask(name, content string) (*Task, error) {
	t := &Task{Name: name, Content: content}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks that the task is named. Content is free text and may be
// empty.
func (t *Task) Validate() error {
	if t.Name == "" {
		return ErrEmptyTaskName
	}
	return nil
}

// ValidateID rejects non-positive identifiers before they reach the store.
func ValidateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	return nil
}
