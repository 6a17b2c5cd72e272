package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	TaskStatusTodo = "todo"
)

// Task status must equal one of the owning board's column ids. This is not
// enforced on write: editing columns after tasks exist can orphan a task
// into a column id that no longer exists.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BoardID     string             `bson:"board_id" json:"boardId"`
	ProjectID   string             `bson:"project_id" json:"projectId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Status      string             `bson:"status" json:"status"`
	Priority    string             `bson:"priority" json:"priority"`
	AssignedTo  []string           `bson:"assigned_to" json:"assignedTo"`
	DueDate     *time.Time         `bson:"due_date,omitempty" json:"dueDate,omitempty"`
	Order       float64            `bson:"order" json:"order"`
	CreatedBy   string             `bson:"created_by" json:"createdBy"`
	CreatedAt   time.Time          `bson:"created_at,omitempty" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at,omitempty" json:"updatedAt"`
}

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
