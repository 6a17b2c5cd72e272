package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Column partitions a board's tasks by status. Order defines display
// sequence and is not necessarily contiguous.
type Column struct {
	ID    string `bson:"id" json:"id"`
	Title string `bson:"title" json:"title"`
	Order int    `bson:"order" json:"order"`
}

type Board struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID string             `bson:"project_id" json:"projectId"`
	Name      string             `bson:"name" json:"name"`
	Columns   []Column           `bson:"columns" json:"columns"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"createdAt"`
}

// DefaultColumns is the three-column layout boards get when none is
// configured.
func DefaultColumns() []Column {
	return []Column{
		{ID: "todo", Title: "To Do", Order: 1},
		{ID: "in-progress", Title: "In Progress", Order: 2},
		{ID: "done", Title: "Done", Order: 3},
	}
}
