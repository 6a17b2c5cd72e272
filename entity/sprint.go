package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SprintStatusPlanning  = "planning"
	SprintStatusActive    = "active"
	SprintStatusCompleted = "completed"
)

type Sprint struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID string             `bson:"project_id" json:"projectId"`
	Name      string             `bson:"name" json:"name"`
	Status    string             `bson:"status" json:"status"`
	Goals     []string           `bson:"goals" json:"goals"`
	StartDate *time.Time         `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate   *time.Time         `bson:"end_date,omitempty" json:"endDate,omitempty"`
	CreatedBy string             `bson:"created_by" json:"createdBy"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"createdAt"`
}

func ValidSprintStatus(s string) bool {
	return s == SprintStatusPlanning || s == SprintStatusActive || s == SprintStatusCompleted
}
