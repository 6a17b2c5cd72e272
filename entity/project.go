package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusArchived  = "archived"
)

type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	TeamID      string             `bson:"team_id" json:"teamId"`
	Status      string             `bson:"status" json:"status"`
	CreatedBy   string             `bson:"created_by" json:"createdBy"`
	CreatedAt   time.Time          `bson:"created_at,omitempty" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at,omitempty" json:"updatedAt"`
}

func ValidProjectStatus(s string) bool {
	return s == ProjectStatusActive || s == ProjectStatusCompleted || s == ProjectStatusArchived
}
