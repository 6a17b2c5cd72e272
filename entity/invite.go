package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
)

type Invite struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TeamID    string             `bson:"team_id" json:"teamId"`
	TeamName  string             `bson:"team_name" json:"teamName"`
	Email     string             `bson:"email" json:"email"`
	Token     string             `bson:"token" json:"token"`
	Status    string             `bson:"status" json:"status"`
	InvitedBy string             `bson:"invited_by" json:"invitedBy"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"createdAt"`
}
