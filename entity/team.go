package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team membership is reference based: members hold user ids, and the owner
// is always one of the members.
type Team struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	OwnerID     string             `bson:"owner_id" json:"ownerId"`
	Members     []string           `bson:"members" json:"members"`
	CreatedAt   time.Time          `bson:"created_at,omitempty" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at,omitempty" json:"updatedAt"`
}
