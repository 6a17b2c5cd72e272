package admin

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"workflowpro-backend/entity"
	"workflowpro-backend/jwt"
)

// GenerateToken mints an admin access token for operational use.
func GenerateToken(exp time.Time, key string) (string, error) {
	u := &entity.User{
		ID:      primitive.NewObjectID(),
		Name:    "admin",
		IsAdmin: true,
	}

	ss, err := jwt.NewAccessTokenWithExpiry(u, []byte(key), exp)
	if err != nil {
		fmt.Println("Signing failure:", err)
		return "", err
	}

	return ss, nil
}
