package int

import (
	"context"

	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func cleanupMongo() {
	m, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	Expect(err).To(BeNil())
	db := m.Database("workflowpro")

	collections := []string{"users", "teams", "projects", "boards", "tasks", "sprints", "invites"}
	for _, v := range collections {
		_, err := db.Collection(v).DeleteMany(context.Background(), bson.M{})
		Expect(err).To(BeNil())
	}
}
