package service

import (
	"context"
	"os"
	"sync"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"workflowpro-backend/entity"
)

var _ = Describe("TaskSubscription", func() {
	var client *mongo.Client
	var tasks *TaskService

	BeforeEach(func() {
		uri := "mongodb://localhost:27017/?replicaSet=rs0"
		if v, ok := os.LookupEnv("TEST_MONGO_URI"); ok {
			uri = v
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		var err error
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err == nil {
			err = client.Ping(ctx, nil)
		}
		if err != nil {
			Skip("mongodb replica set not reachable: " + err.Error())
		}

		_, err = client.Database(Database).Collection("tasks").DeleteMany(context.Background(), bson.M{})
		Expect(err).To(BeNil())

		tasks = NewTaskService(client)
	})

	AfterEach(func() {
		if client != nil {
			client.Disconnect(context.Background())
		}
	})

	Specify("no delivery after Close", func() {
		var mu sync.Mutex
		delivered := 0

		sub, err := tasks.SubscribeToTasks(context.Background(), "board-1", func([]entity.Task) {
			mu.Lock()
			delivered++
			mu.Unlock()
		})
		Expect(err).To(BeNil())

		snapshots := func() int {
			mu.Lock()
			defer mu.Unlock()
			return delivered
		}

		// Initial snapshot, then tear down before mutating.
		Eventually(snapshots, 5*time.Second).Should(Equal(1))

		sub.Close()
		Expect(sub.Done()).To(BeClosed())

		_, err = tasks.CreateTask(context.Background(), CreateTaskData{BoardID: "board-1", Title: "late"}, "u1")
		Expect(err).To(BeNil())

		Consistently(snapshots, time.Second).Should(Equal(1))
	})
})
