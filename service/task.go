package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"workflowpro-backend/entity"
	"workflowpro-backend/errs"
	"workflowpro-backend/log"
)

type TaskService struct {
	c *mongo.Collection
}

func NewTaskService(client *mongo.Client) *TaskService {
	return &TaskService{
		c: client.Database(Database).Collection("tasks"),
	}
}

type CreateTaskData struct {
	BoardID     string     `json:"boardId"`
	ProjectID   string     `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssignedTo  []string   `json:"assignedTo"`
	DueDate     *time.Time `json:"dueDate"`
	Order       float64    `json:"order"`
}

// CreateTask inserts a task, defaulting status to "todo" and priority to
// "medium". The status is not checked against the board's columns.
func (s *TaskService) CreateTask(ctx context.Context, data CreateTaskData, actorID string) (string, error) {
	if data.Title == "" {
		return "", errs.ErrTitleRequired
	}
	if data.BoardID == "" {
		return "", errs.ErrBoardIDRequired
	}

	status := data.Status
	if status == "" {
		status = entity.TaskStatusTodo
	}

	priority := data.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if !entity.ValidPriority(priority) {
		return "", errs.ErrInvalidPriority
	}

	assignedTo := data.AssignedTo
	if assignedTo == nil {
		assignedTo = []string{}
	}

	now := time.Now().UTC()
	res, err := s.c.InsertOne(ctx, &entity.Task{
		BoardID:     data.BoardID,
		ProjectID:   data.ProjectID,
		Title:       data.Title,
		Description: data.Description,
		Status:      status,
		Priority:    priority,
		AssignedTo:  assignedTo,
		DueDate:     data.DueDate,
		Order:       data.Order,
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		log.Logger.Error("failed inserting task", zap.Error(err))
		return "", errs.ErrDatabase
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// GetBoardTasks returns the board's tasks sorted ascending by order,
// regardless of the order the store returns them in.
func (s *TaskService) GetBoardTasks(ctx context.Context, boardID string) ([]entity.Task, error) {
	cursor, err := s.c.Find(ctx, bson.M{"board_id": boardID})
	if err != nil {
		log.Logger.Error("database error", zap.Error(err), zap.String("boardID", boardID))
		return nil, errs.ErrDatabase
	}
	defer cursor.Close(context.Background())

	tasks := []entity.Task{}
	for cursor.Next(ctx) {
		t := entity.Task{}
		if err := cursor.Decode(&t); err != nil {
			log.Logger.Error("decode error", zap.Error(err))
			return nil, errs.ErrDatabase
		}
		tasks = append(tasks, t)
	}
	if err := cursor.Err(); err != nil {
		log.Logger.Error("cursor error", zap.Error(err))
		return nil, errs.ErrDatabase
	}

	sortTasksByOrder(tasks)
	return tasks, nil
}

type TaskUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Order       *float64   `json:"order"`
}

func (u *TaskUpdate) set() (bson.M, error) {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Status != nil {
		// Intentionally not validated against the board's columns; the
		// column set is dynamic and a stale client may still move tasks.
		set["status"] = *u.Status
	}
	if u.Priority != nil {
		if !entity.ValidPriority(*u.Priority) {
			return nil, errs.ErrInvalidPriority
		}
		set["priority"] = *u.Priority
	}
	if u.DueDate != nil {
		set["due_date"] = *u.DueDate
	}
	if u.Order != nil {
		set["order"] = *u.Order
	}
	return set, nil
}

// UpdateTask merges the set fields into the task and stamps updated_at.
// Last write wins; there is no version guard.
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, update *TaskUpdate) error {
	id, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return errs.ErrInvalidID
	}

	set, err := update.set()
	if err != nil {
		return err
	}
	set["updated_at"] = time.Now().UTC()

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		log.Logger.Error("database error", zap.Error(err), zap.String("taskID", taskID))
		return errs.ErrDatabase
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

// AssignUser adds the user to the task's assignee set. Re-assigning an
// already-present user is a no-op.
func (s *TaskService) AssignUser(ctx context.Context, taskID, userID string) error {
	return s.assigneeOp(ctx, taskID, bson.M{"$addToSet": bson.M{"assigned_to": userID}})
}

// UnassignUser removes the user from the task's assignee set. Removing an
// absent user is a no-op.
func (s *TaskService) UnassignUser(ctx context.Context, taskID, userID string) error {
	return s.assigneeOp(ctx, taskID, bson.M{"$pull": bson.M{"assigned_to": userID}})
}

func (s *TaskService) assigneeOp(ctx context.Context, taskID string, op bson.M) error {
	id, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return errs.ErrInvalidID
	}

	op["$set"] = bson.M{"updated_at": time.Now().UTC()}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, op)
	if err != nil {
		log.Logger.Error("database error", zap.Error(err), zap.String("taskID", taskID))
		return errs.ErrDatabase
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	id, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return errs.ErrInvalidID
	}

	_, err = s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Logger.Error("database error", zap.Error(err), zap.String("taskID", taskID))
		return errs.ErrDatabase
	}

	return nil
}

// TaskSubscription is the handle for a live task feed. Close must be called
// when the consumer goes away, or the change stream leaks for the lifetime
// of the process.
type TaskSubscription struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Close stops delivery and releases the change stream. It blocks until the
// last callback has returned; no callback is invoked after Close returns.
func (s *TaskSubscription) Close() {
	s.cancel()
	<-s.done
}

// Done is closed once delivery has stopped, whether by Close or by a stream
// error.
func (s *TaskSubscription) Done() <-chan struct{} {
	return s.done
}

// SubscribeToTasks delivers the board's full task set, sorted by order, once
// immediately and again after every store-side change to the board's tasks.
// Delete events carry no document and cannot be filtered by board, so they
// all trigger a re-query.
func (s *TaskService) SubscribeToTasks(ctx context.Context, boardID string, fn func([]entity.Task)) (*TaskSubscription, error) {
	ctx, cancel := context.WithCancel(ctx)

	pipeline := mongo.Pipeline{bson.D{{Key: "$match", Value: bson.M{"$or": bson.A{
		bson.M{"fullDocument.board_id": boardID},
		bson.M{"operationType": "delete"},
	}}}}}

	cs, err := s.c.Watch(ctx, pipeline, options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		cancel()
		log.Logger.Error("failed to watch tasks", zap.Error(err), zap.String("boardID", boardID))
		return nil, errs.ErrDatabase
	}

	sub := &TaskSubscription{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(sub.done)
		defer cs.Close(context.Background())

		// Initial snapshot is fetched after the stream is open so no change
		// falls between the two.
		tasks, err := s.GetBoardTasks(ctx, boardID)
		if err != nil {
			if ctx.Err() == nil {
				log.Logger.Error("initial snapshot failed", zap.String("boardID", boardID))
			}
			return
		}
		fn(tasks)

		for cs.Next(ctx) {
			tasks, err := s.GetBoardTasks(ctx, boardID)
			if err != nil {
				if ctx.Err() == nil {
					log.Logger.Error("snapshot refresh failed", zap.String("boardID", boardID))
				}
				return
			}
			fn(tasks)
		}
		if err := cs.Err(); err != nil && ctx.Err() == nil {
			log.Logger.Error("change stream error", zap.Error(err), zap.String("boardID", boardID))
		}
	}()

	return sub, nil
}
