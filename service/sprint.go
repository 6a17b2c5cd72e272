package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"workflowpro-backend/entity"
	"workflowpro-backend/errs"
	"workflowpro-backend/log"
)

type SprintService struct {
	c *mongo.Collection
}

func NewSprintService(client *mongo.Client) *SprintService {
	return &SprintService{
		c: client.Database(Database).Collection("sprints"),
	}
}

type CreateSprintData struct {
	ProjectID string   `json:"projectId"`
	Name      string   `json:"name"`
	Goals     []string `json:"goals"`
}

// CreateSprint inserts a sprint in planning state.
func (s *SprintService) CreateSprint(ctx context.Context, data CreateSprintData, actorID string) (string, error) {
	if data.Name == "" {
		return "", errs.ErrNameRequired
	}
	if data.ProjectID == "" {
		return "", errs.ErrProjectIDRequired
	}

	goals := data.Goals
	if goals == nil {
		goals = []string{}
	}

	res, err := s.c.InsertOne(ctx, &entity.Sprint{
		ProjectID: data.ProjectID,
		Name:      data.Name,
		Status:    entity.SprintStatusPlanning,
		Goals:     goals,
		CreatedBy: actorID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Logger.Error("failed inserting sprint", zap.Error(err))
		return "", errs.ErrDatabase
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// GetProjectSprints returns the project's sprints newest first.
func (s *SprintService) GetProjectSprints(ctx context.Context, projectID string) ([]entity.Sprint, error) {
	cursor, err := s.c.Find(ctx, bson.M{"project_id": projectID})
	if err != nil {
		log.Logger.Error("database error", zap.Error(err), zap.String("projectID", projectID))
		return nil, errs.ErrDatabase
	}
	defer cursor.Close(context.Background())

	sprints := []entity.Sprint{}
	for cursor.Next(ctx) {
		sp := entity.Sprint{}
		if err := cursor.Decode(&sp); err != nil {
			log.Logger.Error("decode error", zap.Error(err))
			return nil, errs.ErrDatabase
		}
		sprints = append(sprints, sp)
	}
	if err := cursor.Err(); err != nil {
		log.Logger.Error("cursor error", zap.Error(err))
		return nil, errs.ErrDatabase
	}

	sortSprintsNewestFirst(sprints)
	return sprints, nil
}

type SprintUpdate struct {
	Name   *string   `json:"name"`
	Goals  *[]string `json:"goals"`
	Status *string   `json:"status"`
}

func (u *SprintUpdate) set() (bson.M, error) {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Goals != nil {
		set["goals"] = *u.Goals
	}
	if u.Status != nil {
		if !entity.ValidSprintStatus(*u.Status) {
			return nil, errs.ErrInvalidStatus
		}
		set["status"] = *u.Status
	}
	return set, nil
}

func (s *SprintService) UpdateSprint(ctx context.Context, sprintID string, update *SprintUpdate) error {
	set, err := update.set()
	if err != nil {
		return err
	}

	return s.update(ctx, sprintID, set)
}

// StartSprint flips the sprint to active and stamps its start date.
func (s *SprintService) StartSprint(ctx context.Context, sprintID string) error {
	return s.update(ctx, sprintID, bson.M{
		"status":     entity.SprintStatusActive,
		"start_date": time.Now().UTC(),
	})
}

// CompleteSprint flips the sprint to completed and stamps its end date.
func (s *SprintService) CompleteSprint(ctx context.Context, sprintID string) error {
	return s.update(ctx, sprintID, bson.M{
		"status":   entity.SprintStatusCompleted,
		"end_date": time.Now().UTC(),
	})
}

func (s *SprintService) update(ctx context.Context, sprintID string, set bson.M) error {
	id, err := primitive.ObjectIDFromHex(sprintID)
	if err != nil {
		return errs.ErrInvalidID
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		log.Logger.Error("database error", zap.Error(err), zap.String("sprintID", sprintID))
		return errs.ErrDatabase
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (s *SprintService) DeleteSprint(ctx context.Context, sprintID string) error {
	id, err := primitive.ObjectIDFromHex(sprintID)
	if err != nil {
		return errs.ErrInvalidID
	}

	_, err = s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Logger.Error("database error", zap.Error(err), zap.String("sprintID", sprintID))
		return errs.ErrDatabase
	}

	return nil
}
