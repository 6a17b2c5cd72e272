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

type ProjectService struct {
	c      *mongo.Collection
	cTeams *mongo.Collection
}

func NewProjectService(client *mongo.Client) *ProjectService {
	return &ProjectService{
		c:      client.Database(Database).Collection("projects"),
		cTeams: client.Database(Database).Collection("teams"),
	}
}

type CreateProjectData struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TeamID      string `json:"teamId"`
}

// CreateProject inserts a new active project. The team reference is checked
// at creation time only; it is never re-validated afterwards.
func (s *ProjectService) CreateProject(ctx context.Context, data CreateProjectData, actorID string) (string, error) {
	if data.Name == "" {
		return "", errs.ErrNameRequired
	}
	if data.TeamID == "" {
		return "", errs.ErrTeamIDRequired
	}

	teamID, err := primitive.ObjectIDFromHex(data.TeamID)
	if err != nil {
		return "", errs.ErrInvalidID
	}
	err = s.cTeams.FindOne(ctx, bson.M{"_id": teamID}).Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", errs.ErrNotFound
		}

		log.Logger.Error("database error", zap.Error(err), zap.String("teamID", data.TeamID))
		return "", errs.ErrDatabase
	}

	now := time.Now().UTC()
	res, err := s.c.InsertOne(ctx, &entity.Project{
		Name:        data.Name,
		Description: data.Description,
		TeamID:      data.TeamID,
		Status:      entity.ProjectStatusActive,
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		log.Logger.Error("failed inserting project", zap.Error(err))
		return "", errs.ErrDatabase
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// GetTeamProjects returns the team's projects newest first. A deleted team
// still yields its orphaned projects.
func (s *ProjectService) GetTeamProjects(ctx context.Context, teamID string) ([]entity.Project, error) {
	return s.find(ctx, bson.M{"team_id": teamID})
}

// GetUserProjects returns the projects the user created, newest first.
func (s *ProjectService) GetUserProjects(ctx context.Context, userID string) ([]entity.Project, error) {
	return s.find(ctx, bson.M{"created_by": userID})
}

func (s *ProjectService) find(ctx context.Context, filter bson.M) ([]entity.Project, error) {
	cursor, err := s.c.Find(ctx, filter)
	if err != nil {
		log.Logger.Error("database error", zap.Error(err))
		return nil, errs.ErrDatabase
	}
	defer cursor.Close(context.Background())

	projects := []entity.Project{}
	for cursor.Next(ctx) {
		p := entity.Project{}
		if err := cursor.Decode(&p); err != nil {
			log.Logger.Error("decode error", zap.Error(err))
			return nil, errs.ErrDatabase
		}
		projects = append(projects, p)
	}
	if err := cursor.Err(); err != nil {
		log.Logger.Error("cursor error", zap.Error(err))
		return nil, errs.ErrDatabase
	}

	sortProjectsNewestFirst(projects)
	return projects, nil
}

type ProjectUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (u *ProjectUpdate) set() (bson.M, error) {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Status != nil {
		if !entity.ValidProjectStatus(*u.Status) {
			return nil, errs.ErrInvalidStatus
		}
		set["status"] = *u.Status
	}
	return set, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, projectID string, update *ProjectUpdate) error {
	id, err := primitive.ObjectIDFromHex(projectID)
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
		log.Logger.Error("database error", zap.Error(err), zap.String("projectID", projectID))
		return errs.ErrDatabase
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

// DeleteProject removes the project document only; boards and tasks
// referencing it remain.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID string) error {
	id, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return errs.ErrInvalidID
	}

	_, err = s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Logger.Error("database error", zap.Error(err), zap.String("projectID", projectID))
		return errs.ErrDatabase
	}

	return nil
}
