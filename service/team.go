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

type TeamService struct {
	c *mongo.Collection
}

func NewTeamService(client *mongo.Client) *TeamService {
	return &TeamService{
		c: client.Database(Database).Collection("teams"),
	}
}

type CreateTeamData struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateTeam inserts a new team owned by the actor. The actor is always the
// first member.
func (s *TeamService) CreateTeam(ctx context.Context, data CreateTeamData, actorID string) (string, error) {
	if data.Name == "" {
		return "", errs.ErrNameRequired
	}

	now := time.Now().UTC()
	res, err := s.c.InsertOne(ctx, &entity.Team{
		Name:        data.Name,
		Description: data.Description,
		OwnerID:     actorID,
		Members:     []string{actorID},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		log.Logger.Error("failed inserting team", zap.Error(err))
		return "", errs.ErrDatabase
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// GetUserTeams returns every team the user is a member of, newest first.
func (s *TeamService) GetUserTeams(ctx context.Context, userID string) ([]entity.Team, error) {
	cursor, err := s.c.Find(ctx, bson.M{"members": userID})
	if err != nil {
		log.Logger.Error("database error", zap.Error(err), zap.String("userID", userID))
		return nil, errs.ErrDatabase
	}
	defer cursor.Close(context.Background())

	teams := []entity.Team{}
	for cursor.Next(ctx) {
		t := entity.Team{}
		if err := cursor.Decode(&t); err != nil {
			log.Logger.Error("decode error", zap.Error(err))
			return nil, errs.ErrDatabase
		}
		teams = append(teams, t)
	}
	if err := cursor.Err(); err != nil {
		log.Logger.Error("cursor error", zap.Error(err))
		return nil, errs.ErrDatabase
	}

	sortTeamsNewestFirst(teams)
	return teams, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID string) (*entity.Team, error) {
	id, err := primitive.ObjectIDFromHex(teamID)
	if err != nil {
		return nil, errs.ErrInvalidID
	}

	t := &entity.Team{}
	err = s.c.FindOne(ctx, bson.M{"_id": id}).Decode(t)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.ErrNotFound
		}

		log.Logger.Error("database error", zap.Error(err), zap.String("teamID", teamID))
		return nil, errs.ErrDatabase
	}

	return t, nil
}

type TeamUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (u *TeamUpdate) set() bson.M {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	return set
}

// UpdateTeam merges the set fields into the team and stamps updated_at.
func (s *TeamService) UpdateTeam(ctx context.Context, teamID string, update *TeamUpdate) error {
	id, err := primitive.ObjectIDFromHex(teamID)
	if err != nil {
		return errs.ErrInvalidID
	}

	set := update.set()
	set["updated_at"] = time.Now().UTC()

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		log.Logger.Error("database error", zap.Error(err), zap.String("teamID", teamID))
		return errs.ErrDatabase
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

// AddMember is idempotent: adding an already-present member is a no-op.
func (s *TeamService) AddMember(ctx context.Context, teamID, userID string) error {
	return s.memberOp(ctx, teamID, bson.M{"$addToSet": bson.M{"members": userID}})
}

// RemoveMember is idempotent: removing an absent member is a no-op.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID string) error {
	return s.memberOp(ctx, teamID, bson.M{"$pull": bson.M{"members": userID}})
}

func (s *TeamService) memberOp(ctx context.Context, teamID string, op bson.M) error {
	id, err := primitive.ObjectIDFromHex(teamID)
	if err != nil {
		return errs.ErrInvalidID
	}

	op["$set"] = bson.M{"updated_at": time.Now().UTC()}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, op)
	if err != nil {
		log.Logger.Error("database error", zap.Error(err), zap.String("teamID", teamID))
		return errs.ErrDatabase
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

// DeleteTeam removes the team document only. Projects referencing the team
// are left in place.
func (s *TeamService) DeleteTeam(ctx context.Context, teamID string) error {
	id, err := primitive.ObjectIDFromHex(teamID)
	if err != nil {
		return errs.ErrInvalidID
	}

	_, err = s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Logger.Error("database error", zap.Error(err), zap.String("teamID", teamID))
		return errs.ErrDatabase
	}

	return nil
}
