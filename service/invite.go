package service

import (
	"context"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"workflowpro-backend/entity"
	"workflowpro-backend/errs"
	"workflowpro-backend/log"
)

type InviteService struct {
	c     *mongo.Collection
	teams *TeamService
}

func NewInviteService(client *mongo.Client, teams *TeamService) *InviteService {
	return &InviteService{
		c:     client.Database(Database).Collection("invites"),
		teams: teams,
	}
}

type CreateInviteData struct {
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
	Email    string `json:"email"`
}

// CreateInvite persists a pending invite with a fresh token. Sending the
// email is the mailer worker's job.
func (s *InviteService) CreateInvite(ctx context.Context, data CreateInviteData, inviter string) (*entity.Invite, error) {
	if data.TeamID == "" {
		return nil, errs.ErrTeamIDRequired
	}
	if _, err := mail.ParseAddress(data.Email); err != nil {
		return nil, errs.ErrEmailAddressFormat
	}

	invite := &entity.Invite{
		TeamID:    data.TeamID,
		TeamName:  data.TeamName,
		Email:     data.Email,
		Token:     uuid.NewString(),
		Status:    entity.InviteStatusPending,
		InvitedBy: inviter,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.c.InsertOne(ctx, invite)
	if err != nil {
		log.Logger.Error("failed inserting invite", zap.Error(err))
		return nil, errs.ErrDatabase
	}

	return invite, nil
}

// AcceptInvite adds the accepting user to the invited team and resolves the
// invite. Membership addition is a set union, so accepting while already a
// member only flips the invite status.
func (s *InviteService) AcceptInvite(ctx context.Context, token, userID string) error {
	invite := &entity.Invite{}
	err := s.c.FindOne(ctx, bson.M{"token": token}).Decode(invite)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return errs.ErrNotFound
		}

		log.Logger.Error("database error", zap.Error(err))
		return errs.ErrDatabase
	}

	if invite.Status != entity.InviteStatusPending {
		return errs.ErrInviteResolved
	}

	if err := s.teams.AddMember(ctx, invite.TeamID, userID); err != nil {
		return err
	}

	_, err = s.c.UpdateOne(ctx, bson.M{"token": token}, bson.M{"$set": bson.M{"status": entity.InviteStatusAccepted}})
	if err != nil {
		log.Logger.Error("database error", zap.Error(err))
		return errs.ErrDatabase
	}

	return nil
}
