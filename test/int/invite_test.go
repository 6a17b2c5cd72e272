package int

import (
	"context"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"workflowpro-backend/entity"
	"workflowpro-backend/errs"
)

var _ = Describe("Invite", func() {
	var owner User
	var joiner User
	var teamID string

	// The email leg goes through the queue; accepting only needs the stored
	// invite, so the document is seeded directly.
	seedInvite := func(token string) {
		m, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
		Expect(err).To(BeNil())
		defer m.Disconnect(context.Background())

		_, err = m.Database("workflowpro").Collection("invites").InsertOne(context.Background(), &entity.Invite{
			TeamID:    teamID,
			TeamName:  "Eng",
			Email:     "test1@test.test",
			Token:     token,
			Status:    entity.InviteStatusPending,
			InvitedBy: owner.UID,
			CreatedAt: time.Now().UTC(),
		})
		Expect(err).To(BeNil())
	}

	teamMembers := func() []string {
		team := entity.Team{}
		owner.GetInto("/api/teams/"+teamID, &team)
		return team.Members
	}

	inviteStatus := func(token string) string {
		m, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
		Expect(err).To(BeNil())
		defer m.Disconnect(context.Background())

		invite := entity.Invite{}
		Expect(m.Database("workflowpro").Collection("invites").
			FindOne(context.Background(), bson.M{"token": token}).
			Decode(&invite)).To(BeNil())
		return invite.Status
	}

	BeforeEach(func() {
		cleanupMongo()
		owner = signupUser(0)
		joiner = signupUser(1)

		res := struct {
			ID string `json:"id"`
		}{}
		resp := owner.Do(http.MethodPost, "/api/teams", map[string]string{"name": "Eng"})
		decodeInto(resp, &res)
		resp.Body.Close()
		teamID = res.ID
	})

	Describe("Create Invite", func() {
		Specify("sad path - bad email format", func() {
			resp := owner.Do(http.MethodPost, "/api/invites", map[string]string{
				"teamId":   teamID,
				"teamName": "Eng",
				"email":    "not-an-email",
			})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(apiError(resp)).To(MatchBackendError(errs.ErrEmailAddressFormat))
		})

		Specify("sad path - missing teamId", func() {
			resp := owner.Do(http.MethodPost, "/api/invites", map[string]string{
				"teamName": "Eng",
				"email":    "test1@test.test",
			})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(apiError(resp)).To(MatchBackendError(errs.ErrTeamIDRequired))
		})
	})

	Describe("Accept Invite", func() {
		Specify("accept joins the team and resolves the invite exactly once", func() {
			seedInvite("tok-1")

			resp := joiner.Do(http.MethodPost, "/api/invites/tok-1/accept", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			resp.Body.Close()

			Expect(teamMembers()).To(Equal([]string{owner.UID, joiner.UID}))
			Expect(inviteStatus("tok-1")).To(Equal(entity.InviteStatusAccepted))

			resp = joiner.Do(http.MethodPost, "/api/invites/tok-1/accept", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusConflict))
			Expect(apiError(resp)).To(MatchBackendError(errs.ErrInviteResolved))

			Expect(teamMembers()).To(Equal([]string{owner.UID, joiner.UID}))
		})

		Specify("accepting while already a member only flips the status", func() {
			seedInvite("tok-2")

			resp := owner.Do(http.MethodPost, "/api/teams/"+teamID+"/members/"+joiner.UID, nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
			resp.Body.Close()

			resp = joiner.Do(http.MethodPost, "/api/invites/tok-2/accept", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			resp.Body.Close()

			Expect(teamMembers()).To(Equal([]string{owner.UID, joiner.UID}))
			Expect(inviteStatus("tok-2")).To(Equal(entity.InviteStatusAccepted))
		})

		Specify("sad path - unknown token", func() {
			resp := joiner.Do(http.MethodPost, "/api/invites/no-such-token/accept", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
			Expect(apiError(resp)).To(MatchBackendError(errs.ErrNotFound))
		})
	})
})
