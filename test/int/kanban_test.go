package int

import (
	"net/http"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"workflowpro-backend/entity"
	"workflowpro-backend/errs"
)

var _ = Describe("Kanban", func() {
	var user1 User
	var teamID, projectID string

	createProject := func() {
		res := struct {
			ID string `json:"id"`
		}{}
		resp := user1.Do(http.MethodPost, "/api/teams", map[string]string{"name": "Eng"})
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))
		decodeInto(resp, &res)
		resp.Body.Close()
		teamID = res.ID

		resp = user1.Do(http.MethodPost, "/api/projects", map[string]string{"name": "Site", "teamId": teamID})
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))
		decodeInto(resp, &res)
		resp.Body.Close()
		projectID = res.ID
	}

	BeforeEach(func() {
		cleanupMongo()
		user1 = signupUser(0)
		createProject()
	})

	Describe("Project", func() {
		Specify("new projects start active", func() {
			projects := []entity.Project{}
			user1.GetInto("/api/projects", &projects)

			Expect(projects).To(HaveLen(1))
			Expect(projects[0].Status).To(Equal("active"))
			Expect(projects[0].CreatedBy).To(Equal(user1.UID))
		})

		Specify("sad path - project needs an existing team", func() {
			resp := user1.Do(http.MethodPost, "/api/projects", map[string]string{
				"name":   "Nowhere",
				"teamId": "000000000000000000000000",
			})
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
			Expect(apiError(resp)).To(MatchBackendError(errs.ErrNotFound))
		})
	})

	Describe("Board", func() {
		Specify("board without columns gets the default three", func() {
			board := entity.Board{}
			resp := user1.Do(http.MethodPost, "/api/projects/"+projectID+"/boards", map[string]string{})
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))
			decodeInto(resp, &board)
			resp.Body.Close()

			Expect(board.Name).To(Equal("Main Board"))
			Expect(board.Columns).To(HaveLen(3))
			Expect(board.Columns[0].ID).To(Equal("todo"))
			Expect(board.Columns[1].ID).To(Equal("in-progress"))
			Expect(board.Columns[2].ID).To(Equal("done"))
		})

		Specify("sad path - duplicate column ids rejected", func() {
			board := entity.Board{}
			resp := user1.Do(http.MethodPost, "/api/projects/"+projectID+"/boards", map[string]string{})
			decodeInto(resp, &board)
			resp.Body.Close()

			resp = user1.Do(http.MethodPut, "/api/boards/"+board.ID.Hex()+"/columns", map[string]interface{}{
				"columns": []entity.Column{
					{ID: "todo", Title: "To Do", Order: 1},
					{ID: "todo", Title: "Twice", Order: 2},
				},
			})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(apiError(resp)).To(MatchBackendError(errs.ErrDuplicateColumn))
		})
	})

	Describe("Sprint", func() {
		var sprintID string

		BeforeEach(func() {
			res := struct {
				ID string `json:"id"`
			}{}
			resp := user1.Do(http.MethodPost, "/api/sprints", map[string]interface{}{
				"projectId": projectID,
				"name":      "Sprint 1",
			})
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))
			decodeInto(resp, &res)
			resp.Body.Close()
			sprintID = res.ID
		})

		Specify("new sprints are planning with empty goals", func() {
			sprints := []entity.Sprint{}
			user1.GetInto("/api/projects/"+projectID+"/sprints", &sprints)

			Expect(sprints).To(HaveLen(1))
			Expect(sprints[0].Status).To(Equal("planning"))
			Expect(sprints[0].Goals).To(Equal([]string{}))
			Expect(sprints[0].StartDate).To(BeNil())
		})

		Specify("start then complete stamps the dates", func() {
			resp := user1.Do(http.MethodPost, "/api/sprints/"+sprintID+"/start", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
			resp.Body.Close()

			resp = user1.Do(http.MethodPost, "/api/sprints/"+sprintID+"/complete", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
			resp.Body.Close()

			sprints := []entity.Sprint{}
			user1.GetInto("/api/projects/"+projectID+"/sprints", &sprints)

			Expect(sprints[0].Status).To(Equal("completed"))
			Expect(sprints[0].StartDate).NotTo(BeNil())
			Expect(sprints[0].EndDate).NotTo(BeNil())
		})
	})
})
