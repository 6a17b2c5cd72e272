package int

import (
	"encoding/json"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/gorilla/websocket"
	"workflowpro-backend/entity"
	"workflowpro-backend/errs"
)

var _ = Describe("Task", func() {
	var user1 User
	var user2 User
	var boardID string

	createTask := func(body map[string]interface{}) string {
		body["boardId"] = boardID
		res := struct {
			ID string `json:"id"`
		}{}
		resp := user1.Do(http.MethodPost, "/api/tasks", body)
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))
		decodeInto(resp, &res)
		resp.Body.Close()
		return res.ID
	}

	boardTasks := func() []entity.Task {
		tasks := []entity.Task{}
		user1.GetInto("/api/boards/"+boardID+"/tasks", &tasks)
		return tasks
	}

	BeforeEach(func() {
		cleanupMongo()
		user1 = signupUser(0)
		user2 = signupUser(1)

		res := struct {
			ID string `json:"id"`
		}{}
		resp := user1.Do(http.MethodPost, "/api/teams", map[string]string{"name": "Eng"})
		decodeInto(resp, &res)
		resp.Body.Close()

		resp = user1.Do(http.MethodPost, "/api/projects", map[string]string{"name": "Site", "teamId": res.ID})
		decodeInto(resp, &res)
		resp.Body.Close()

		board := entity.Board{}
		resp = user1.Do(http.MethodPost, "/api/projects/"+res.ID+"/boards", map[string]string{})
		decodeInto(resp, &board)
		resp.Body.Close()
		boardID = board.ID.Hex()
	})

	Describe("Create Task", func() {
		Specify("defaults: todo, medium, no assignees", func() {
			createTask(map[string]interface{}{"title": "Fix bug"})

			tasks := boardTasks()
			Expect(tasks).To(HaveLen(1))
			Expect(tasks[0].Status).To(Equal("todo"))
			Expect(tasks[0].Priority).To(Equal("medium"))
			Expect(tasks[0].AssignedTo).To(Equal([]string{}))
			Expect(tasks[0].CreatedBy).To(Equal(user1.UID))
		})

		Specify("sad path - missing title", func() {
			resp := user1.Do(http.MethodPost, "/api/tasks", map[string]interface{}{"boardId": boardID})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(apiError(resp)).To(MatchBackendError(errs.ErrTitleRequired))
		})

		Specify("sad path - invalid priority", func() {
			resp := user1.Do(http.MethodPost, "/api/tasks", map[string]interface{}{
				"boardId":  boardID,
				"title":    "Fix bug",
				"priority": "urgent",
			})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(apiError(resp)).To(MatchBackendError(errs.ErrInvalidPriority))
		})
	})

	Describe("List Tasks", func() {
		Specify("sorted ascending by order", func() {
			createTask(map[string]interface{}{"title": "third", "order": 3})
			createTask(map[string]interface{}{"title": "first", "order": 1})
			createTask(map[string]interface{}{"title": "unset"})

			tasks := boardTasks()
			Expect(tasks).To(HaveLen(3))
			Expect(tasks[0].Title).To(Equal("unset"))
			Expect(tasks[1].Title).To(Equal("first"))
			Expect(tasks[2].Title).To(Equal("third"))
		})
	})

	Describe("Assignment", func() {
		var taskID string

		BeforeEach(func() {
			taskID = createTask(map[string]interface{}{"title": "Fix bug"})
		})

		Specify("assign twice leaves one entry", func() {
			for i := 0; i < 2; i++ {
				resp := user1.Do(http.MethodPost, "/api/tasks/"+taskID+"/assignees/"+user2.UID, nil)
				Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
				resp.Body.Close()
			}

			tasks := boardTasks()
			Expect(tasks[0].AssignedTo).To(Equal([]string{user2.UID}))
		})

		Specify("assign then unassign restores the original set", func() {
			resp := user1.Do(http.MethodPost, "/api/tasks/"+taskID+"/assignees/"+user2.UID, nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
			resp.Body.Close()

			resp = user1.Do(http.MethodDelete, "/api/tasks/"+taskID+"/assignees/"+user2.UID, nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
			resp.Body.Close()

			tasks := boardTasks()
			Expect(tasks[0].AssignedTo).To(Equal([]string{}))
		})
	})

	Describe("Update Task", func() {
		Specify("sad path - unknown field rejected", func() {
			taskID := createTask(map[string]interface{}{"title": "Fix bug"})

			resp := user1.Do(http.MethodPatch, "/api/tasks/"+taskID, map[string]interface{}{"createdBy": user2.UID})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(apiError(resp)).To(MatchBackendError(errs.ErrUnknownField))
		})
	})

	Describe("Subscription", func() {
		readSnapshot := func(conn *websocket.Conn) []entity.Task {
			conn.SetReadDeadline(time.Now().Add(10 * time.Second))
			_, payload, err := conn.ReadMessage()
			Expect(err).To(BeNil())

			tasks := []entity.Task{}
			Expect(json.Unmarshal(payload, &tasks)).To(BeNil())
			return tasks
		}

		Specify("status change is delivered to the subscriber", func() {
			taskID := createTask(map[string]interface{}{"title": "Fix bug"})

			header := http.Header{}
			header.Set("Authorization", "Bearer "+user1.AccessToken)
			conn, _, err := websocket.DefaultDialer.Dial(wsURL("/api/boards/"+boardID+"/subscribe"), header)
			Expect(err).To(BeNil())
			defer conn.Close()

			initial := readSnapshot(conn)
			Expect(initial).To(HaveLen(1))
			Expect(initial[0].Status).To(Equal("todo"))

			resp := user1.Do(http.MethodPatch, "/api/tasks/"+taskID, map[string]string{"status": "in-progress"})
			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
			resp.Body.Close()

			next := readSnapshot(conn)
			Expect(next).To(HaveLen(1))
			Expect(next[0].Status).To(Equal("in-progress"))
		})

		Specify("browser clients authenticate via token query parameter", func() {
			createTask(map[string]interface{}{"title": "Fix bug"})

			conn, _, err := websocket.DefaultDialer.Dial(wsURL("/api/boards/"+boardID+"/subscribe?token="+user1.AccessToken), nil)
			Expect(err).To(BeNil())
			defer conn.Close()

			Expect(readSnapshot(conn)).To(HaveLen(1))
		})

		Specify("sad path - handshake without a token is rejected", func() {
			_, resp, err := websocket.DefaultDialer.Dial(wsURL("/api/boards/"+boardID+"/subscribe"), nil)
			Expect(err).To(Equal(websocket.ErrBadHandshake))
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
			resp.Body.Close()
		})

		Specify("deletes trigger a fresh snapshot", func() {
			taskID := createTask(map[string]interface{}{"title": "doomed"})

			header := http.Header{}
			header.Set("Authorization", "Bearer "+user1.AccessToken)
			conn, _, err := websocket.DefaultDialer.Dial(wsURL("/api/boards/"+boardID+"/subscribe"), header)
			Expect(err).To(BeNil())
			defer conn.Close()

			Expect(readSnapshot(conn)).To(HaveLen(1))

			resp := user1.Do(http.MethodDelete, "/api/tasks/"+taskID, nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
			resp.Body.Close()

			Expect(readSnapshot(conn)).To(BeEmpty())
		})
	})
})
