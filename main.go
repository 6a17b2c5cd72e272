package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"workflowpro-backend/handler"
	"workflowpro-backend/internal/mailer"
	"workflowpro-backend/log"
	"workflowpro-backend/service"
)

func envOrDefaultString(env, def string) string {
	if val, ok := os.LookupEnv(env); ok {
		return val
	}

	return def
}

func main() {
	flag.Parse()
	_ = godotenv.Load()
	log.EnsureLogger()

	listenAddr := envOrDefaultString("PORT", "5000")
	mongoAddr := envOrDefaultString("MONGO_URI", "mongodb://localhost:27017")
	jwtKey := []byte(envOrDefaultString("JWT_KEY", "test-key"))
	frontendURL := envOrDefaultString("FRONTEND_URL", "http://localhost:3000")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoAddr))
	if err != nil {
		log.Logger.Fatal("failed connecting to database", zap.Error(err))
	}

	teamService := service.NewTeamService(client)
	projectService := service.NewProjectService(client)
	boardService := service.NewBoardService(client)
	taskService := service.NewTaskService(client)
	sprintService := service.NewSprintService(client)
	inviteService := service.NewInviteService(client, teamService)

	m := mailer.NewMailer(
		envOrDefaultString("MAILGUN_DOMAIN", "mg.workflowpro.local"),
		envOrDefaultString("MAILGUN_API_KEY", ""),
		frontendURL,
	)
	go func() {
		if err := m.Run(context.Background()); err != nil {
			log.Logger.Error("mailer worker stopped", zap.Error(err))
		}
	}()

	router := handler.NewRouter(
		jwtKey,
		handler.NewHealthHandler(client),
		handler.NewAuthHandler(client, jwtKey),
		[]handler.Registrar{
			handler.NewGithubHandler(
				os.Getenv("GITHUB_CLIENT_ID"),
				os.Getenv("GITHUB_CLIENT_SECRET"),
				os.Getenv("GITHUB_CALLBACK_URL"),
				frontendURL,
			),
			handler.NewCalendarHandler(
				os.Getenv("GOOGLE_CLIENT_ID"),
				os.Getenv("GOOGLE_CLIENT_SECRET"),
				os.Getenv("GOOGLE_REDIRECT_URI"),
				frontendURL,
			),
		},
		[]handler.Registrar{
			handler.NewTeamHandler(teamService, projectService),
			handler.NewProjectHandler(projectService, boardService, sprintService),
			handler.NewBoardHandler(boardService, taskService),
			handler.NewTaskHandler(taskService),
			handler.NewSprintHandler(sprintService),
			handler.NewInviteHandler(inviteService),
			handler.NewSubscribeHandler(taskService),
		},
	)

	log.Logger.Info(fmt.Sprintf("Listening on port: %s", listenAddr))
	if err := http.ListenAndServe(fmt.Sprintf("0.0.0.0:%s", listenAddr), router); err != nil {
		log.Logger.Fatal("couldn't serve http", zap.Error(err))
	}
}
