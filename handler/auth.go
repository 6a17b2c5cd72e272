package handler

import (
	"context"
	"net/http"
	"net/mail"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"workflowpro-backend/entity"
	"workflowpro-backend/errs"
	"workflowpro-backend/jwt"
	"workflowpro-backend/log"
	"workflowpro-backend/service"
)

type authHandler struct {
	key []byte
	c   *mongo.Collection
}

func NewAuthHandler(client *mongo.Client, key []byte) *authHandler {
	_, err := client.Database(service.Database).Collection("users").Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		log.Logger.Fatal("unable to create index", zap.Error(err))
	}

	return &authHandler{
		key: key,
		c:   client.Database(service.Database).Collection("users"),
	}
}

func (h *authHandler) Register(r *mux.Router) {
	r.HandleFunc("/auth/signup", h.signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh", h.refresh).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(RequireAuth(h.key))
	authed.HandleFunc("/auth/me", h.me).Methods(http.MethodGet)
}

type tokenPair struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (h *authHandler) signup(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}{}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.Name == "" {
		writeError(w, errs.ErrNameRequired)
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeError(w, errs.ErrEmailAddressFormat)
		return
	}
	if req.Password == "" {
		writeError(w, errs.ErrPasswordRequired)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		log.Logger.Error("failed to generate bcrypt hash", zap.Error(err))
		writeError(w, errs.ErrCryptographic)
		return
	}

	u := &entity.User{
		ID:       primitive.NewObjectID(),
		Email:    req.Email,
		Password: string(hash),
		Name:     req.Name,
	}

	_, err = h.c.InsertOne(r.Context(), u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Logger.Debug("already has account", zap.String("email", req.Email), zap.Error(err))
			writeError(w, errs.ErrAlreadyExists)
			return
		}

		log.Logger.Error("failed inserting new user", zap.Error(err))
		writeError(w, errs.ErrDatabase)
		return
	}

	h.respondWithTokens(w, u, http.StatusCreated)
}

func (h *authHandler) login(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.Email == "" {
		writeError(w, errs.ErrEmailRequired)
		return
	}
	if req.Password == "" {
		writeError(w, errs.ErrPasswordRequired)
		return
	}

	u := &entity.User{}
	err := h.c.FindOne(r.Context(), bson.M{"email": req.Email}).Decode(u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			writeError(w, errs.ErrInvalidEmailOrPassword)
			return
		}

		log.Logger.Error("database error", zap.Error(err), zap.String("email", req.Email))
		writeError(w, errs.ErrDatabase)
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			log.Logger.Debug("invalid password", zap.Error(err))
			writeError(w, errs.ErrInvalidEmailOrPassword)
			return
		}

		writeError(w, errs.ErrCryptographic)
		return
	}

	h.respondWithTokens(w, u, http.StatusOK)
}

func (h *authHandler) refresh(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Token string `json:"token"`
	}{}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	claims, err := jwt.ValidateRefreshToken(req.Token, h.key)
	if err != nil {
		if err == jwt.ErrExpired {
			writeError(w, errs.ErrTokenExpired)
			return
		}

		writeError(w, errs.ErrJWT)
		return
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		log.Logger.Error("failed mongo id", zap.Error(err))
		writeError(w, errs.ErrJWT)
		return
	}

	u := &entity.User{}
	err = h.c.FindOne(r.Context(), bson.M{"_id": id}).Decode(u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			writeError(w, errs.ErrJWT)
			return
		}

		log.Logger.Error("database error", zap.Error(err), zap.String("id", claims.UserID))
		writeError(w, errs.ErrDatabase)
		return
	}

	token, err := jwt.NewAccessToken(u, h.key)
	if err != nil {
		log.Logger.Error("jwt failure", zap.Error(err))
		writeError(w, errs.ErrJWT)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// me answers the identity-verification contract: a valid bearer token maps
// to {uid, email, name}.
func (h *authHandler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwt.GetClaimsFromCtx(r.Context())
	if !ok {
		writeError(w, errs.ErrJWT)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"uid":   claims.UserID,
		"email": claims.Email,
		"name":  claims.Name,
	})
}

func (h *authHandler) respondWithTokens(w http.ResponseWriter, u *entity.User, status int) {
	refresh, err := jwt.NewRefreshToken(u, h.key)
	if err != nil {
		log.Logger.Error("jwt failure", zap.Error(err))
		writeError(w, errs.ErrJWT)
		return
	}

	access, err := jwt.NewAccessToken(u, h.key)
	if err != nil {
		log.Logger.Error("jwt failure", zap.Error(err))
		writeError(w, errs.ErrJWT)
		return
	}

	writeJSON(w, status, tokenPair{
		UID:          u.ID.Hex(),
		Email:        u.Email,
		AccessToken:  access,
		RefreshToken: refresh,
	})
}
