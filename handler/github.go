package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"workflowpro-backend/log"
)

type githubHandler struct {
	clientID     string
	clientSecret string
	callbackURL  string
	frontendURL  string
	client       *http.Client
}

func NewGithubHandler(clientID, clientSecret, callbackURL, frontendURL string) *githubHandler {
	return &githubHandler{
		clientID:     clientID,
		clientSecret: clientSecret,
		callbackURL:  callbackURL,
		frontendURL:  frontendURL,
		client:       &http.Client{Timeout: 15 * time.Second},
	}
}

func (h *githubHandler) Register(r *mux.Router) {
	r.HandleFunc("/github/login", h.login).Methods(http.MethodGet)
	r.HandleFunc("/github/callback", h.callback).Methods(http.MethodGet)
	r.HandleFunc("/github/repos", h.repos).Methods(http.MethodGet)
}

func (h *githubHandler) login(w http.ResponseWriter, r *http.Request) {
	if h.clientID == "" || h.clientSecret == "" || h.callbackURL == "" {
		writeProviderError(w, http.StatusInternalServerError, "Missing GitHub OAuth configuration", map[string]bool{
			"clientID":     h.clientID != "",
			"clientSecret": h.clientSecret != "",
			"callbackURL":  h.callbackURL != "",
		})
		return
	}

	redirect := fmt.Sprintf("https://github.com/login/oauth/authorize?client_id=%s&redirect_uri=%s&scope=repo",
		h.clientID, url.QueryEscape(h.callbackURL))
	http.Redirect(w, r, redirect, http.StatusFound)
}

// callback exchanges the authorization code for an access token, resolves
// the GitHub username, and redirects to the frontend success page carrying
// both. Token-in-URL is a prototype shortcut only.
func (h *githubHandler) callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if e := q.Get("error"); e != "" {
		writeProviderError(w, http.StatusBadRequest, "GitHub OAuth error", q.Get("error_description"))
		return
	}

	code := q.Get("code")
	if code == "" {
		writeProviderError(w, http.StatusBadRequest, "Missing authorization code", nil)
		return
	}

	body, _ := json.Marshal(map[string]string{
		"client_id":     h.clientID,
		"client_secret": h.clientSecret,
		"code":          code,
		"redirect_uri":  h.callbackURL,
	})

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, "https://github.com/login/oauth/access_token", bytes.NewReader(body))
	if err != nil {
		writeProviderError(w, http.StatusInternalServerError, "Authentication failed", err.Error())
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		log.Logger.Error("github token exchange failed", zap.Error(err))
		writeProviderError(w, http.StatusInternalServerError, "Authentication failed", err.Error())
		return
	}
	defer resp.Body.Close()

	tokenRes := struct {
		AccessToken      string `json:"access_token"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&tokenRes); err != nil {
		writeProviderError(w, http.StatusInternalServerError, "Token exchange failed", err.Error())
		return
	}

	if tokenRes.Error != "" {
		writeProviderError(w, http.StatusInternalServerError, "Token exchange failed", tokenRes.ErrorDescription)
		return
	}
	if tokenRes.AccessToken == "" {
		writeProviderError(w, http.StatusInternalServerError, "Failed to retrieve access token", nil)
		return
	}

	username, err := h.fetchUsername(r, tokenRes.AccessToken)
	if err != nil {
		log.Logger.Error("github user lookup failed", zap.Error(err))
		writeProviderError(w, http.StatusInternalServerError, "Authentication failed", err.Error())
		return
	}

	http.Redirect(w, r, fmt.Sprintf("%s/github-success?token=%s&username=%s",
		h.frontendURL, url.QueryEscape(tokenRes.AccessToken), url.QueryEscape(username)), http.StatusFound)
}

func (h *githubHandler) fetchUsername(r *http.Request, token string) (string, error) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, "https://api.github.com/user", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	user := struct {
		Login string `json:"login"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", err
	}

	return user.Login, nil
}

// repos forwards the caller's GitHub token to the provider and returns the
// provider's JSON verbatim.
func (h *githubHandler) repos(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Missing GitHub token"})
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, "https://api.github.com/user/repos", nil)
	if err != nil {
		writeProviderError(w, http.StatusInternalServerError, "Failed to fetch repositories", err.Error())
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := h.client.Do(req)
	if err != nil {
		log.Logger.Error("github repos fetch failed", zap.Error(err))
		writeProviderError(w, http.StatusInternalServerError, "Failed to fetch repositories", err.Error())
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	io.Copy(w, resp.Body)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
