package handler

import (
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

type calendarHandler struct {
	clientID     string
	clientSecret string
	redirectURI  string
	frontendURL  string
	client       *http.Client
}

func NewCalendarHandler(clientID, clientSecret, redirectURI, frontendURL string) *calendarHandler {
	return &calendarHandler{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		frontendURL:  frontendURL,
		client:       &http.Client{Timeout: 15 * time.Second},
	}
}

func (h *calendarHandler) Register(r *mux.Router) {
	r.HandleFunc("/calendar/login", h.login).Methods(http.MethodGet)
	r.HandleFunc("/calendar/callback", h.callback).Methods(http.MethodGet)
	r.HandleFunc("/calendar/events", h.events).Methods(http.MethodGet)
}

func (h *calendarHandler) login(w http.ResponseWriter, r *http.Request) {
	q := url.Values{}
	q.Set("client_id", h.clientID)
	q.Set("redirect_uri", h.redirectURI)
	q.Set("response_type", "code")
	q.Set("access_type", "offline")
	q.Set("scope", "https://www.googleapis.com/auth/calendar")

	http.Redirect(w, r, "https://accounts.google.com/o/oauth2/v2/auth?"+q.Encode(), http.StatusFound)
}

func (h *calendarHandler) callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeProviderError(w, http.StatusBadRequest, "Authorization code missing", nil)
		return
	}

	form := url.Values{}
	form.Set("client_id", h.clientID)
	form.Set("client_secret", h.clientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", h.redirectURI)

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, "https://oauth2.googleapis.com/token", strings.NewReader(form.Encode()))
	if err != nil {
		writeProviderError(w, http.StatusInternalServerError, "OAuth callback failed", err.Error())
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := h.client.Do(req)
	if err != nil {
		log.Logger.Error("google token exchange failed", zap.Error(err))
		writeProviderError(w, http.StatusInternalServerError, "OAuth callback failed", err.Error())
		return
	}
	defer resp.Body.Close()

	tokens := struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
		Error       string `json:"error"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		writeProviderError(w, http.StatusInternalServerError, "OAuth callback failed", err.Error())
		return
	}
	if tokens.Error != "" || tokens.AccessToken == "" {
		writeProviderError(w, http.StatusInternalServerError, "OAuth callback failed", tokens.Error)
		return
	}

	tokenType := tokens.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	expiresIn := tokens.ExpiresIn
	if expiresIn == 0 {
		expiresIn = 3600
	}

	http.Redirect(w, r, fmt.Sprintf("%s/google-calendar-success?access_token=%s&token_type=%s&expires_in=%d",
		h.frontendURL, url.QueryEscape(tokens.AccessToken), url.QueryEscape(tokenType), expiresIn), http.StatusFound)
}

// events proxies the next 10 upcoming events from the caller's primary
// calendar, returning the provider's items verbatim.
func (h *calendarHandler) events(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Authorization header missing"})
		return
	}

	q := url.Values{}
	q.Set("timeMin", time.Now().UTC().Format(time.RFC3339))
	q.Set("maxResults", "10")
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet,
		"https://www.googleapis.com/calendar/v3/calendars/primary/events?"+q.Encode(), nil)
	if err != nil {
		writeProviderError(w, http.StatusInternalServerError, "Failed to fetch events", err.Error())
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := h.client.Do(req)
	if err != nil {
		log.Logger.Error("calendar events fetch failed", zap.Error(err))
		writeProviderError(w, http.StatusInternalServerError, "Failed to fetch events", err.Error())
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		writeProviderError(w, http.StatusInternalServerError, "Failed to fetch events", string(detail))
		return
	}

	list := struct {
		Items []json.RawMessage `json:"items"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		writeProviderError(w, http.StatusInternalServerError, "Failed to fetch events", err.Error())
		return
	}
	if list.Items == nil {
		list.Items = []json.RawMessage{}
	}

	writeJSON(w, http.StatusOK, list.Items)
}
