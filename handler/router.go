package handler

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Registrar is anything that can attach its routes to a router.
type Registrar interface {
	Register(r *mux.Router)
}

// NewRouter assembles the API. Everything under /api except auth and the
// OAuth glue requires a bearer token.
func NewRouter(key []byte, health, auth Registrar, public []Registrar, protected []Registrar) http.Handler {
	router := mux.NewRouter()
	health.Register(router)

	api := router.PathPrefix("/api").Subrouter()
	auth.Register(api)
	for _, reg := range public {
		reg.Register(api)
	}

	authed := api.NewRoute().Subrouter()
	authed.Use(RequireAuth(key))
	for _, reg := range protected {
		reg.Register(authed)
	}

	var h http.Handler = router
	h = RequestLogger(h)
	h = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)(h)
	h = handlers.CompressHandler(h)
	h = handlers.RecoveryHandler()(h)

	return h
}
