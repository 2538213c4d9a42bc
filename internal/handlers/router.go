package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter registers every route on a gorilla/mux router.
func (h *Handler) NewRouter() http.Handler {
	r := mux.NewRouter()
	r.Use(RecoveryMiddleware(h.logger))
	r.Use(LoggingMiddleware(h.logger))

	notFound := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		h.writeError(w, req, newHTTPError(http.StatusNotFound, CodeNotFound, "Not found"))
	})
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		h.writeError(w, req, newHTTPError(http.StatusMethodNotAllowed, CodeMethod, "Method not allowed"))
	})
	r.NotFoundHandler = notFound
	r.MethodNotAllowedHandler = methodNotAllowed

	r.HandleFunc("/healthz", h.Healthz).Methods(http.MethodGet)

	// Subrouters do not inherit the error handlers.
	p := r.PathPrefix("/pickup").Subrouter()
	p.NotFoundHandler = notFound
	p.MethodNotAllowedHandler = methodNotAllowed

	// Public: capability links and the dashboard forms.
	p.HandleFunc("/respond", h.limited(h.Respond, true)).Methods(http.MethodGet)
	p.HandleFunc("/add-guest", h.limited(h.AddGuest, false)).Methods(http.MethodPost)
	p.HandleFunc("/rsvp", h.limited(h.RSVPByEmail, false)).Methods(http.MethodPost)
	p.HandleFunc("/dashboard", h.Dashboard).Methods(http.MethodGet)
	p.PathPrefix("/static/").Handler(http.StripPrefix("/pickup/static/", staticFiles())).Methods(http.MethodGet)

	// Roster
	p.HandleFunc("/add-player", h.AddPlayer).Methods(http.MethodPost)
	p.HandleFunc("/remove-player", h.RemovePlayer).Methods(http.MethodPost, http.MethodDelete)
	p.HandleFunc("/get-player-id", h.GetPlayerID).Methods(http.MethodPost)

	// Games
	p.HandleFunc("/create-game", h.CreateGame).Methods(http.MethodPost)
	p.HandleFunc("/edit-game", h.EditGame).Methods(http.MethodPost)
	p.HandleFunc("/resend-game", h.ResendGame).Methods(http.MethodPost)
	p.HandleFunc("/current-game", h.CurrentGame).Methods(http.MethodGet)

	// Reports and email
	p.HandleFunc("/summary", h.Summary).Methods(http.MethodGet)
	p.HandleFunc("/logs", h.Logs).Methods(http.MethodGet)
	p.HandleFunc("/broadcast-email", h.BroadcastEmail).Methods(http.MethodPost)

	return r
}
