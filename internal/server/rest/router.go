package rest

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// NewRouter builds the route table. Unknown paths answer 404 and known paths
// with an unsupported method answer 405, both in the error envelope.
func NewRouter(h *Handler, requestTimeout time.Duration) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	r.HandleFunc("/users", h.register).Methods(http.MethodPost)
	r.HandleFunc("/users/me", h.authenticated(h.me)).Methods(http.MethodGet)
	r.HandleFunc("/users/info", h.authenticated(h.updateInfo)).Methods(http.MethodPost)
	r.HandleFunc("/users/friends", h.authenticated(h.friend)).Methods(http.MethodGet)

	r.HandleFunc("/messages", h.authenticated(h.listInbox)).Methods(http.MethodGet)
	r.HandleFunc("/messages", h.authenticated(h.send)).Methods(http.MethodPost)
	r.HandleFunc("/messages", h.authenticated(h.deleteUpTo)).Methods(http.MethodDelete)

	return withRequestID(h.withAccessLog(withTimeout(requestTimeout, withBodyLimit(r))))
}
