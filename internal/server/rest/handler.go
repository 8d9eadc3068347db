// Package rest is the HTTP surface of the server. Routing uses gorilla/mux;
// every protected route is wrapped with authenticated, which resolves the
// credential headers into an auth.Principal and passes it to the handler.
package rest

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/postbox/internal/common"
	"github.com/dmitrijs2005/postbox/internal/logging"
	"github.com/dmitrijs2005/postbox/internal/server/auth"
	"github.com/dmitrijs2005/postbox/internal/server/models"
)

type UserService interface {
	Register(ctx context.Context, username, password, privateKey, publicKey string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateInfo(ctx context.Context, p auth.Principal, info string) (*models.User, error)
}

type MessageService interface {
	Send(ctx context.Context, p auth.Principal, recipient, contents string) (*models.Message, error)
	ListInbox(ctx context.Context, p auth.Principal) (*models.Inbox, error)
	DeleteUpTo(ctx context.Context, p auth.Principal, cutoff int64) (int64, error)
}

type Authenticator interface {
	Authenticate(ctx context.Context, username, token string) (auth.Principal, error)
}

type Handler struct {
	users    UserService
	messages MessageService
	authn    Authenticator
	logger   logging.Logger
}

func NewHandler(us UserService, ms MessageService, a Authenticator, l logging.Logger) *Handler {
	return &Handler{
		users:    us,
		messages: ms,
		authn:    a,
		logger:   l.With("module", "rest"),
	}
}

type authenticatedFunc func(w http.ResponseWriter, r *http.Request, p auth.Principal)

// authenticated runs next only for requests whose credential headers
// resolve to a user.
func (h *Handler) authenticated(next authenticatedFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := h.authn.Authenticate(r.Context(),
			r.Header.Get(common.UserNameHeaderName),
			r.Header.Get(common.UserTokenHeaderName))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		next(w, r, p)
	}
}
