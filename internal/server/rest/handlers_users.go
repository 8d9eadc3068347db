package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/postbox/internal/common"
	"github.com/dmitrijs2005/postbox/internal/server/auth"
)

// register handles POST /users.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	f, err := body.requireStrings("username", "password", "private_key", "public_key")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.users.Register(r.Context(), f[0], f[1], f[2], f[3])
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "user registered", "request_id", requestIDFrom(r.Context()), "username", user.UserName)
	writeJSON(w, http.StatusCreated, user.Public())
}

// me handles GET /users/me.
func (h *Handler) me(w http.ResponseWriter, _ *http.Request, p auth.Principal) {
	writeJSON(w, http.StatusOK, p.User().Private())
}

// updateInfo handles POST /users/info.
func (h *Handler) updateInfo(w http.ResponseWriter, r *http.Request, p auth.Principal) {
	body, err := readBody(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	info, err := body.String("info")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.users.UpdateInfo(r.Context(), p, info)
	if err != nil {
		h.logger.Error(r.Context(), "info update failed", "request_id", requestIDFrom(r.Context()), "user_id", p.ID(), "error", err)
		writeError(w, http.StatusConflict, "could not save info")
		return
	}

	writeJSON(w, http.StatusOK, user.Private())
}

// friend handles GET /users/friends. Only the public view is rendered, even
// when the caller looks up itself.
func (h *Handler) friend(w http.ResponseWriter, r *http.Request, _ auth.Principal) {
	username, err := queryString(r, "username")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.users.FindByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user.Public())
}
