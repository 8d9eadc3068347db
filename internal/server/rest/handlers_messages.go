package rest

import (
	"net/http"

	"github.com/dmitrijs2005/postbox/internal/server/auth"
	"github.com/dmitrijs2005/postbox/internal/server/services"
)

type deleteResult struct {
	Result  string `json:"result"`
	Deleted int64  `json:"deleted"`
}

// listInbox handles GET /messages.
func (h *Handler) listInbox(w http.ResponseWriter, r *http.Request, p auth.Principal) {
	inbox, err := h.messages.ListInbox(r.Context(), p)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inbox)
}

// send handles POST /messages.
func (h *Handler) send(w http.ResponseWriter, r *http.Request, p auth.Principal) {
	body, err := readBody(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	f, err := body.requireStrings("recipient", "contents")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	msg, err := h.messages.Send(r.Context(), p, f[0], f[1])
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

// deleteUpTo handles DELETE /messages?until=<unix seconds>.
func (h *Handler) deleteUpTo(w http.ResponseWriter, r *http.Request, p auth.Principal) {
	raw, err := queryString(r, "until")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	cutoff, err := services.ParseCutoff(raw)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	n, err := h.messages.DeleteUpTo(r.Context(), p, cutoff)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteResult{Result: "success", Deleted: n})
}
