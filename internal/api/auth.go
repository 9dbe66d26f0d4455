package api

import (
	"net/http"
	"strings"

	"storefront/internal/httpx"
	"storefront/internal/user"
	"storefront/internal/validation"
)

type TokenResponse struct {
	Token string    `json:"token"`
	Role  user.Role `json:"role"`
}

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	var creds user.Credentials
	if err := httpx.DecodeJSON(r, &creds); err != nil {
		writeDecodeError(w, err)
		return
	}
	creds.Username = strings.TrimSpace(creds.Username)
	if err := validation.Struct(creds); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.users.Authenticate(r.Context(), creds.Username, creds.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.users.IssueToken(u)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.OK(w, TokenResponse{Token: token, Role: u.Role})
}
