package handler

import (
	"net/http"

	"github.com/newlifejournal/newlifejournal/internal/auth"
	"github.com/newlifejournal/newlifejournal/internal/middleware"
)

type googleSignInRequest struct {
	IDToken string `json:"idToken"`
}

type signInResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// handleGoogleSignIn exchanges a verified Google ID token for an app
// session token, creating the account on first sign-in.
func (h *Handler) handleGoogleSignIn(w http.ResponseWriter, r *http.Request) {
	var req googleSignInRequest
	if err := decodeBody(r, &req); err != nil || req.IDToken == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "idToken is required"})
		return
	}

	identity, err := h.deps.Google.Verify(r.Context(), req.IDToken)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid google token"})
		return
	}

	user, err := h.deps.Users.FindOrCreateGoogle(r.Context(), identity.Sub, identity.Email, identity.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := auth.GenerateToken(user.ID, h.deps.JWTSigningKey, h.deps.JWTTTL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, signInResponse{
		Token: token,
		User:  userResponse{ID: user.ID.String(), Email: user.Email, Name: user.Name},
	})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	user, err := h.deps.Users.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{ID: user.ID.String(), Email: user.Email, Name: user.Name})
}
