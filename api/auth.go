package api

import (
	"encoding/json"
	"net/http"

	"content-coach/auth"
	"content-coach/user"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		a.Response(w, http.StatusBadRequest, "email and password are required")
		return
	}

	userAccessor := user.NewAccessor(a.db)
	u, err := userAccessor.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}
	// same answer for unknown email and wrong password
	if u == nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		a.Response(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	sess := auth.Session{UserID: u.ID, Email: u.Email, Role: u.Role}
	tok, err := auth.MakeToken(sess, a.secret)
	if err != nil {
		a.Response(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	a.Response(w, http.StatusOK, map[string]any{
		"token":     tok,
		"userId":    u.ID.String(),
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"role":      u.Role,
	})
}
