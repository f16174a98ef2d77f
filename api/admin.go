package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"content-coach/apikey"
	"content-coach/auth"
	"content-coach/user"
)

// requireAction enforces the central authorization policy, replying itself
// when the caller may not perform the action.
func (a *API) requireAction(w http.ResponseWriter, r *http.Request, action user.Action) *auth.Session {
	sess, err := auth.FromContext(r.Context())
	if err != nil {
		a.Response(w, http.StatusUnauthorized, "not authenticated")
		return nil
	}
	if !sess.Can(action) {
		a.Response(w, http.StatusForbidden, "insufficient role")
		return nil
	}
	return &sess
}

type createUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

func (a *API) createUser(w http.ResponseWriter, r *http.Request) {
	sess := a.requireAction(w, r, user.ActionManageUsers)
	if sess == nil {
		return
	}

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Password) < 8 {
		a.Response(w, http.StatusBadRequest, "password too short")
		return
	}

	role := user.RoleUser
	if req.Role != "" {
		parsed, err := user.ParseRole(req.Role)
		if err != nil {
			a.Response(w, http.StatusBadRequest, "unknown role")
			return
		}
		role = parsed
	}
	if role == user.RoleSuperAdmin && !sess.Can(user.ActionGrantSuperAdmin) {
		a.Response(w, http.StatusForbidden, "insufficient role")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		a.Response(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	payload := user.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
	}
	if err := payload.Validate(); err != nil {
		a.Response(w, http.StatusBadRequest, fmt.Sprintf("validate: %v", err))
		return
	}

	userAccessor := user.NewAccessor(a.db)
	u, err := userAccessor.CreateUser(r.Context(), payload, a.now())
	if err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.Response(w, http.StatusCreated, u)
}

type getUsersResponse struct {
	Users []user.User `json:"users"`
}

func (a *API) getUsers(w http.ResponseWriter, r *http.Request) {
	if a.requireAction(w, r, user.ActionManageUsers) == nil {
		return
	}

	userAccessor := user.NewAccessor(a.db)
	users, err := userAccessor.GetUsers(r.Context())
	if err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.Response(w, http.StatusOK, getUsersResponse{Users: users})
}

func (a *API) deleteUser(w http.ResponseWriter, r *http.Request) {
	sess := a.requireAction(w, r, user.ActionManageUsers)
	if sess == nil {
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid user ID")
		return
	}
	if id == sess.UserID {
		a.Response(w, http.StatusBadRequest, "cannot delete yourself")
		return
	}

	userAccessor := user.NewAccessor(a.db)
	u, err := userAccessor.GetUser(r.Context(), id)
	if err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}
	if u == nil {
		a.Response(w, http.StatusNotFound, "user not found")
		return
	}

	if err := userAccessor.DeleteUser(r.Context(), id); err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.Response(w, http.StatusNoContent, nil)
}

type setRoleRequest struct {
	Role string `json:"role"`
}

func (a *API) setUserRole(w http.ResponseWriter, r *http.Request) {
	sess := a.requireAction(w, r, user.ActionAssignRole)
	if sess == nil {
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	var req setRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}
	role, err := user.ParseRole(req.Role)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "unknown role")
		return
	}
	if role == user.RoleSuperAdmin && !sess.Can(user.ActionGrantSuperAdmin) {
		a.Response(w, http.StatusForbidden, "insufficient role")
		return
	}

	userAccessor := user.NewAccessor(a.db)
	u, err := userAccessor.GetUser(r.Context(), id)
	if err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}
	if u == nil {
		a.Response(w, http.StatusNotFound, "user not found")
		return
	}

	if err := userAccessor.SetRole(r.Context(), id, role, a.now()); err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.Response(w, http.StatusNoContent, nil)
}

type setAPIKeyRequest struct {
	Key string `json:"key"`
}

func (a *API) setAPIKey(w http.ResponseWriter, r *http.Request) {
	sess := a.requireAction(w, r, user.ActionManageAPIKeys)
	if sess == nil {
		return
	}

	service := mux.Vars(r)["service"]

	var req setAPIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Key == "" {
		a.Response(w, http.StatusBadRequest, "key is required")
		return
	}

	keyAccessor := apikey.NewAccessor(a.db)
	if err := keyAccessor.SetKey(r.Context(), service, req.Key, sess.UserID, a.now()); err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.Response(w, http.StatusNoContent, nil)
}

func (a *API) removeAPIKey(w http.ResponseWriter, r *http.Request) {
	if a.requireAction(w, r, user.ActionManageAPIKeys) == nil {
		return
	}

	service := mux.Vars(r)["service"]

	keyAccessor := apikey.NewAccessor(a.db)
	if err := keyAccessor.RemoveKey(r.Context(), service); err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.Response(w, http.StatusNoContent, nil)
}
