package handlers

import (
	"net/http"

	"github.com/jihan212/BUBT-DX/internal/app"
	"github.com/jihan212/BUBT-DX/internal/http/middleware"
	"github.com/jihan212/BUBT-DX/internal/http/response"
)

type UserHandler struct {
	users *app.UserService
}

func NewUserHandler(users *app.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.users.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, accounts)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	actorRole, _ := middleware.RoleFromContext(r.Context())
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	account, err := h.users.Get(r.Context(), id, actorID, actorRole)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, account)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var input app.ProfileUpdate
	if err := decodeJSON(r, &input); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.users.UpdateProfile(r.Context(), id, actorID, input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"message": "Profile updated successfully", "user": updated})
}
