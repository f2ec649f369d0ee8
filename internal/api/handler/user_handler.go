package handler

import (
	"encoding/json"
	"net/http"

	"crackthechain/internal/api/middleware"
	"crackthechain/internal/app/service"
	"crackthechain/internal/common"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService  *service.UserService
	statsService *service.StatsService
}

func NewUserHandler(userService *service.UserService, statsService *service.StatsService) *UserHandler {
	return &UserHandler{userService: userService, statsService: statsService}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/top", h.topUsers)
	r.Get("/{id}", h.getUser)

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Get("/profile", h.profile)
		authed.Patch("/{id}", h.updateUser)

		authed.Group(func(admin chi.Router) {
			admin.Use(middleware.AdminOnly)
			admin.Get("/", h.listUsers)
			admin.Delete("/{id}", h.deleteUser)
			admin.Post("/{id}/restore", h.restoreUser)
		})
	})
}

func (h *UserHandler) profile(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetEmailFromContext(r.Context())
	if !ok {
		common.RespondError(w, common.ErrUnauthorized)
		return
	}

	user, err := h.userService.Profile(r.Context(), email)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.Respond(w, http.StatusOK, user, "User profile fetched successfully")
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	result, err := h.userService.List(r.Context(), page, limit)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.Respond(w, http.StatusOK, result, "Users fetched successfully")
}

func (h *UserHandler) topUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	result, err := h.statsService.TopResearchers(r.Context(), page, limit)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.Respond(w, http.StatusOK, result, "Top users fetched successfully")
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if user == nil {
		common.RespondNotFound(w, "User not found")
		return
	}
	common.Respond(w, http.StatusOK, user, "User details fetched successfully")
}

func (h *UserHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, common.ValidationError("Invalid request payload: "+err.Error()))
		return
	}

	user, err := h.userService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if user == nil {
		common.RespondNotFound(w, "User not found")
		return
	}
	common.Respond(w, http.StatusOK, user, "User updated successfully")
}

func (h *UserHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if user == nil {
		common.RespondNotFound(w, "User not found")
		return
	}
	common.Respond(w, http.StatusOK, user, "User deleted successfully")
}

func (h *UserHandler) restoreUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Restore(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if user == nil {
		common.RespondNotFound(w, "User not found")
		return
	}
	common.Respond(w, http.StatusOK, user, "User restored successfully")
}
