package handler

import (
	"encoding/json"
	"net/http"

	"crackthechain/internal/api/middleware"
	"crackthechain/internal/app/service"
	"crackthechain/internal/common"
	"crackthechain/internal/common/security"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/signin", h.signin)
	r.Post("/request-reset-password", h.requestResetPassword)

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Get("/verify-email", h.verifyEmail)
		authed.Post("/reset-password", h.resetPassword)
	})
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, common.ValidationError("Invalid request payload: "+err.Error()))
		return
	}

	resp, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.Respond(w, http.StatusOK, resp, "Signup successfully")
}

func (h *AuthHandler) signin(w http.ResponseWriter, r *http.Request) {
	var req service.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, common.ValidationError("Invalid request payload: "+err.Error()))
		return
	}

	resp, err := h.authService.Signin(r.Context(), req)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.Respond(w, http.StatusOK, resp, "Login successful")
}

func (h *AuthHandler) requestResetPassword(w http.ResponseWriter, r *http.Request) {
	var req service.RequestResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, common.ValidationError("Invalid request payload: "+err.Error()))
		return
	}

	if err := h.authService.RequestResetPassword(r.Context(), req.Email); err != nil {
		common.RespondError(w, err)
		return
	}
	common.Respond(w, http.StatusOK, nil, "Password reset requested successfully")
}

func (h *AuthHandler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondError(w, common.ErrUnauthorized)
		return
	}

	user, err := h.authService.VerifyEmail(r.Context(), uid)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if user == nil {
		common.RespondNotFound(w, "User not found")
		return
	}
	common.Respond(w, http.StatusOK, user, "Email verified successfully")
}

func (h *AuthHandler) resetPassword(w http.ResponseWriter, r *http.Request) {
	claim, _ := middleware.GetClaimFromContext(r.Context())
	if claim != security.ClaimResetPassword {
		common.RespondError(w, common.TokenError("Invalid token claim"))
		return
	}
	uid, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondError(w, common.ErrUnauthorized)
		return
	}

	var req service.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, common.ValidationError("Invalid request payload: "+err.Error()))
		return
	}

	if err := h.authService.ResetPassword(r.Context(), uid, req.Password); err != nil {
		common.RespondError(w, err)
		return
	}
	common.Respond(w, http.StatusOK, nil, "Password reset successfully")
}
