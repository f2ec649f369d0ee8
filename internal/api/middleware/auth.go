package middleware

import (
	"context"
	"net/http"

	"crackthechain/internal/common"
	"crackthechain/internal/common/security"
	"crackthechain/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserEmailCtxKey contextKey = "userEmail"
	UserIDCtxKey    contextKey = "userID"
	UserClaimCtxKey contextKey = "userClaim"
)

// TokenFromQuery copies a ?token= query parameter into the Authorization
// header before the JWT verifier runs. Email links (verify-email, reset
// password) deliver the token this way.
func TokenFromQuery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			if token := r.URL.Query().Get("token"); token != "" {
				r.Header.Set("Authorization", "Bearer "+token)
			}
		}
		next.ServeHTTP(w, r)
	})
}

func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			if err == jwtauth.ErrNoTokenFound || token == nil {
				common.RespondError(w, common.ValidationError("Provide Authorization token"))
			} else {
				common.RespondError(w, common.TokenError("Token is expired"))
			}
			return
		}

		email, err := security.GetEmailFromClaims(claims)
		if err != nil {
			common.RespondError(w, common.TokenError("Invalid token claims"))
			return
		}
		uid, err := security.GetUIDFromClaims(claims)
		if err != nil {
			common.RespondError(w, common.TokenError("Invalid token claims"))
			return
		}
		claim, err := security.GetClaimFromClaims(claims)
		if err != nil {
			common.RespondError(w, common.TokenError("Invalid token claims"))
			return
		}

		ctx := context.WithValue(r.Context(), UserEmailCtxKey, email)
		ctx = context.WithValue(ctx, UserIDCtxKey, uid)
		ctx = context.WithValue(ctx, UserClaimCtxKey, claim)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claim, ok := r.Context().Value(UserClaimCtxKey).(string)
		if !ok || claim != model.LoginTypeAdmin {
			common.RespondError(w, common.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailCtxKey).(string)
	return email, ok
}

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(UserIDCtxKey).(string)
	return uid, ok
}

func GetClaimFromContext(ctx context.Context) (string, bool) {
	claim, ok := ctx.Value(UserClaimCtxKey).(string)
	return claim, ok
}
