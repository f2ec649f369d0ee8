package security

import (
	"errors"
	"time"

	"crackthechain/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// ClaimResetPassword is the single-purpose claim carried by password-reset
// tokens; session tokens carry the user's login type instead.
const ClaimResetPassword = "resetPassword"

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateToken signs a bearer token carrying {email, uid, claim}.
func GenerateToken(email, uid, claim string, expiresIn time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"uid":   uid,
		"claim": claim,
		"exp":   time.Now().Add(expiresIn).Unix(),
		"iat":   time.Now().Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

func GetEmailFromClaims(claims map[string]interface{}) (string, error) {
	email, ok := claims["email"].(string)
	if !ok {
		return "", errors.New("email claim is missing or not a string")
	}
	return email, nil
}

func GetUIDFromClaims(claims map[string]interface{}) (string, error) {
	uid, ok := claims["uid"].(string)
	if !ok {
		return "", errors.New("uid claim is missing or not a string")
	}
	return uid, nil
}

func GetClaimFromClaims(claims map[string]interface{}) (string, error) {
	claim, ok := claims["claim"].(string)
	if !ok {
		return "", errors.New("claim is missing or not a string")
	}
	return claim, nil
}
