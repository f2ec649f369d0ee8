package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crackthechain/internal/common"
	"crackthechain/internal/common/security"
	"crackthechain/internal/domain/model"
	"crackthechain/internal/domain/repository"
	"crackthechain/internal/platform/config"
	"crackthechain/internal/platform/mailer"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MailQueue is where services drop outbound email; the mail worker drains it.
type MailQueue interface {
	Enqueue(ctx context.Context, msg mailer.Message) error
}

type AuthService struct {
	userRepo     repository.UserRepository
	authCodeRepo repository.AuthCodeRepository
	mailQueue    MailQueue
}

func NewAuthService(userRepo repository.UserRepository, authCodeRepo repository.AuthCodeRepository, mailQueue MailQueue) *AuthService {
	return &AuthService{userRepo: userRepo, authCodeRepo: authCodeRepo, mailQueue: mailQueue}
}

type SignupRequest struct {
	CompanyName  string `json:"companyName"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	ProfilePhoto string `json:"profilePhoto"`
	AuthCode     string `json:"authCode"`
	LoginType    string `json:"loginType"`
}

type SigninRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	LoginType string `json:"loginType"`
}

type RequestResetPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

type AuthResponse struct {
	JWTToken string `json:"jwtToken"`
}

func validLoginType(loginType string) bool {
	switch loginType {
	case model.LoginTypeResearcher, model.LoginTypeCompany, model.LoginTypeAdmin:
		return true
	}
	return false
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" || req.AuthCode == "" {
		return nil, common.ValidationError("Email, password and auth code are required")
	}
	if !validLoginType(req.LoginType) {
		return nil, common.ValidationError("Invalid login type")
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, common.ValidationError("User already exists")
	}

	if _, err := s.authCodeRepo.FindByCode(ctx, req.AuthCode); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ValidationError("Auth Code Not Valid")
		}
		return nil, fmt.Errorf("failed to check auth code: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.NewString(),
		CompanyName:  req.CompanyName,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     hashedPassword,
		ProfilePhoto: req.ProfilePhoto,
		AuthCode:     req.AuthCode,
		LoginType:    req.LoginType,
		About:        model.StringList{},
		SocialLink:   model.StringList{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := security.GenerateToken(user.Email, user.ID, user.LoginType, config.AppConfig.SessionTokenExp)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	// Delivery is asynchronous; the signup response does not wait on the
	// mail provider.
	if err := s.mailQueue.Enqueue(ctx, mailer.Message{
		To:      user.Email,
		Subject: mailer.SubjectVerifyEmail,
		HTML:    mailer.SignupEmailHTML(token),
	}); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("Failed to enqueue verification email")
	}

	return &AuthResponse{JWTToken: token}, nil
}

func (s *AuthService) Signin(ctx context.Context, req SigninRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.ValidationError("Email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ValidationError("User does not exist")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.LoginType != req.LoginType {
		return nil, common.ValidationError("Invalid login type")
	}
	if !security.CheckPasswordHash(req.Password, user.Password) {
		return nil, common.ValidationError("Invalid password")
	}

	token, err := security.GenerateToken(user.Email, user.ID, user.LoginType, config.AppConfig.SessionTokenExp)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{JWTToken: token}, nil
}

func (s *AuthService) RequestResetPassword(ctx context.Context, email string) error {
	if email == "" {
		return common.ValidationError("Email is required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ValidationError("User does not exist")
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	token, err := security.GenerateToken(user.Email, user.ID, security.ClaimResetPassword, config.AppConfig.ResetTokenExp)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	if err := s.mailQueue.Enqueue(ctx, mailer.Message{
		To:      user.Email,
		Subject: mailer.SubjectResetPassword,
		HTML:    mailer.ResetPasswordEmailHTML(token),
	}); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("Failed to enqueue reset password email")
	}
	return nil
}

// VerifyEmail marks the token's user as verified. A nil user means the id no
// longer resolves.
func (s *AuthService) VerifyEmail(ctx context.Context, uid string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.IsVerified = true
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}
	user.Password = ""
	return user, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, uid, password string) error {
	if password == "" {
		return common.ValidationError("Password is required")
	}

	user, err := s.userRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ValidationError("User does not exist")
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	hashedPassword, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashedPassword
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
