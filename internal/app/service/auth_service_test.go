package service

import (
	"context"
	"os"
	"testing"
	"time"

	"crackthechain/internal/common"
	"crackthechain/internal/common/security"
	"crackthechain/internal/domain/model"
	"crackthechain/internal/platform/config"
	"crackthechain/internal/platform/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.AppConfig = &config.Config{
		JWTKey:          []byte("test-secret"),
		SessionTokenExp: 72 * time.Hour,
		ResetTokenExp:   24 * time.Hour,
		FrontendWebURL:  "http://localhost:3000",
		BackendURL:      "http://localhost:8080",
	}
	security.InitJWT()
	os.Exit(m.Run())
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, page, limit int) ([]model.User, int, error) {
	args := m.Called(ctx, page, limit)
	var users []model.User
	if v := args.Get(0); v != nil {
		users = v.([]model.User)
	}
	return users, args.Int(1), args.Error(2)
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type mockAuthCodeRepo struct {
	mock.Mock
}

func (m *mockAuthCodeRepo) FindByCode(ctx context.Context, code string) (*model.AuthCode, error) {
	args := m.Called(ctx, code)
	if ac := args.Get(0); ac != nil {
		return ac.(*model.AuthCode), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMailQueue struct {
	mock.Mock
}

func (m *mockMailQueue) Enqueue(ctx context.Context, msg mailer.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func validSignup() SignupRequest {
	return SignupRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "s3cret",
		AuthCode:  "INVITE-1",
		LoginType: model.LoginTypeResearcher,
	}
}

func TestSignupHappyPath(t *testing.T) {
	userRepo := new(mockUserRepo)
	authCodeRepo := new(mockAuthCodeRepo)
	mailQueue := new(mockMailQueue)
	svc := NewAuthService(userRepo, authCodeRepo, mailQueue)

	userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, common.ErrNotFound)
	authCodeRepo.On("FindByCode", mock.Anything, "INVITE-1").Return(&model.AuthCode{AuthCode: "INVITE-1"}, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
	mailQueue.On("Enqueue", mock.Anything, mock.MatchedBy(func(msg mailer.Message) bool {
		return msg.To == "ada@example.com" && msg.Subject == mailer.SubjectVerifyEmail
	})).Return(nil)

	resp, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.JWTToken)

	created := userRepo.Calls[1].Arguments.Get(1).(*model.User)
	assert.NotEqual(t, "s3cret", created.Password, "password must be stored hashed")
	assert.False(t, created.IsVerified)
	userRepo.AssertExpectations(t)
	mailQueue.AssertExpectations(t)
}

func TestSignupRejectsExistingUser(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, new(mockAuthCodeRepo), new(mockMailQueue))

	userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(&model.User{Email: "ada@example.com"}, nil)

	_, err := svc.Signup(context.Background(), validSignup())
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.EqualError(t, err, "User already exists")
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignupRejectsUnknownAuthCode(t *testing.T) {
	userRepo := new(mockUserRepo)
	authCodeRepo := new(mockAuthCodeRepo)
	svc := NewAuthService(userRepo, authCodeRepo, new(mockMailQueue))

	userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, common.ErrNotFound)
	authCodeRepo.On("FindByCode", mock.Anything, "INVITE-1").Return(nil, common.ErrNotFound)

	_, err := svc.Signup(context.Background(), validSignup())
	assert.EqualError(t, err, "Auth Code Not Valid")
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignupRejectsInvalidLoginType(t *testing.T) {
	svc := NewAuthService(new(mockUserRepo), new(mockAuthCodeRepo), new(mockMailQueue))

	req := validSignup()
	req.LoginType = "superuser"
	_, err := svc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestSignupSucceedsWhenEnqueueFails(t *testing.T) {
	userRepo := new(mockUserRepo)
	authCodeRepo := new(mockAuthCodeRepo)
	mailQueue := new(mockMailQueue)
	svc := NewAuthService(userRepo, authCodeRepo, mailQueue)

	userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, common.ErrNotFound)
	authCodeRepo.On("FindByCode", mock.Anything, "INVITE-1").Return(&model.AuthCode{AuthCode: "INVITE-1"}, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
	mailQueue.On("Enqueue", mock.Anything, mock.Anything).Return(assert.AnError)

	resp, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.JWTToken)
}

func TestSigninChecksLoginTypeAndPassword(t *testing.T) {
	hashed, err := security.HashPassword("s3cret")
	require.NoError(t, err)

	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, new(mockAuthCodeRepo), new(mockMailQueue))
	userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(&model.User{
		ID:        "u1",
		Email:     "ada@example.com",
		Password:  hashed,
		LoginType: model.LoginTypeResearcher,
	}, nil)

	_, err = svc.Signin(context.Background(), SigninRequest{
		Email: "ada@example.com", Password: "s3cret", LoginType: model.LoginTypeCompany,
	})
	assert.EqualError(t, err, "Invalid login type")

	_, err = svc.Signin(context.Background(), SigninRequest{
		Email: "ada@example.com", Password: "wrong", LoginType: model.LoginTypeResearcher,
	})
	assert.EqualError(t, err, "Invalid password")

	resp, err := svc.Signin(context.Background(), SigninRequest{
		Email: "ada@example.com", Password: "s3cret", LoginType: model.LoginTypeResearcher,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.JWTToken)
}

func TestSigninUnknownUser(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, new(mockAuthCodeRepo), new(mockMailQueue))
	userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, common.ErrNotFound)

	_, err := svc.Signin(context.Background(), SigninRequest{
		Email: "ghost@example.com", Password: "s3cret", LoginType: model.LoginTypeResearcher,
	})
	assert.EqualError(t, err, "User does not exist")
}

func TestRequestResetPasswordEnqueuesEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	mailQueue := new(mockMailQueue)
	svc := NewAuthService(userRepo, new(mockAuthCodeRepo), mailQueue)

	userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(&model.User{
		ID: "u1", Email: "ada@example.com", LoginType: model.LoginTypeResearcher,
	}, nil)
	mailQueue.On("Enqueue", mock.Anything, mock.MatchedBy(func(msg mailer.Message) bool {
		return msg.Subject == mailer.SubjectResetPassword
	})).Return(nil)

	err := svc.RequestResetPassword(context.Background(), "ada@example.com")
	require.NoError(t, err)
	mailQueue.AssertExpectations(t)
}

func TestVerifyEmailSetsFlag(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, new(mockAuthCodeRepo), new(mockMailQueue))

	userRepo.On("FindByID", mock.Anything, "u1").Return(&model.User{ID: "u1", Email: "ada@example.com"}, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.ID == "u1" && u.IsVerified
	})).Return(nil)

	user, err := svc.VerifyEmail(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.True(t, user.IsVerified)
	assert.Empty(t, user.Password)
}

func TestVerifyEmailMissingUserReturnsNil(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, new(mockAuthCodeRepo), new(mockMailQueue))
	userRepo.On("FindByID", mock.Anything, "gone").Return(nil, common.ErrNotFound)

	user, err := svc.VerifyEmail(context.Background(), "gone")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestResetPasswordRehashes(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, new(mockAuthCodeRepo), new(mockMailQueue))

	userRepo.On("FindByID", mock.Anything, "u1").Return(&model.User{ID: "u1", Password: "old-hash"}, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Password != "old-hash" && security.CheckPasswordHash("n3w-secret", u.Password)
	})).Return(nil)

	err := svc.ResetPassword(context.Background(), "u1", "n3w-secret")
	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}
