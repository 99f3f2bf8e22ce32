package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-api-gate/internal/config"
	"github.com/MKhiriev/go-api-gate/internal/logger"
	"github.com/MKhiriev/go-api-gate/internal/mock"
	"github.com/MKhiriev/go-api-gate/internal/store"
	"github.com/MKhiriev/go-api-gate/internal/token"
	"github.com/MKhiriev/go-api-gate/models"
)

func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (AuthService, *mock.MockUserRepository) {
	t.Helper()
	mockRepo := mock.NewMockUserRepository(ctrl)

	svc := NewAuthService(mockRepo, config.App{
		TokenSignKey: "test-sign-key",
		TokenTTL:     time.Hour,
	}, logger.Nop())

	return svc, mockRepo
}

// ---- Register ----

func TestAuthService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Empty(t, u.Password, "plaintext password must be cleared before persistence")
			assert.NotEmpty(t, u.PasswordHash)
			assert.NotEmpty(t, u.PasswordSalt)
			u.UserID = 1
			return u, nil
		},
	)

	registered, err := svc.Register(ctx, models.User{
		Email:    "user@example.com",
		Password: "super-secret",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), registered.UserID)
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.Register(context.Background(), models.User{})

	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "email")
	assert.Contains(t, validationErr.Fields, "password")
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrEmailTaken)

	_, err := svc.Register(ctx, models.User{Email: "taken@example.com", Password: "pw"})

	require.ErrorIs(t, err, store.ErrEmailTaken)
}

// ---- Login ----

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	salt, err := newSalt()
	require.NoError(t, err)
	stored := models.User{
		UserID:       7,
		Email:        "user@example.com",
		PasswordSalt: salt,
		PasswordHash: hashPassword("super-secret", salt),
	}

	mockRepo.EXPECT().FindUserByEmail(ctx, "user@example.com").Return(stored, nil)

	loggedIn, err := svc.Login(ctx, models.User{
		Email:    "user@example.com",
		Password: "super-secret",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), loggedIn.UserID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	salt, err := newSalt()
	require.NoError(t, err)
	stored := models.User{
		Email:        "user@example.com",
		PasswordSalt: salt,
		PasswordHash: hashPassword("right-password", salt),
	}

	mockRepo.EXPECT().FindUserByEmail(ctx, "user@example.com").Return(stored, nil)

	_, err = svc.Login(ctx, models.User{
		Email:    "user@example.com",
		Password: "wrong-password",
	})

	require.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().FindUserByEmail(ctx, "ghost@example.com").
		Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.Login(ctx, models.User{Email: "ghost@example.com", Password: "pw"})

	require.ErrorIs(t, err, store.ErrUserNotFound)
}

// ---- Tokens ----

func TestAuthService_IssueAndVerifyToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	tokenString, err := svc.IssueToken(ctx, models.User{UserID: 7, Email: "user@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := svc.VerifyToken(ctx, tokenString)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims["sub"])
	assert.Equal(t, "user@example.com", claims["email"])
}

func TestAuthService_VerifyToken_InvalidIsNormalised(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.VerifyToken(context.Background(), "not.a.token")

	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
	assert.True(t, errors.Is(err, token.ErrInvalidEncoding) || errors.Is(err, token.ErrMalformedToken))
}

func TestHashPassword_IsDeterministicPerSalt(t *testing.T) {
	first := hashPassword("password", "salt-a")
	second := hashPassword("password", "salt-a")
	other := hashPassword("password", "salt-b")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}
