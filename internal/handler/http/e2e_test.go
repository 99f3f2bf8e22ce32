package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-api-gate/internal/app"
	"github.com/MKhiriev/go-api-gate/internal/config"
	"github.com/MKhiriev/go-api-gate/internal/logger"
	"github.com/MKhiriev/go-api-gate/internal/mock"
	"github.com/MKhiriev/go-api-gate/internal/service"
	"github.com/MKhiriev/go-api-gate/internal/store"
	"github.com/MKhiriev/go-api-gate/internal/token"
	"github.com/MKhiriev/go-api-gate/models"
)

const e2eSignKey = "e2e-sign-key"

// newE2EServer starts the full pipeline — application shell, dispatcher,
// middleware, controllers, real services — on top of a mocked repository
// backed by an in-memory user table.
func newE2EServer(t *testing.T, ctrl *gomock.Controller) *httptest.Server {
	t.Helper()

	users := map[int64]models.User{}
	byEmail := map[string]int64{}
	var nextID int64

	mockRepo := mock.NewMockUserRepository(ctrl)
	mockRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			if _, taken := byEmail[u.Email]; taken {
				return models.User{}, store.ErrEmailTaken
			}
			nextID++
			u.UserID = nextID
			u.CreatedAt = time.Now().UTC()
			users[u.UserID] = u
			byEmail[u.Email] = u.UserID
			return u, nil
		},
	)
	mockRepo.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(
		func(_ context.Context, email string) (models.User, error) {
			id, ok := byEmail[email]
			if !ok {
				return models.User{}, store.ErrUserNotFound
			}
			return users[id], nil
		},
	)
	mockRepo.EXPECT().FindUserByID(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(
		func(_ context.Context, id int64) (models.User, error) {
			u, ok := users[id]
			if !ok {
				return models.User{}, store.ErrUserNotFound
			}
			return u, nil
		},
	)
	mockRepo.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			current, ok := users[u.UserID]
			if !ok {
				return models.User{}, store.ErrUserNotFound
			}
			// an empty hash means the caller did not supply a new password
			if u.PasswordHash == "" {
				u.PasswordHash = current.PasswordHash
				u.PasswordSalt = current.PasswordSalt
			}
			u.CreatedAt = current.CreatedAt
			delete(byEmail, current.Email)
			byEmail[u.Email] = u.UserID
			users[u.UserID] = u
			return u, nil
		},
	)
	mockRepo.EXPECT().ListUsers(gomock.Any()).AnyTimes().DoAndReturn(
		func(_ context.Context) ([]models.User, error) {
			all := make([]models.User, 0, len(users))
			for _, u := range users {
				all = append(all, u)
			}
			return all, nil
		},
	)
	mockRepo.EXPECT().DeleteUser(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(
		func(_ context.Context, id int64) error {
			u, ok := users[id]
			if !ok {
				return store.ErrUserNotFound
			}
			delete(byEmail, u.Email)
			delete(users, id)
			return nil
		},
	)

	cfg := &config.StructuredConfig{
		App: config.App{
			TokenSignKey: e2eSignKey,
			TokenTTL:     time.Hour,
			Timezone:     "UTC",
		},
		CORS: config.CORS{
			AllowOrigin:  "*",
			AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
			AllowHeaders: "Content-Type, Authorization",
		},
	}

	log := logger.Nop()
	a, err := app.New(cfg, log)
	require.NoError(t, err)

	services := &service.Services{
		AuthService: service.NewAuthService(mockRepo, cfg.App, log),
		UserService: service.NewUserService(mockRepo, log),
	}
	NewHandler(services, log).Init(a)

	srv := httptest.NewServer(a)
	t.Cleanup(srv.Close)
	return srv
}

func TestE2E_RegisterLoginAndProtectedAccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := newE2EServer(t, ctrl)
	client := resty.New().SetBaseURL(srv.URL)

	// register
	var registerEnvelope struct {
		Success bool                 `json:"success"`
		Data    models.TokenResponse `json:"data"`
	}
	resp, err := client.R().
		SetBody(map[string]string{"email": "user@example.com", "password": "super-secret"}).
		SetResult(&registerEnvelope).
		Post("/auth/register")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())
	require.True(t, registerEnvelope.Success)
	require.NotEmpty(t, registerEnvelope.Data.Token)
	assert.Empty(t, registerEnvelope.Data.User.PasswordHash)

	// protected list with the issued token
	resp, err = client.R().
		SetHeader("Authorization", "Bearer "+registerEnvelope.Data.Token).
		Get("/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), "user@example.com")

	// login with the same credentials
	var loginEnvelope struct {
		Data models.TokenResponse `json:"data"`
	}
	resp, err = client.R().
		SetBody(map[string]string{"email": "user@example.com", "password": "super-secret"}).
		SetResult(&loginEnvelope).
		Post("/auth/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.NotEmpty(t, loginEnvelope.Data.Token)

	// wrong password
	resp, err = client.R().
		SetBody(map[string]string{"email": "user@example.com", "password": "wrong"}).
		Post("/auth/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
}

func TestE2E_ProtectedRouteRejectsBadTokens(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := newE2EServer(t, ctrl)
	client := resty.New().SetBaseURL(srv.URL)

	// no token at all
	resp, err := client.R().Get("/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	// tampered token: flip a character in a valid one
	valid, err := token.Encode(token.Claims{"sub": 1}, e2eSignKey, time.Hour)
	require.NoError(t, err)
	tampered := []byte(valid)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}
	resp, err = client.R().
		SetHeader("Authorization", "Bearer "+string(tampered)).
		Get("/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	// expired token: zero lifetime makes it invalid from the moment of issue
	expired, err := token.Encode(token.Claims{"sub": 1}, e2eSignKey, 0)
	require.NoError(t, err)
	resp, err = client.R().
		SetHeader("Authorization", "Bearer "+expired).
		Get("/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	// token signed with a different key
	foreign, err := token.Encode(token.Claims{"sub": 1}, "other-key", time.Hour)
	require.NoError(t, err)
	resp, err = client.R().
		SetHeader("Authorization", "Bearer "+foreign).
		Get("/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
}

func TestE2E_UserResourceCRUD(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := newE2EServer(t, ctrl)
	client := resty.New().SetBaseURL(srv.URL)

	// bootstrap an account to authenticate with
	var registerEnvelope struct {
		Data models.TokenResponse `json:"data"`
	}
	resp, err := client.R().
		SetBody(map[string]string{"email": "admin@example.com", "password": "pw"}).
		SetResult(&registerEnvelope).
		Post("/auth/register")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())
	auth := client.R().SetHeader("Authorization", "Bearer "+registerEnvelope.Data.Token)

	// create
	var createEnvelope struct {
		Data models.User `json:"data"`
	}
	resp, err = auth.
		SetBody(map[string]string{"email": "second@example.com", "password": "pw", "name": "Second"}).
		SetResult(&createEnvelope).
		Post("/users")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())
	created := createEnvelope.Data
	require.NotZero(t, created.UserID)

	// show
	resp, err = client.R().
		SetHeader("Authorization", "Bearer "+registerEnvelope.Data.Token).
		Get("/users/" + itoa(created.UserID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), "second@example.com")

	// update
	resp, err = client.R().
		SetHeader("Authorization", "Bearer "+registerEnvelope.Data.Token).
		SetBody(map[string]string{"email": "renamed@example.com"}).
		Put("/users/" + itoa(created.UserID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), "renamed@example.com")

	// delete
	resp, err = client.R().
		SetHeader("Authorization", "Bearer "+registerEnvelope.Data.Token).
		Delete("/users/" + itoa(created.UserID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	// show after delete
	resp, err = client.R().
		SetHeader("Authorization", "Bearer "+registerEnvelope.Data.Token).
		Get("/users/" + itoa(created.UserID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())

	// update after delete
	resp, err = client.R().
		SetHeader("Authorization", "Bearer "+registerEnvelope.Data.Token).
		SetBody(map[string]string{"email": "ghost@example.com"}).
		Put("/users/" + itoa(created.UserID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestE2E_EnvelopeAndRoutingBasics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := newE2EServer(t, ctrl)
	client := resty.New().SetBaseURL(srv.URL)

	// public hello route
	resp, err := client.R().Get("/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.JSONEq(t,
		`{"success":true,"message":"Success","data":{"message":"Hello World!"}}`,
		string(resp.Body()))

	// unknown route yields the failure envelope
	resp, err = client.R().Get("/definitely/not/here")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), `"success":false`)

	// preflight short-circuits with CORS headers and an empty body
	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/users", nil)
	require.NoError(t, err)
	raw, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer raw.Body.Close()
	assert.Equal(t, http.StatusOK, raw.StatusCode)
	assert.Equal(t, "*", raw.Header.Get("Access-Control-Allow-Origin"))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
