package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-api-gate/internal/dispatch"
	"github.com/MKhiriev/go-api-gate/internal/logger"
	"github.com/MKhiriev/go-api-gate/internal/mock"
	"github.com/MKhiriev/go-api-gate/internal/service"
	"github.com/MKhiriev/go-api-gate/internal/token"
	"github.com/MKhiriev/go-api-gate/internal/utils"
)

func newTestHandler(t *testing.T, ctrl *gomock.Controller) (*Handler, *mock.MockAuthService, *mock.MockUserService) {
	t.Helper()
	mockAuth := mock.NewMockAuthService(ctrl)
	mockUsers := mock.NewMockUserService(ctrl)

	h := NewHandler(&service.Services{
		AuthService: mockAuth,
		UserService: mockUsers,
	}, logger.Nop())

	return h, mockAuth, mockUsers
}

func newAuthContext(authHeader string) (*dispatch.Context, *httptest.ResponseRecorder) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return &dispatch.Context{Writer: rr, Request: req}, rr
}

func TestAuthMiddleware_MissingHeaderHalts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newTestHandler(t, ctrl)
	c, rr := newAuthContext("")

	proceed := h.authMiddleware().Handle(c)

	assert.False(t, proceed)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthMiddleware_NonBearerHeaderHalts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newTestHandler(t, ctrl)
	c, rr := newAuthContext("Basic dXNlcjpwYXNz")

	proceed := h.authMiddleware().Handle(c)

	assert.False(t, proceed)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthMiddleware_InvalidTokenHalts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _ := newTestHandler(t, ctrl)
	c, rr := newAuthContext("Bearer bad-token")

	mockAuth.EXPECT().VerifyToken(gomock.Any(), "bad-token").
		Return(nil, service.ErrTokenIsExpiredOrInvalid)

	proceed := h.authMiddleware().Handle(c)

	assert.False(t, proceed)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "token is expired or invalid")
}

func TestAuthMiddleware_ValidTokenStoresClaims(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _ := newTestHandler(t, ctrl)
	c, rr := newAuthContext("Bearer good-token")

	mockAuth.EXPECT().VerifyToken(gomock.Any(), "good-token").
		Return(token.Claims{"sub": float64(7), "email": "user@example.com"}, nil)

	proceed := h.authMiddleware().Handle(c)

	require.True(t, proceed)
	assert.Empty(t, rr.Body.String(), "a passing middleware must not write a response")

	claims, ok := utils.GetClaimsFromContext(c.Request.Context())
	require.True(t, ok, "claims must be stored in the request context")
	assert.Equal(t, "user@example.com", claims["email"])

	subject, ok := utils.GetSubjectFromContext(c.Request.Context())
	require.True(t, ok)
	assert.Equal(t, "7", subject)
}

func TestAuthMiddleware_BearerSchemeIsCaseInsensitive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _ := newTestHandler(t, ctrl)
	c, _ := newAuthContext("bearer lower-token")

	mockAuth.EXPECT().VerifyToken(gomock.Any(), "lower-token").
		Return(token.Claims{}, nil)

	assert.True(t, h.authMiddleware().Handle(c))
}
