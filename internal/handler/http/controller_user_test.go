package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-api-gate/internal/dispatch"
	"github.com/MKhiriev/go-api-gate/internal/store"
	"github.com/MKhiriev/go-api-gate/models"
)

func newUserContext(method, path, body string, params ...string) (*dispatch.Context, *httptest.ResponseRecorder) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	return &dispatch.Context{Writer: rr, Request: req, Params: params}, rr
}

func TestUsersIndex_ReturnsList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockUsers := newTestHandler(t, ctrl)
	c, rr := newUserContext(http.MethodGet, "/users", "")

	mockUsers.EXPECT().ListUsers(gomock.Any()).Return([]models.User{
		{UserID: 1, Email: "a@example.com"},
		{UserID: 2, Email: "b@example.com"},
	}, nil)

	require.NoError(t, h.usersIndex(c))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success":true`)
	assert.Contains(t, rr.Body.String(), "a@example.com")
}

func TestUsersShow_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newTestHandler(t, ctrl)
	c, rr := newUserContext(http.MethodGet, "/users/abc", "", "abc")

	require.NoError(t, h.usersShow(c))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid user id")
}

func TestUsersShow_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockUsers := newTestHandler(t, ctrl)
	c, rr := newUserContext(http.MethodGet, "/users/404", "", "404")

	mockUsers.EXPECT().GetUser(gomock.Any(), int64(404)).
		Return(models.User{}, store.ErrUserNotFound)

	require.NoError(t, h.usersShow(c))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "user not found")
}

func TestUsersStore_Created(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockUsers := newTestHandler(t, ctrl)
	c, rr := newUserContext(http.MethodPost, "/users",
		`{"email":"new@example.com","password":"pw"}`)

	mockUsers.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
		Return(models.User{UserID: 3, Email: "new@example.com"}, nil)

	require.NoError(t, h.usersStore(c))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":3`)
}

func TestUsersStore_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockUsers := newTestHandler(t, ctrl)
	c, rr := newUserContext(http.MethodPost, "/users",
		`{"email":"taken@example.com","password":"pw"}`)

	mockUsers.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrEmailTaken)

	require.NoError(t, h.usersStore(c))

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "email already exists")
}

func TestUsersStore_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newTestHandler(t, ctrl)
	c, rr := newUserContext(http.MethodPost, "/users", "{not-json")

	require.NoError(t, h.usersStore(c))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid JSON was passed")
}

func TestUsersUpdate_UsesPathID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockUsers := newTestHandler(t, ctrl)
	c, rr := newUserContext(http.MethodPut, "/users/7",
		`{"email":"renamed@example.com"}`, "7")

	mockUsers.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, u models.User) (models.User, error) {
			assert.Equal(t, int64(7), u.UserID, "the path parameter must win over any body id")
			return u, nil
		},
	)

	require.NoError(t, h.usersUpdate(c))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUsersDelete_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockUsers := newTestHandler(t, ctrl)
	c, rr := newUserContext(http.MethodDelete, "/users/7", "", "7")

	mockUsers.EXPECT().DeleteUser(gomock.Any(), int64(7)).Return(nil)

	require.NoError(t, h.usersDelete(c))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success":true`)
}
