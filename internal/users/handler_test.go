package users_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accessdesk/accessdesk/internal/platform/store"
	"github.com/accessdesk/accessdesk/internal/users"
)

func newRouter(t *testing.T) (chi.Router, *users.Service) {
	t.Helper()
	svc := users.NewService(store.NewMemoryStore())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	r.Route("/api/v1/users", users.NewHandler(logger, svc).MountRoutes)
	return r, svc
}

func TestCreateUserEndpoint(t *testing.T) {
	router, _ := newRouter(t)

	body := strings.NewReader(`{"name":"Bob","email":"bob@x.com","role":"Viewer"}`)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/api/v1/users/", body))

	require.Equal(t, http.StatusCreated, res.Code)

	var envelope struct {
		Status string     `json:"status"`
		Data   users.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	assert.Equal(t, "success", envelope.Status)
	assert.Equal(t, "bob@x.com", envelope.Data.Email)
	assert.Positive(t, envelope.Data.ID)
}

func TestCreateUserRejectsInvalidEmail(t *testing.T) {
	router, _ := newRouter(t)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/api/v1/users/", strings.NewReader(`{"name":"Bob","email":"not-an-email"}`)))

	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestCreateUserDuplicateEmailReturns400(t *testing.T) {
	router, svc := newRouter(t)

	_, err := svc.Create(context.Background(), users.Draft{Name: "Bob", Email: "bob@x.com"})
	require.NoError(t, err)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/api/v1/users/", strings.NewReader(`{"name":"Bob2","email":"bob@x.com"}`)))

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "duplicate email")

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpdateUserEndpoint(t *testing.T) {
	router, svc := newRouter(t)

	created, err := svc.Create(context.Background(), users.Draft{Name: "Bob", Email: "bob@x.com"})
	require.NoError(t, err)

	body := strings.NewReader(`{"name":"Robert"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/"+strconv.FormatInt(created.ID, 10), body)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)

	var envelope struct {
		Data users.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	assert.Equal(t, "Robert", envelope.Data.Name)
	assert.Equal(t, "bob@x.com", envelope.Data.Email)
}

func TestUpdateUnknownUserReturns404(t *testing.T) {
	router, _ := newRouter(t)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodPut, "/api/v1/users/42", strings.NewReader(`{"name":"Ghost"}`)))

	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestDeleteUserEndpoint(t *testing.T) {
	router, svc := newRouter(t)

	created, err := svc.Create(context.Background(), users.Draft{Name: "Bob", Email: "bob@x.com"})
	require.NoError(t, err)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+strconv.FormatInt(created.ID, 10), nil))

	require.Equal(t, http.StatusOK, res.Code)

	var envelope struct {
		Data users.DeleteAck `json:"data"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	assert.Equal(t, created.ID, envelope.Data.ID)
}
