package roles_test

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
	"github.com/accessdesk/accessdesk/internal/roles"
)

func newRouter(t *testing.T) (chi.Router, *roles.Service) {
	t.Helper()
	svc := roles.NewService(store.NewMemoryStore())
	require.NoError(t, svc.EnsureSeeded(context.Background()))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := roles.NewHandler(logger, svc)
	r := chi.NewRouter()
	r.Route("/api/v1/roles", handler.MountRoutes)
	return r, svc
}

func TestListRolesEnvelope(t *testing.T) {
	router, _ := newRouter(t)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/api/v1/roles/", nil))

	require.Equal(t, http.StatusOK, res.Code)

	var envelope struct {
		Status    string       `json:"status"`
		Data      []roles.Role `json:"data"`
		RequestID string       `json:"requestId"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	assert.Equal(t, "success", envelope.Status)
	assert.NotEmpty(t, envelope.RequestID)
	assert.Len(t, envelope.Data, 3)
}

func TestCreateRoleEndpoint(t *testing.T) {
	router, _ := newRouter(t)

	body := strings.NewReader(`{"name":"QA","description":"quality","permissions":["view_users"]}`)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/api/v1/roles/", body))

	require.Equal(t, http.StatusCreated, res.Code)

	var envelope struct {
		Data roles.Role `json:"data"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	assert.Equal(t, "QA", envelope.Data.Name)
	assert.False(t, envelope.Data.IsDefault)
}

func TestCreateRoleDuplicateNameReturns400(t *testing.T) {
	router, _ := newRouter(t)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/api/v1/roles/", strings.NewReader(`{"name":"ADMIN"}`)))

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "duplicate name")
}

func TestUpdateDefaultRoleReturns403(t *testing.T) {
	router, _ := newRouter(t)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodPut, "/api/v1/roles/1", strings.NewReader(`{"name":"Root"}`)))

	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestUpdateRejectsUnknownPatchFields(t *testing.T) {
	router, svc := newRouter(t)

	created, err := svc.Create(context.Background(), roles.Draft{Name: "QA"})
	require.NoError(t, err)

	body := strings.NewReader(`{"name":"QA Lead","isDefault":true}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/roles/"+itoa(created.ID), body)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestDeleteRoleEndpoint(t *testing.T) {
	router, svc := newRouter(t)

	created, err := svc.Create(context.Background(), roles.Draft{Name: "QA"})
	require.NoError(t, err)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodDelete, "/api/v1/roles/"+itoa(created.ID), nil))

	require.Equal(t, http.StatusOK, res.Code)

	var envelope struct {
		Data roles.DeleteAck `json:"data"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	assert.Equal(t, created.ID, envelope.Data.ID)
	assert.False(t, envelope.Data.DeletedAt.IsZero())
}

func TestDeleteUnknownRoleReturns404(t *testing.T) {
	router, _ := newRouter(t)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodDelete, "/api/v1/roles/999", nil))

	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestPermissionCatalogEndpoint(t *testing.T) {
	router, _ := newRouter(t)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/api/v1/roles/catalog", nil))

	require.Equal(t, http.StatusOK, res.Code)

	var envelope struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 8)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
