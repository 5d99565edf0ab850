package overview_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accessdesk/accessdesk/internal/overview"
	"github.com/accessdesk/accessdesk/internal/permissions"
	"github.com/accessdesk/accessdesk/internal/platform/store"
	"github.com/accessdesk/accessdesk/internal/roles"
	"github.com/accessdesk/accessdesk/internal/users"
)

func TestSummaryCountsCollections(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	userSvc := users.NewService(st)
	roleSvc := roles.NewService(st)
	permSvc := permissions.NewService(st)
	require.NoError(t, roleSvc.EnsureSeeded(ctx))
	require.NoError(t, permSvc.EnsureSeeded(ctx))

	_, err := userSvc.Create(ctx, users.Draft{Name: "Alice", Email: "alice@x.com"})
	require.NoError(t, err)
	_, err = roleSvc.Create(ctx, roles.Draft{Name: "QA"})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	r.Route("/api/v1/overview", overview.NewHandler(logger, userSvc, roleSvc, permSvc).MountRoutes)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/api/v1/overview/", nil))

	require.Equal(t, http.StatusOK, res.Code)

	var envelope struct {
		Data overview.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	assert.Equal(t, 1, envelope.Data.Users)
	assert.Equal(t, 4, envelope.Data.Roles)
	assert.Equal(t, 3, envelope.Data.DefaultRoles)
	assert.Equal(t, 4, envelope.Data.Permissions)
}
