// Package overview reports a cross-collection summary for the admin
// dashboard landing view.
package overview

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/accessdesk/accessdesk/internal/permissions"
	"github.com/accessdesk/accessdesk/internal/platform/httpx"
	"github.com/accessdesk/accessdesk/internal/roles"
	"github.com/accessdesk/accessdesk/internal/users"
)

// Summary counts entities across the three collections.
type Summary struct {
	Users        int `json:"users"`
	Roles        int `json:"roles"`
	DefaultRoles int `json:"defaultRoles"`
	Permissions  int `json:"permissions"`
}

// Handler serves the summary endpoint.
type Handler struct {
	logger      *slog.Logger
	users       *users.Service
	roles       *roles.Service
	permissions *permissions.Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, u *users.Service, r *roles.Service, p *permissions.Service) *Handler {
	return &Handler{logger: logger, users: u, roles: r, permissions: p}
}

// MountRoutes registers the overview route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.summary)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	var summary Summary

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		all, err := h.users.List(ctx)
		if err != nil {
			return err
		}
		summary.Users = len(all)
		return nil
	})
	g.Go(func() error {
		all, err := h.roles.List(ctx)
		if err != nil {
			return err
		}
		summary.Roles = len(all)
		for _, role := range all {
			if role.IsDefault {
				summary.DefaultRoles++
			}
		}
		return nil
	})
	g.Go(func() error {
		all, err := h.permissions.List(ctx)
		if err != nil {
			return err
		}
		summary.Permissions = len(all)
		return nil
	})
	if err := g.Wait(); err != nil {
		h.logger.Error("overview summary", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w, http.StatusOK, summary)
}
