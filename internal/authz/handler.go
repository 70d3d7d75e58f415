package authz

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/warebase/warebase/internal/platform/httpx"
	"github.com/warebase/warebase/internal/shared"
)

// Handler wires the admin endpoints for user and permission management.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	guard     Guard
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard Guard) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		guard:     guard,
		validator: validator.New(),
	}
}

// MountRoutes registers admin routes on the provided router. Guards are
// attached per-route at registration time.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.guard.Require(shared.PermViewUsers)).Get("/users", h.listUsers)
	r.With(h.guard.Require(shared.PermViewPermissions)).Get("/permissions", h.listPermissions)
	r.With(h.guard.Require(shared.PermGrantPermissions)).Post("/grant", h.grantPermission)
}

type userResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse{UserID: u.ID, Username: u.Username})
	}
	httpx.JSON(w, http.StatusOK, out)
}

type permissionResponse struct {
	PermissionID int64  `json:"permission_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
}

func (h *Handler) listPermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.service.ListPermissions(r.Context())
	if err != nil {
		h.logger.Error("list permissions", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]permissionResponse, 0, len(perms))
	for _, p := range perms {
		out = append(out, permissionResponse{PermissionID: p.ID, Name: p.Name, Description: p.Description})
	}
	httpx.JSON(w, http.StatusOK, out)
}

type grantRequest struct {
	Username   string `json:"username" validate:"required"`
	Permission string `json:"permission" validate:"required"`
}

func (h *Handler) grantPermission(w http.ResponseWriter, r *http.Request) {
	var req grantRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "username and permission are required")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "username and permission are required")
		return
	}
	if err := h.service.GrantPermission(r.Context(), req.Username, req.Permission); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
