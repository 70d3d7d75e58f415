package authz

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/warebase/warebase/internal/platform/httpx"
	"github.com/warebase/warebase/internal/shared"
)

// PermissionSource yields the active permission set for a user. Satisfied by
// *Service; tests substitute fakes.
type PermissionSource interface {
	ActivePermissions(ctx context.Context, userID int64) (PermissionSet, error)
}

// Guard wires the authorization check onto protected routes. One permission
// name per attachment; the wrapped handler stays unaware of permission names.
type Guard struct {
	Perms  PermissionSource
	Logger *slog.Logger
}

// Require returns middleware enforcing the named permission.
//
// The authentication check runs before any permission lookup: an anonymous
// caller always gets 401, never 403. An authenticated caller lacking the
// permission gets 403 naming only the missing permission.
func (g Guard) Require(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := shared.SessionFromContext(r.Context())
			if sess == nil || !sess.Authenticated() {
				httpx.RespondError(w, shared.ErrUnauthenticated)
				return
			}
			perms, err := g.Perms.ActivePermissions(r.Context(), sess.UserID())
			if err != nil {
				if g.Logger != nil {
					g.Logger.Error("evaluate permissions", slog.Any("error", err))
				}
				httpx.Error(w, http.StatusInternalServerError, "internal error")
				return
			}
			if perms.Allows(permission) {
				next.ServeHTTP(w, r)
				return
			}
			httpx.RespondError(w, &shared.MissingPermissionError{Permission: permission})
		})
	}
}
