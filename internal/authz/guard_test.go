package authz

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/warebase/warebase/internal/shared"
)

type stubPerms struct {
	set PermissionSet
	err error
}

func (s stubPerms) ActivePermissions(ctx context.Context, userID int64) (PermissionSet, error) {
	return s.set, s.err
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}), &called
}

func authenticatedRequest(t *testing.T, userID int64) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	sess := &shared.Session{ID: "test-session"}
	sess.SetUser(userID)
	return req.WithContext(shared.ContextWithSession(req.Context(), sess))
}

func TestGuardAnonymousIsUnauthenticatedNeverForbidden(t *testing.T) {
	guard := Guard{Perms: stubPerms{set: NewPermissionSet(nil)}}
	next, called := okHandler()

	// No session at all.
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	res := httptest.NewRecorder()
	guard.Require("edit_stock")(next).ServeHTTP(res, req)
	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.False(t, *called)

	// Anonymous session; the permission would have been missing anyway.
	req = httptest.NewRequest(http.MethodGet, "/products", nil)
	req = req.WithContext(shared.ContextWithSession(req.Context(), &shared.Session{ID: "anon"}))
	res = httptest.NewRecorder()
	guard.Require("edit_stock")(next).ServeHTTP(res, req)
	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.False(t, *called)
}

func TestGuardForbiddenNamesMissingPermissionOnly(t *testing.T) {
	guard := Guard{Perms: stubPerms{set: NewPermissionSet([]string{"view_products"})}}
	next, called := okHandler()

	res := httptest.NewRecorder()
	guard.Require("edit_stock")(next).ServeHTTP(res, authenticatedRequest(t, 2))

	require.Equal(t, http.StatusForbidden, res.Code)
	require.False(t, *called)

	var body map[string]string
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	require.Equal(t, "edit_stock", body["missing_permission"])
	require.NotContains(t, res.Body.String(), "view_products")
}

func TestGuardAllowsExactPermission(t *testing.T) {
	guard := Guard{Perms: stubPerms{set: NewPermissionSet([]string{"view_products"})}}
	next, called := okHandler()

	res := httptest.NewRecorder()
	guard.Require("view_products")(next).ServeHTTP(res, authenticatedRequest(t, 2))

	require.Equal(t, http.StatusNoContent, res.Code)
	require.True(t, *called)
}

func TestGuardWildcardAllowsEveryPermission(t *testing.T) {
	guard := Guard{Perms: stubPerms{set: NewPermissionSet([]string{"*"})}}

	for _, perm := range []string{"view_products", "edit_stock", "nonexistent_permission"} {
		next, called := okHandler()
		res := httptest.NewRecorder()
		guard.Require(perm)(next).ServeHTTP(res, authenticatedRequest(t, 1))
		require.Equal(t, http.StatusNoContent, res.Code, perm)
		require.True(t, *called, perm)
	}
}

func TestGuardEvaluatorFailure(t *testing.T) {
	guard := Guard{Perms: stubPerms{err: context.DeadlineExceeded}}
	next, called := okHandler()

	res := httptest.NewRecorder()
	guard.Require("view_products")(next).ServeHTTP(res, authenticatedRequest(t, 2))

	require.Equal(t, http.StatusInternalServerError, res.Code)
	require.False(t, *called)
}
