package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newManager(t *testing.T) (*SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionManager(client, "test_session", "secret", time.Hour, false), mr
}

func TestSessionLifecycle(t *testing.T) {
	sm, mr := newManager(t)
	ctx := context.Background()

	// Fresh request without cookie yields an anonymous session.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if sess.Authenticated() {
		t.Fatalf("new session must be anonymous")
	}

	// Login: attach user, commit, cookie written.
	sess.SetUser(42)
	res := httptest.NewRecorder()
	if err := sm.Commit(ctx, res, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}
	cookies := res.Result().Cookies()
	if len(cookies) == 0 || cookies[0].Value == "" {
		t.Fatalf("expected session cookie")
	}

	// Next request with the cookie resolves to the authenticated session.
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(cookies[0])
	loaded, err := sm.Load(ctx, req2)
	if err != nil {
		t.Fatalf("reload session: %v", err)
	}
	if !loaded.Authenticated() || loaded.UserID() != 42 {
		t.Fatalf("expected user 42, got %d", loaded.UserID())
	}

	// Logout: user id and backing record are discarded together.
	sm.Destroy(loaded)
	if loaded.Authenticated() || loaded.UserID() != 0 {
		t.Fatalf("destroyed session must be anonymous immediately")
	}
	res2 := httptest.NewRecorder()
	if err := sm.Commit(ctx, res2, loaded); err != nil {
		t.Fatalf("commit destroy: %v", err)
	}
	if mr.Exists("session:" + loaded.ID) {
		t.Fatalf("redis record should be deleted on destroy")
	}
	cleared := res2.Result().Cookies()
	if len(cleared) == 0 || cleared[0].MaxAge != -1 {
		t.Fatalf("expected expired cookie on destroy")
	}

	// The stale cookie now resolves to a fresh anonymous session.
	req3 := httptest.NewRequest(http.MethodGet, "/", nil)
	req3.AddCookie(cookies[0])
	after, err := sm.Load(ctx, req3)
	if err != nil {
		t.Fatalf("load after destroy: %v", err)
	}
	if after.Authenticated() {
		t.Fatalf("session must be anonymous after logout")
	}
}

func TestSessionRotateDiscardsOldID(t *testing.T) {
	sm, mr := newManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "test_session", Value: "attacker-chosen"})
	sess, err := sm.Load(ctx, req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if sess.ID != "attacker-chosen" {
		t.Fatalf("presented cookie value should be adopted before rotation, got %q", sess.ID)
	}

	if err := sm.Rotate(ctx, sess); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if sess.ID == "attacker-chosen" || sess.ID == "" {
		t.Fatalf("rotation must assign a fresh id, got %q", sess.ID)
	}

	sess.SetUser(9)
	res := httptest.NewRecorder()
	if err := sm.Commit(ctx, res, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if mr.Exists("session:attacker-chosen") {
		t.Fatalf("old session id must not be persisted")
	}
	if !mr.Exists("session:" + sess.ID) {
		t.Fatalf("rotated session must be persisted under the new id")
	}
}
