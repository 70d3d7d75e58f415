package catalog_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/warebase/warebase/internal/authz"
	"github.com/warebase/warebase/internal/catalog"
	"github.com/warebase/warebase/internal/shared"
	_ "github.com/warebase/warebase/internal/testing/guard"
)

type fakeRepo struct {
	products map[int64]*catalog.Product
}

func (r *fakeRepo) List(ctx context.Context, filter catalog.ListFilter) ([]catalog.Product, int, error) {
	var out []catalog.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Get(ctx context.Context, id int64) (catalog.Product, error) {
	if p, ok := r.products[id]; ok {
		return *p, nil
	}
	return catalog.Product{}, shared.ErrNotFound
}

func (r *fakeRepo) UpdateStock(ctx context.Context, id int64, stock int) error {
	p, ok := r.products[id]
	if !ok {
		return shared.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (r *fakeRepo) LowStock(ctx context.Context) ([]catalog.Product, error) {
	return nil, nil
}

type userPerms map[int64]authz.PermissionSet

func (u userPerms) ActivePermissions(ctx context.Context, userID int64) (authz.PermissionSet, error) {
	return u[userID], nil
}

func newCatalogServer(t *testing.T, repo catalog.Repository, perms authz.PermissionSource) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	guard := authz.Guard{Perms: perms, Logger: logger}
	handler := catalog.NewHandler(logger, catalog.NewService(repo), guard)

	r := chi.NewRouter()
	r.Route("/products", handler.MountRoutes)
	return r
}

func requestAs(method, target, body string, userID int64) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if userID != 0 {
		sess := &shared.Session{ID: "test"}
		sess.SetUser(userID)
		req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	}
	return req
}

func TestProductRoutes(t *testing.T) {
	price := 9.99
	repo := &fakeRepo{products: map[int64]*catalog.Product{
		1: {ID: 1, Name: "Shampoo 1", SKU: "10000001", Price: price, Stock: 100, LowStockThreshold: 10},
	}}
	perms := userPerms{
		1: authz.NewPermissionSet([]string{"*"}),
		2: authz.NewPermissionSet([]string{"view_products"}),
	}
	server := newCatalogServer(t, repo, perms)

	t.Run("anonymous caller is unauthenticated", func(t *testing.T) {
		res := httptest.NewRecorder()
		server.ServeHTTP(res, requestAs(http.MethodGet, "/products/", "", 0))
		require.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("wildcard grant satisfies view_products", func(t *testing.T) {
		res := httptest.NewRecorder()
		server.ServeHTTP(res, requestAs(http.MethodGet, "/products/", "", 1))
		require.Equal(t, http.StatusOK, res.Code)

		var body struct {
			Total int `json:"total"`
			Items []struct {
				Price string `json:"price"`
			} `json:"items"`
		}
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
		require.Equal(t, 1, body.Total)
		require.Equal(t, "9.99", body.Items[0].Price)
	})

	t.Run("non-numeric paging params rejected", func(t *testing.T) {
		res := httptest.NewRecorder()
		server.ServeHTTP(res, requestAs(http.MethodGet, "/products/?limit=abc", "", 1))
		require.Equal(t, http.StatusBadRequest, res.Code)

		res = httptest.NewRecorder()
		server.ServeHTTP(res, requestAs(http.MethodGet, "/products/?offset=many", "", 1))
		require.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("staff can view but not edit stock", func(t *testing.T) {
		res := httptest.NewRecorder()
		server.ServeHTTP(res, requestAs(http.MethodGet, "/products/1", "", 2))
		require.Equal(t, http.StatusOK, res.Code)

		res = httptest.NewRecorder()
		server.ServeHTTP(res, requestAs(http.MethodPut, "/products/1/stock", `{"stock":5}`, 2))
		require.Equal(t, http.StatusForbidden, res.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
		require.Equal(t, "edit_stock", body["missing_permission"])
		require.Equal(t, 100, repo.products[1].Stock)
	})

	t.Run("edit stock with wildcard", func(t *testing.T) {
		res := httptest.NewRecorder()
		server.ServeHTTP(res, requestAs(http.MethodPut, "/products/1/stock", `{"stock":42}`, 1))
		require.Equal(t, http.StatusOK, res.Code)
		require.Equal(t, 42, repo.products[1].Stock)
	})

	t.Run("negative stock is a validation error, not forbidden", func(t *testing.T) {
		res := httptest.NewRecorder()
		server.ServeHTTP(res, requestAs(http.MethodPut, "/products/1/stock", `{"stock":-2}`, 1))
		require.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("missing product yields not found", func(t *testing.T) {
		res := httptest.NewRecorder()
		server.ServeHTTP(res, requestAs(http.MethodGet, "/products/999", "", 1))
		require.Equal(t, http.StatusNotFound, res.Code)
	})
}
