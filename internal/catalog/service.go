package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/warebase/warebase/internal/shared"
)

// sortColumns whitelists sortable fields, mapping API sort keys to columns.
var sortColumns = map[string]string{
	"":           "id",
	"id":         "id",
	"product_id": "id",
	"name":       "name",
	"sku":        "sku",
	"brand":      "brand",
	"price":      "price",
	"stock":      "stock",
}

// ListInput carries raw listing parameters from the transport layer.
type ListInput struct {
	Query  string
	Sort   string
	Order  string
	Limit  int
	Offset int
}

// Service wraps catalog business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List validates listing parameters and returns one page plus the total.
func (s *Service) List(ctx context.Context, in ListInput) ([]Product, int, error) {
	column, ok := sortColumns[strings.ToLower(strings.TrimSpace(in.Sort))]
	if !ok {
		return nil, 0, fmt.Errorf("%w: unknown sort key %q", shared.ErrValidation, in.Sort)
	}
	order := strings.ToLower(strings.TrimSpace(in.Order))
	if order != "" && order != "asc" && order != "desc" {
		return nil, 0, fmt.Errorf("%w: order must be asc or desc", shared.ErrValidation)
	}
	filter := ListFilter{
		Query:      strings.TrimSpace(in.Query),
		SortColumn: column,
		Descending: order == "desc",
		Page:       shared.NewPage(in.Limit, in.Offset),
	}
	return s.repo.List(ctx, filter)
}

// Get fetches one product by id.
func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	return s.repo.Get(ctx, id)
}

// SetStock sets the absolute stock level for a product.
func (s *Service) SetStock(ctx context.Context, id int64, stock int) error {
	if stock < 0 {
		return fmt.Errorf("%w: stock must be >= 0", shared.ErrValidation)
	}
	return s.repo.UpdateStock(ctx, id, stock)
}

// LowStock returns products at or below their low stock threshold.
func (s *Service) LowStock(ctx context.Context) ([]Product, error) {
	return s.repo.LowStock(ctx)
}
