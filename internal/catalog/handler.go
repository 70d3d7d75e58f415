package catalog

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/warebase/warebase/internal/authz"
	"github.com/warebase/warebase/internal/platform/httpx"
	"github.com/warebase/warebase/internal/shared"
)

// Handler wires the product catalog endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	guard     authz.Guard
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard authz.Guard) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		guard:     guard,
		validator: validator.New(),
	}
}

// MountRoutes registers catalog routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.guard.Require(shared.PermViewProducts)).Get("/", h.list)
	r.With(h.guard.Require(shared.PermViewProducts)).Get("/{productID}", h.get)
	r.With(h.guard.Require(shared.PermEditStock)).Put("/{productID}/stock", h.setStock)
}

type productResponse struct {
	ProductID         int64   `json:"product_id"`
	Name              string  `json:"name"`
	SKU               string  `json:"sku"`
	Barcode           *string `json:"barcode"`
	OuterBarcode      *string `json:"outer_barcode"`
	Brand             string  `json:"brand"`
	Price             string  `json:"price"`
	Stock             int     `json:"stock"`
	LowStockThreshold int     `json:"low_stock_threshold"`
}

func toProductResponse(p Product) productResponse {
	return productResponse{
		ProductID:         p.ID,
		Name:              p.Name,
		SKU:               p.SKU,
		Barcode:           p.Barcode,
		OuterBarcode:      p.OuterBarcode,
		Brand:             p.Brand,
		Price:             strconv.FormatFloat(p.Price, 'f', 2, 64),
		Stock:             p.Stock,
		LowStockThreshold: p.LowStockThreshold,
	}
}

func queryInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

type listResponse struct {
	Total int               `json:"total"`
	Items []productResponse `json:"items"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(q.Get("limit"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	offset, err := queryInt(q.Get("offset"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "offset must be an integer")
		return
	}

	products, total, err := h.service.List(r.Context(), ListInput{
		Query:  q.Get("q"),
		Sort:   q.Get("sort"),
		Order:  q.Get("order"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	items := make([]productResponse, 0, len(products))
	for _, p := range products {
		items = append(items, toProductResponse(p))
	}
	httpx.JSON(w, http.StatusOK, listResponse{Total: total, Items: items})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}
	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProductResponse(product))
}

type setStockRequest struct {
	Stock *int `json:"stock" validate:"required,gte=0"`
}

func (h *Handler) setStock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var req setStockRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "stock is required")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "stock must be a non-negative integer")
		return
	}
	if err := h.service.SetStock(r.Context(), id, *req.Stock); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
