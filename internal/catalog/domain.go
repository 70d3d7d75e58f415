// Package catalog implements the product catalog: listing with search, sort
// and paging, plus stock editing.
package catalog

import (
	"github.com/warebase/warebase/internal/shared"
)

// Product models one catalog entry. SKUs are EAN-8-like 8-digit strings,
// barcodes EAN-13-like. Barcode, OuterBarcode and StoreID are optional.
type Product struct {
	ID                int64
	Name              string
	SKU               string
	Barcode           *string
	OuterBarcode      *string
	Brand             string
	Description       string
	Price             float64
	Stock             int
	LowStockThreshold int
	StoreID           *int64
}

// ListFilter describes a catalog listing request. SortColumn must be one of
// the whitelisted column names; the service validates it before the filter
// reaches SQL.
type ListFilter struct {
	Query      string
	SortColumn string
	Descending bool
	Page       shared.Page
}
