package shared

// DefaultPageSize applies when a listing request omits limit.
const DefaultPageSize = 20

// MaxPageSize caps the per-request page size.
const MaxPageSize = 100

// Page contains limit/offset paging parameters for listings.
type Page struct {
	Limit  int
	Offset int
}

// NewPage clamps raw limit/offset values to the supported range.
func NewPage(limit, offset int) Page {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}
