package domain

// SortKey represents the ordering applied to a catalog query.
type SortKey string

const (
	SortRelevance SortKey = "relevance" // input order, no reordering
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortAgeLow    SortKey = "age-low"
	SortAgeHigh   SortKey = "age-high"
	SortNewest    SortKey = "newest"
)

// SortKeys lists every supported sort key.
var SortKeys = []SortKey{SortRelevance, SortPriceLow, SortPriceHigh, SortAgeLow, SortAgeHigh, SortNewest}

// IsValid reports whether k is a known sort key.
func (k SortKey) IsValid() bool {
	switch k {
	case SortRelevance, SortPriceLow, SortPriceHigh, SortAgeLow, SortAgeHigh, SortNewest:
		return true
	default:
		return false
	}
}

// QuerySpec holds the filter, sort and pagination request for a catalog query.
// Pointer fields distinguish "not set" from zero values; string filters are unset when blank.
type QuerySpec struct {
	// Text search over title, description and tags
	SearchTerm string

	// Filters
	Category     string
	Location     string
	Gender       string
	PriceMin     *float64
	PriceMax     *float64
	AgeMin       *int
	AgeMax       *int
	VerifiedOnly bool

	// Sorting
	SortKey SortKey // empty or unknown falls back to relevance

	// Pagination
	Page     int // 1-indexed, values below 1 are clamped to 1
	PageSize int // required, must be positive
}

// QueryResult holds one page of a catalog query.
type QueryResult struct {
	Items      []*Listing `json:"items"`
	TotalCount int        `json:"total_count"` // Matching listings before pagination
	TotalPages int        `json:"total_pages"` // Never below 1
	Page       int        `json:"page"`        // Page actually returned (may differ from the request)
	PageSize   int        `json:"page_size"`
}

// Offset returns the index of the first item of the returned page.
func (r *QueryResult) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// HasNext reports whether a page follows the returned one.
func (r *QueryResult) HasNext() bool {
	return r.Page < r.TotalPages
}

// Float64Ptr is a small helper for optional price bounds.
func Float64Ptr(v float64) *float64 {
	return &v
}
