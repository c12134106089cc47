package domain

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// verifiedBadge is the marker searched for (case-insensitively) in safety badges.
const verifiedBadge = "verified"

// Query filters, sorts and paginates listings according to the requested QuerySpec.
//
// Precondition: listings are already gated by status. End-user views pass only approved
// listings; admin views may pass any mix. Query never inspects Status.
//
// Pipeline:
//
//	search term -> category -> location -> price -> gender -> age overlap -> verified
//	-> stable sort -> paginate
//
// Query is pure: the input slice and its listings are never modified and the returned
// Items slice is freshly allocated. The only error is KindInvalidArgument for a
// non-positive PageSize, raised before any work is done.
func Query(listings []*Listing, spec QuerySpec) (*QueryResult, error) {
	q, err := compile(spec)
	if err != nil {
		return nil, err
	}

	matched := make([]*Listing, 0, len(listings))
	for _, l := range listings {
		if l != nil && q.matches(l) {
			matched = append(matched, l)
		}
	}

	sortListings(matched, q.sortKey)

	return paginate(matched, q.page, q.pageSize), nil
}

// compiledQuery is a QuerySpec after normalization: trimmed and lowercased strings,
// resolved sort key and clamped page.
type compiledQuery struct {
	term     string
	category string
	location string
	gender   string

	priceMin *float64
	priceMax *float64
	ageMin   *int
	ageMax   *int
	verified bool

	sortKey  SortKey
	page     int
	pageSize int
}

// compile centralizes every default and normalization rule for a QuerySpec.
func compile(spec QuerySpec) (*compiledQuery, error) {
	if spec.PageSize <= 0 {
		return nil, InvalidArgument("page size must be positive").WithOp("catalog.Query")
	}

	sortKey := spec.SortKey
	if !sortKey.IsValid() {
		sortKey = SortRelevance
	}

	page := spec.Page
	if page < 1 {
		page = 1
	}

	return &compiledQuery{
		term:     normalizeFilter(spec.SearchTerm),
		category: normalizeFilter(spec.Category),
		location: normalizeFilter(spec.Location),
		gender:   normalizeFilter(spec.Gender),
		priceMin: spec.PriceMin,
		priceMax: spec.PriceMax,
		ageMin:   spec.AgeMin,
		ageMax:   spec.AgeMax,
		verified: spec.VerifiedOnly,
		sortKey:  sortKey,
		page:     page,
		pageSize: spec.PageSize,
	}, nil
}

// normalizeFilter lowercases a filter value; blank values become "" which disables the filter.
func normalizeFilter(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// matches applies every active predicate. An empty string filter is skipped explicitly
// rather than relying on "" being a substring of everything.
func (q *compiledQuery) matches(l *Listing) bool {
	if q.term != "" && !matchesTerm(l, q.term) {
		return false
	}
	if q.category != "" && !matchesCategory(l, q.category) {
		return false
	}
	if q.location != "" && !containsFold(l.Location, q.location) {
		return false
	}
	if q.priceMin != nil && l.Price < *q.priceMin {
		return false
	}
	if q.priceMax != nil && l.Price > *q.priceMax {
		return false
	}
	if q.gender != "" && strings.ToLower(strings.TrimSpace(l.Gender)) != q.gender {
		return false
	}
	if !q.overlapsAge(l) {
		return false
	}
	if q.verified && !hasVerifiedBadge(l) {
		return false
	}
	return true
}

// overlapsAge keeps l when its effective [min, max] intersects the requested range.
// Either requested bound may be absent.
func (q *compiledQuery) overlapsAge(l *Listing) bool {
	minAge, maxAge := l.AgeRange()
	if q.ageMin != nil && maxAge < *q.ageMin {
		return false
	}
	if q.ageMax != nil && minAge > *q.ageMax {
		return false
	}
	return true
}

// matchesTerm checks title, short description and tags.
func matchesTerm(l *Listing, term string) bool {
	if containsFold(l.Title, term) || containsFold(l.Description, term) {
		return true
	}
	return anyContainsFold(l.Tags, term)
}

// matchesCategory tests both category and tags; category data is inconsistently
// populated across sources.
func matchesCategory(l *Listing, category string) bool {
	return containsFold(l.Category, category) || anyContainsFold(l.Tags, category)
}

func hasVerifiedBadge(l *Listing) bool {
	return anyContainsFold(l.SafetyBadges, verifiedBadge)
}

// containsFold reports whether lowered needle is a substring of s, ignoring case.
func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}

func anyContainsFold(values []string, needle string) bool {
	for _, v := range values {
		if containsFold(v, needle) {
			return true
		}
	}
	return false
}

// sortListings orders listings in place with a stable sort so equal keys keep input order.
func sortListings(listings []*Listing, key SortKey) {
	var compare func(a, b *Listing) int

	switch key {
	case SortPriceLow:
		compare = func(a, b *Listing) int { return cmp.Compare(a.Price, b.Price) }
	case SortPriceHigh:
		compare = func(a, b *Listing) int { return cmp.Compare(b.Price, a.Price) }
	case SortAgeLow:
		compare = func(a, b *Listing) int { return cmp.Compare(effectiveAgeMin(a), effectiveAgeMin(b)) }
	case SortAgeHigh:
		compare = func(a, b *Listing) int { return cmp.Compare(effectiveAgeMin(b), effectiveAgeMin(a)) }
	case SortNewest:
		compare = func(a, b *Listing) int { return createdAt(b).Compare(createdAt(a)) }
	default:
		return
	}

	slices.SortStableFunc(listings, compare)
}

// unixEpoch stands in for a missing CreatedAt under the newest sort.
var unixEpoch = time.Unix(0, 0).UTC()

// createdAt returns the creation time used for sorting. Undated listings count as
// the Unix epoch, so a listing dated before 1970 sorts after them.
func createdAt(l *Listing) time.Time {
	if l.CreatedAt.IsZero() {
		return unixEpoch
	}
	return l.CreatedAt
}

func effectiveAgeMin(l *Listing) int {
	minAge, _ := l.AgeRange()
	return minAge
}

// paginate slices one page out of the matched set.
//
//	totalPages = max(1, ceil(total / pageSize))
//	page > totalPages -> page = 1
func paginate(matched []*Listing, page, pageSize int) *QueryResult {
	total := len(matched)

	totalPages := total / pageSize
	if total%pageSize > 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}

	if page > totalPages {
		page = 1
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)

	items := make([]*Listing, end-start)
	copy(items, matched[start:end])

	return &QueryResult{
		Items:      items,
		TotalCount: total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
	}
}
