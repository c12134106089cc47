package domain

import (
	"fmt"
	"reflect"
	"testing"
	"time"
)

func ids(listings []*Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

func sampleCatalog() []*Listing {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return []*Listing{
		{
			ID: "1", Title: "Swedish Massage", Description: "Relaxing full body session",
			Tags: []string{"massage", "relax"}, Category: "Massage Therapy", Location: "Mumbai",
			Price: 40, AgeMin: IntPtr(18), AgeMax: IntPtr(30), Gender: "female",
			SafetyBadges: []string{"Verified", "Insured"}, CreatedAt: base,
		},
		{
			ID: "2", Title: "Luxury Spa Day", Description: "Hot stone and aromatherapy",
			Tags: []string{"spa"}, Category: "", Location: "Delhi",
			Price: 120, Gender: "both", SafetyBadges: []string{"Certified"},
			CreatedAt: base.Add(48 * time.Hour),
		},
		{
			ID: "3", Title: "Sports Recovery", Description: "Deep tissue for athletes",
			Tags: []string{"sports", "deep tissue"}, Category: "Sports Massage", Location: "New Delhi",
			Price: 40, AgeMin: IntPtr(25), AgeMax: IntPtr(45), Gender: "male",
			SafetyBadges: []string{"Background Checked", "ID verified"}, CreatedAt: base.Add(24 * time.Hour),
		},
		{
			ID: "4", Title: "Corporate Wellness", Description: "Chair massage at your office",
			Tags: []string{"corporate"}, Category: "Corporate Wellness", Location: "Bengaluru",
			Price: 75, AgeMin: IntPtr(21), Gender: "Both",
		},
	}
}

func mustQuery(t *testing.T, listings []*Listing, spec QuerySpec) *QueryResult {
	t.Helper()
	result, err := Query(listings, spec)
	if err != nil {
		t.Fatalf("Query() unexpected error: %v", err)
	}
	return result
}

func TestQuery_PriceScenario(t *testing.T) {
	listings := []*Listing{
		{ID: "1", Price: 10, AgeMin: IntPtr(18), AgeMax: IntPtr(30), Category: "massage", Status: ListingStatusApproved},
		{ID: "2", Price: 50, AgeMin: IntPtr(20), AgeMax: IntPtr(65), Category: "spa", Status: ListingStatusApproved},
	}

	result := mustQuery(t, listings, QuerySpec{
		PriceMax: Float64Ptr(20),
		SortKey:  SortPriceLow,
		Page:     1,
		PageSize: 20,
	})

	if got := ids(result.Items); !reflect.DeepEqual(got, []string{"1"}) {
		t.Errorf("Items = %v, want [1]", got)
	}
	if result.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1", result.TotalCount)
	}
	if result.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", result.TotalPages)
	}
}

func TestQuery_EmptyListings(t *testing.T) {
	specs := []QuerySpec{
		{PageSize: 20},
		{PageSize: 20, Page: 3, SearchTerm: "massage", SortKey: SortNewest},
		{PageSize: 20, VerifiedOnly: true, PriceMin: Float64Ptr(5)},
	}

	for i, spec := range specs {
		t.Run(fmt.Sprintf("spec_%d", i), func(t *testing.T) {
			result := mustQuery(t, nil, spec)
			if result.TotalCount != 0 {
				t.Errorf("TotalCount = %d, want 0", result.TotalCount)
			}
			if result.TotalPages != 1 {
				t.Errorf("TotalPages = %d, want 1", result.TotalPages)
			}
			if result.Page != 1 {
				t.Errorf("Page = %d, want 1", result.Page)
			}
			if result.Items == nil || len(result.Items) != 0 {
				t.Errorf("Items = %v, want empty non-nil slice", result.Items)
			}
		})
	}
}

func TestQuery_InvalidPageSize(t *testing.T) {
	for _, size := range []int{0, -1, -20} {
		t.Run(fmt.Sprintf("page_size_%d", size), func(t *testing.T) {
			result, err := Query(sampleCatalog(), QuerySpec{PageSize: size})
			if err == nil {
				t.Fatal("expected error for non-positive page size")
			}
			if result != nil {
				t.Errorf("expected nil result, got %+v", result)
			}
			if !IsKind(err, KindInvalidArgument) {
				t.Errorf("KindOf(err) = %v, want %v", KindOf(err), KindInvalidArgument)
			}
		})
	}
}

func TestQuery_EmptySearchTermIsNoFilter(t *testing.T) {
	catalog := sampleCatalog()
	unset := mustQuery(t, catalog, QuerySpec{PageSize: 20})

	for _, term := range []string{"", "   ", "\t\n"} {
		t.Run(fmt.Sprintf("%q", term), func(t *testing.T) {
			got := mustQuery(t, catalog, QuerySpec{SearchTerm: term, PageSize: 20})
			if !reflect.DeepEqual(got, unset) {
				t.Errorf("search term %q changed the result: got %v, want %v", term, ids(got.Items), ids(unset.Items))
			}
		})
	}
}

func TestQuery_Filters(t *testing.T) {
	tests := []struct {
		name string
		spec QuerySpec
		want []string
	}{
		{name: "search matches title case-insensitively", spec: QuerySpec{SearchTerm: "SWEDISH"}, want: []string{"1"}},
		{name: "search matches description", spec: QuerySpec{SearchTerm: "aromatherapy"}, want: []string{"2"}},
		{name: "search matches tag", spec: QuerySpec{SearchTerm: "tissue"}, want: []string{"3"}},
		{name: "search trims whitespace", spec: QuerySpec{SearchTerm: "  spa  "}, want: []string{"2"}},
		{name: "category matches category field", spec: QuerySpec{Category: "sports"}, want: []string{"3"}},
		{name: "category falls back to tags", spec: QuerySpec{Category: "spa"}, want: []string{"2"}},
		{name: "category substring", spec: QuerySpec{Category: "massage"}, want: []string{"1", "3"}},
		{name: "location substring", spec: QuerySpec{Location: "delhi"}, want: []string{"2", "3"}},
		{name: "price min inclusive", spec: QuerySpec{PriceMin: Float64Ptr(75)}, want: []string{"2", "4"}},
		{name: "price max inclusive", spec: QuerySpec{PriceMax: Float64Ptr(40)}, want: []string{"1", "3"}},
		{name: "price range", spec: QuerySpec{PriceMin: Float64Ptr(41), PriceMax: Float64Ptr(100)}, want: []string{"4"}},
		{name: "inverted price bounds yield nothing", spec: QuerySpec{PriceMin: Float64Ptr(100), PriceMax: Float64Ptr(10)}, want: []string{}},
		{name: "gender exact case-insensitive", spec: QuerySpec{Gender: "BOTH"}, want: []string{"2", "4"}},
		{name: "gender is not substring", spec: QuerySpec{Gender: "male"}, want: []string{"3"}},
		{name: "verified badge substring", spec: QuerySpec{VerifiedOnly: true}, want: []string{"1", "3"}},
		{name: "verified false is no filter", spec: QuerySpec{VerifiedOnly: false}, want: []string{"1", "2", "3", "4"}},
		{name: "combined filters", spec: QuerySpec{Location: "delhi", PriceMax: Float64Ptr(50)}, want: []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.spec.PageSize = 20
			result := mustQuery(t, sampleCatalog(), tt.spec)
			if got := ids(result.Items); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Items = %v, want %v", got, tt.want)
			}
			if result.TotalCount != len(tt.want) {
				t.Errorf("TotalCount = %d, want %d", result.TotalCount, len(tt.want))
			}
		})
	}
}

func TestQuery_AgeOverlap(t *testing.T) {
	defaults := &Listing{ID: "defaults"} // effective 18-65
	young := &Listing{ID: "young", AgeMin: IntPtr(18), AgeMax: IntPtr(25)}
	senior := &Listing{ID: "senior", AgeMin: IntPtr(60), AgeMax: IntPtr(90)}
	listings := []*Listing{defaults, young, senior}

	tests := []struct {
		name   string
		ageMin *int
		ageMax *int
		want   []string
	}{
		{name: "no bounds", want: []string{"defaults", "young", "senior"}},
		{name: "inner range overlaps defaults", ageMin: IntPtr(25), ageMax: IntPtr(30), want: []string{"defaults", "young"}},
		{name: "min above default max excludes", ageMin: IntPtr(70), want: []string{"senior"}},
		{name: "min equal to listing max overlaps", ageMin: IntPtr(65), want: []string{"defaults", "senior"}},
		{name: "max below listing min excludes", ageMax: IntPtr(17), want: []string{}},
		{name: "max equal to listing min overlaps", ageMax: IntPtr(18), want: []string{"defaults", "young"}},
		{name: "inverted range checks each bound", ageMin: IntPtr(50), ageMax: IntPtr(40), want: []string{"defaults"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := mustQuery(t, listings, QuerySpec{AgeMin: tt.ageMin, AgeMax: tt.ageMax, PageSize: 20})
			if got := ids(result.Items); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Items = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuery_DefaultAgeExcludedAboveSixtyFive(t *testing.T) {
	listing := &Listing{ID: "1", AgeMin: IntPtr(18), AgeMax: IntPtr(65)}

	result := mustQuery(t, []*Listing{listing}, QuerySpec{AgeMin: IntPtr(70), PageSize: 20})
	if result.TotalCount != 0 {
		t.Errorf("TotalCount = %d, want 0", result.TotalCount)
	}
}

func TestQuery_Sorting(t *testing.T) {
	tests := []struct {
		key  SortKey
		want []string
	}{
		{key: SortRelevance, want: []string{"1", "2", "3", "4"}},
		{key: "", want: []string{"1", "2", "3", "4"}},
		{key: "most-popular", want: []string{"1", "2", "3", "4"}},
		{key: SortPriceLow, want: []string{"1", "3", "4", "2"}},  // 40, 40 keep input order
		{key: SortPriceHigh, want: []string{"2", "4", "1", "3"}}, // 40, 40 keep input order
		{key: SortAgeLow, want: []string{"1", "2", "4", "3"}},    // 18, 18(default), 21, 25
		{key: SortAgeHigh, want: []string{"3", "4", "1", "2"}},
		{key: SortNewest, want: []string{"2", "3", "1", "4"}}, // 4 has no CreatedAt
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			result := mustQuery(t, sampleCatalog(), QuerySpec{SortKey: tt.key, PageSize: 20})
			if got := ids(result.Items); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Items = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuery_NewestTreatsMissingDateAsEpoch(t *testing.T) {
	listings := []*Listing{
		{ID: "pre-epoch", CreatedAt: time.Date(1965, 5, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "undated"},
		{ID: "epoch", CreatedAt: time.Unix(0, 0)},
		{ID: "recent", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	result := mustQuery(t, listings, QuerySpec{SortKey: SortNewest, PageSize: 10})

	// undated and epoch compare equal and keep input order
	want := []string{"recent", "undated", "epoch", "pre-epoch"}
	if got := ids(result.Items); !reflect.DeepEqual(got, want) {
		t.Errorf("Items = %v, want %v", got, want)
	}
}

func TestQuery_StableTieBreak(t *testing.T) {
	var listings []*Listing
	for i := 0; i < 50; i++ {
		listings = append(listings, &Listing{ID: fmt.Sprintf("L%02d", i), Price: float64(i % 3)})
	}

	result := mustQuery(t, listings, QuerySpec{SortKey: SortPriceLow, PageSize: 100})

	lastIndex := map[float64]int{}
	for _, l := range result.Items {
		var idx int
		if _, err := fmt.Sscanf(l.ID, "L%02d", &idx); err != nil {
			t.Fatalf("parse id %q: %v", l.ID, err)
		}
		if prev, ok := lastIndex[l.Price]; ok && idx < prev {
			t.Fatalf("equal-price listings reordered: %s after index %d", l.ID, prev)
		}
		lastIndex[l.Price] = idx
	}
}

func TestQuery_RelevancePreservesInputOrder(t *testing.T) {
	catalog := sampleCatalog()
	result := mustQuery(t, catalog, QuerySpec{Category: "massage", SortKey: SortRelevance, PageSize: 20})

	var want []string
	for _, l := range catalog {
		if matchesCategory(l, "massage") {
			want = append(want, l.ID)
		}
	}
	if got := ids(result.Items); !reflect.DeepEqual(got, want) {
		t.Errorf("Items = %v, want %v", got, want)
	}
}

func TestQuery_Pagination(t *testing.T) {
	var listings []*Listing
	for i := 1; i <= 45; i++ {
		listings = append(listings, &Listing{ID: fmt.Sprintf("%d", i), Price: float64(100 - i)})
	}

	tests := []struct {
		name       string
		page       int
		wantPage   int
		wantLen    int
		wantFirst  string
		wantTotalP int
	}{
		{name: "first page", page: 1, wantPage: 1, wantLen: 20, wantFirst: "1", wantTotalP: 3},
		{name: "second page", page: 2, wantPage: 2, wantLen: 20, wantFirst: "21", wantTotalP: 3},
		{name: "last partial page", page: 3, wantPage: 3, wantLen: 5, wantFirst: "41", wantTotalP: 3},
		{name: "beyond last clamps to first", page: 8, wantPage: 1, wantLen: 20, wantFirst: "1", wantTotalP: 3},
		{name: "zero page clamps to first", page: 0, wantPage: 1, wantLen: 20, wantFirst: "1", wantTotalP: 3},
		{name: "negative page clamps to first", page: -4, wantPage: 1, wantLen: 20, wantFirst: "1", wantTotalP: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := mustQuery(t, listings, QuerySpec{Page: tt.page, PageSize: 20})
			if result.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", result.Page, tt.wantPage)
			}
			if len(result.Items) != tt.wantLen {
				t.Errorf("len(Items) = %d, want %d", len(result.Items), tt.wantLen)
			}
			if result.Items[0].ID != tt.wantFirst {
				t.Errorf("first item = %s, want %s", result.Items[0].ID, tt.wantFirst)
			}
			if result.TotalPages != tt.wantTotalP {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantTotalP)
			}
			if result.TotalCount != 45 {
				t.Errorf("TotalCount = %d, want 45", result.TotalCount)
			}
		})
	}
}

func TestQuery_ClampReturnsNonEmptyPage(t *testing.T) {
	catalog := sampleCatalog()
	first := mustQuery(t, catalog, QuerySpec{PageSize: 3})

	result := mustQuery(t, catalog, QuerySpec{PageSize: 3, Page: first.TotalPages + 5})
	if result.Page != 1 {
		t.Errorf("Page = %d, want 1", result.Page)
	}
	if len(result.Items) == 0 {
		t.Error("expected a non-empty page after clamping")
	}
}

func TestQuery_PaginationCoverage(t *testing.T) {
	catalog := sampleCatalog()
	for i := 0; i < 3; i++ {
		catalog = append(catalog, CloneListings(sampleCatalog())...)
	}
	for i, l := range catalog {
		l.ID = fmt.Sprintf("%s-%d", l.ID, i)
	}

	for _, key := range SortKeys {
		for _, size := range []int{1, 3, 5, 7, 16, 100} {
			t.Run(fmt.Sprintf("%s_%d", key, size), func(t *testing.T) {
				full := mustQuery(t, catalog, QuerySpec{SortKey: key, PageSize: len(catalog)})

				var collected []string
				seen := map[string]bool{}
				first := mustQuery(t, catalog, QuerySpec{SortKey: key, PageSize: size, Page: 1})
				for page := 1; page <= first.TotalPages; page++ {
					result := mustQuery(t, catalog, QuerySpec{SortKey: key, PageSize: size, Page: page})
					for _, l := range result.Items {
						if seen[l.ID] {
							t.Fatalf("duplicate listing %s on page %d", l.ID, page)
						}
						seen[l.ID] = true
						collected = append(collected, l.ID)
					}
				}

				if want := ids(full.Items); !reflect.DeepEqual(collected, want) {
					t.Errorf("concatenated pages = %v, want %v", collected, want)
				}
			})
		}
	}
}

func TestQuery_Idempotent(t *testing.T) {
	catalog := sampleCatalog()
	spec := QuerySpec{Location: "i", SortKey: SortNewest, Page: 1, PageSize: 2}

	first := mustQuery(t, catalog, spec)
	second := mustQuery(t, catalog, spec)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated query differs: %+v vs %+v", first, second)
	}
}

func TestQuery_FilterMonotonicity(t *testing.T) {
	catalog := sampleCatalog()
	base := QuerySpec{PageSize: 20}
	baseCount := mustQuery(t, catalog, base).TotalCount

	constraints := []func(*QuerySpec){
		func(s *QuerySpec) { s.SearchTerm = "massage" },
		func(s *QuerySpec) { s.Category = "wellness" },
		func(s *QuerySpec) { s.Location = "delhi" },
		func(s *QuerySpec) { s.Gender = "female" },
		func(s *QuerySpec) { s.PriceMin = Float64Ptr(50) },
		func(s *QuerySpec) { s.PriceMax = Float64Ptr(50) },
		func(s *QuerySpec) { s.AgeMin = IntPtr(40) },
		func(s *QuerySpec) { s.AgeMax = IntPtr(20) },
		func(s *QuerySpec) { s.VerifiedOnly = true },
	}

	spec := base
	prev := baseCount
	for i, apply := range constraints {
		apply(&spec)
		count := mustQuery(t, catalog, spec).TotalCount
		if count > prev {
			t.Fatalf("constraint %d increased TotalCount from %d to %d", i, prev, count)
		}
		prev = count
	}

	for i, apply := range constraints {
		single := base
		apply(&single)
		if count := mustQuery(t, catalog, single).TotalCount; count > baseCount {
			t.Errorf("constraint %d alone increased TotalCount from %d to %d", i, baseCount, count)
		}
	}
}

func TestQuery_DoesNotMutateInput(t *testing.T) {
	catalog := sampleCatalog()
	snapshot := CloneListings(catalog)
	order := ids(catalog)

	_ = mustQuery(t, catalog, QuerySpec{SortKey: SortPriceHigh, PageSize: 2, Page: 2})

	if got := ids(catalog); !reflect.DeepEqual(got, order) {
		t.Errorf("input order changed: %v, want %v", got, order)
	}
	if !reflect.DeepEqual(catalog, snapshot) {
		t.Error("input listings were modified")
	}
}

func TestQuery_ResultDoesNotAliasInput(t *testing.T) {
	catalog := sampleCatalog()
	result := mustQuery(t, catalog, QuerySpec{PageSize: 20})

	result.Items[0] = &Listing{ID: "replaced"}
	if catalog[0].ID != "1" {
		t.Errorf("modifying result items changed input slice: %s", catalog[0].ID)
	}
}

func TestQuery_SkipsNilListings(t *testing.T) {
	listings := []*Listing{nil, {ID: "a"}, nil}
	result := mustQuery(t, listings, QuerySpec{PageSize: 20})

	if got := ids(result.Items); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Items = %v, want [a]", got)
	}
}

func TestQueryResult_Helpers(t *testing.T) {
	r := &QueryResult{Page: 2, PageSize: 20, TotalPages: 3}
	if r.Offset() != 20 {
		t.Errorf("Offset() = %d, want 20", r.Offset())
	}
	if !r.HasNext() {
		t.Error("expected HasNext() on page 2 of 3")
	}
	r.Page = 3
	if r.HasNext() {
		t.Error("expected no next page on the last page")
	}
}
