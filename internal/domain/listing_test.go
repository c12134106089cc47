package domain

import (
	"testing"
	"time"
)

func TestListing_AgeRange(t *testing.T) {
	tests := []struct {
		name    string
		listing Listing
		wantMin int
		wantMax int
	}{
		{name: "both absent", listing: Listing{}, wantMin: 18, wantMax: 65},
		{name: "only min", listing: Listing{AgeMin: IntPtr(30)}, wantMin: 30, wantMax: 65},
		{name: "only max", listing: Listing{AgeMax: IntPtr(40)}, wantMin: 18, wantMax: 40},
		{name: "both set", listing: Listing{AgeMin: IntPtr(21), AgeMax: IntPtr(99)}, wantMin: 21, wantMax: 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMin, gotMax := tt.listing.AgeRange()
			if gotMin != tt.wantMin || gotMax != tt.wantMax {
				t.Errorf("AgeRange() = (%d, %d), want (%d, %d)", gotMin, gotMax, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestListing_IsOwnedBy(t *testing.T) {
	l := &Listing{PostedBy: "user-1"}
	if !l.IsOwnedBy("user-1") {
		t.Error("expected listing to be owned by user-1")
	}
	if l.IsOwnedBy("user-2") {
		t.Error("expected listing not to be owned by user-2")
	}

	feed := &Listing{}
	if feed.IsOwnedBy("") {
		t.Error("feed listing must not be owned by the empty user")
	}
}

func TestListing_Clone(t *testing.T) {
	original := &Listing{
		ID:           "1",
		Tags:         []string{"spa"},
		SafetyBadges: []string{"Verified"},
		Images:       []string{"a.jpg"},
		AgeMin:       IntPtr(20),
		AgeMax:       IntPtr(40),
		CreatedAt:    time.Now(),
	}

	c := original.Clone()
	c.Tags[0] = "changed"
	c.SafetyBadges[0] = "changed"
	c.Images[0] = "changed"
	*c.AgeMin = 1
	*c.AgeMax = 2

	if original.Tags[0] != "spa" || original.SafetyBadges[0] != "Verified" || original.Images[0] != "a.jpg" {
		t.Error("Clone() shares slices with the original")
	}
	if *original.AgeMin != 20 || *original.AgeMax != 40 {
		t.Error("Clone() shares age pointers with the original")
	}

	var nilListing *Listing
	if nilListing.Clone() != nil {
		t.Error("Clone() of nil should be nil")
	}
}

func TestListingStatus_IsValid(t *testing.T) {
	for _, s := range []ListingStatus{ListingStatusPending, ListingStatusApproved, ListingStatusRejected} {
		if !s.IsValid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if ListingStatus("archived").IsValid() {
		t.Error("unknown status should be invalid")
	}
}
