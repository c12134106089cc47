package partnerfeed

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	"storefront-catalog-service/internal/domain"
)

// ListedOnLayout is the date format of <listed_on>.
const ListedOnLayout = "2006-01-02"

// Feed represents the XML document served by the partner feed.
type Feed struct {
	XMLName  xml.Name `xml:"feed"`
	Listings Listings `xml:"listings"`
}

// Listings wraps the list of entries.
type Listings struct {
	Items []Item `xml:"listing"`
}

// Item is a single partner entry. Field names differ from the catalog feed.
type Item struct {
	Ref      string   `xml:"ref"`
	Headline string   `xml:"headline"`
	Summary  string   `xml:"summary"`
	Details  string   `xml:"details"`
	Segment  string   `xml:"segment"`
	Area     string   `xml:"area"`
	Rate     Rate     `xml:"rate"`
	Audience Audience `xml:"audience"`
	Badges   Badges   `xml:"badges"`
	Keywords Keywords `xml:"keywords"`
	Photos   Photos   `xml:"photos"`
	ListedOn string   `xml:"listed_on"`
}

// Rate is the price with its unit, e.g. <rate unit="session">45.00</rate>.
type Rate struct {
	Unit  string `xml:"unit,attr"`
	Value string `xml:",chardata"`
}

// Audience carries optional age bounds and gender as attributes.
type Audience struct {
	Min    string `xml:"min,attr"`
	Max    string `xml:"max,attr"`
	Gender string `xml:"gender,attr"`
}

// Badges wraps safety badges.
type Badges struct {
	Badge []string `xml:"badge"`
}

// Keywords wraps search tags.
type Keywords struct {
	Keyword []string `xml:"keyword"`
}

// Photos wraps image URLs.
type Photos struct {
	Photo []string `xml:"photo"`
}

// ToDomain normalizes an item into an approved listing owned by source.
func (i *Item) ToDomain(source string) *domain.Listing {
	listedOn, _ := time.Parse(ListedOnLayout, strings.TrimSpace(i.ListedOn))
	price, _ := strconv.ParseFloat(strings.TrimSpace(i.Rate.Value), 64)

	return &domain.Listing{
		Source:          source,
		ExternalID:      strings.TrimSpace(i.Ref),
		Title:           strings.TrimSpace(i.Headline),
		Description:     strings.TrimSpace(i.Summary),
		LongDescription: strings.TrimSpace(i.Details),
		Tags:            i.Keywords.Keyword,
		Category:        strings.TrimSpace(i.Segment),
		Location:        strings.TrimSpace(i.Area),
		Price:           price,
		PriceType:       i.Rate.Unit,
		AgeMin:          parseAge(i.Audience.Min),
		AgeMax:          parseAge(i.Audience.Max),
		Gender:          strings.ToLower(strings.TrimSpace(i.Audience.Gender)),
		SafetyBadges:    i.Badges.Badge,
		Images:          i.Photos.Photo,
		Status:          domain.ListingStatusApproved,
		Verified:        hasVerified(i.Badges.Badge),
		CreatedAt:       listedOn,
	}
}

// parseAge returns nil for absent or malformed bounds so the listing falls back to defaults.
func parseAge(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

func hasVerified(badges []string) bool {
	for _, b := range badges {
		if strings.Contains(strings.ToLower(b), "verified") {
			return true
		}
	}
	return false
}
