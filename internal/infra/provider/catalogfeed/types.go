package catalogfeed

import (
	"strconv"
	"strings"
	"time"

	"storefront-catalog-service/internal/domain"
)

// Response is the JSON document served by the catalog feed.
type Response struct {
	Products []Product `json:"products"`
}

// Product is a single catalog entry as published upstream.
type Product struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	ShortDesc    string   `json:"shortDesc"`
	LongDesc     string   `json:"longDesc"`
	Category     string   `json:"category"`
	Location     string   `json:"location"`
	Price        float64  `json:"price"`
	PriceType    string   `json:"priceType"`
	AgeMin       *int     `json:"ageMin"`
	AgeMax       *int     `json:"ageMax"`
	Gender       string   `json:"gender"`
	Tags         []string `json:"tags"`
	SafetyBadges []string `json:"safetyBadges"`
	Images       Images   `json:"images"`
	Featured     bool     `json:"featured"`
	Verified     bool     `json:"verified"`
	CreatedAt    string   `json:"createdAt"`
}

// Images holds thumbnail and gallery URLs.
type Images struct {
	Thumbnail string   `json:"thumbnail"`
	Gallery   []string `json:"gallery"`
}

// ToDomain normalizes a product into an approved listing owned by source.
func (p *Product) ToDomain(source string) *domain.Listing {
	createdAt, _ := time.Parse(time.RFC3339, p.CreatedAt)

	return &domain.Listing{
		Source:          source,
		ExternalID:      strconv.Itoa(p.ID),
		Title:           strings.TrimSpace(p.Title),
		Description:     strings.TrimSpace(p.ShortDesc),
		LongDescription: strings.TrimSpace(p.LongDesc),
		Tags:            p.Tags,
		Category:        p.Category,
		Location:        p.Location,
		Price:           p.Price,
		PriceType:       p.PriceType,
		AgeMin:          p.AgeMin,
		AgeMax:          p.AgeMax,
		Gender:          strings.ToLower(strings.TrimSpace(p.Gender)),
		SafetyBadges:    p.SafetyBadges,
		Images:          p.Images.all(),
		Status:          domain.ListingStatusApproved,
		Featured:        p.Featured,
		Verified:        p.Verified,
		CreatedAt:       createdAt,
	}
}

// all returns the thumbnail followed by gallery images, without duplicates.
func (i Images) all() []string {
	var out []string
	seen := make(map[string]struct{}, len(i.Gallery)+1)
	for _, url := range append([]string{i.Thumbnail}, i.Gallery...) {
		if url == "" {
			continue
		}
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		out = append(out, url)
	}
	return out
}
