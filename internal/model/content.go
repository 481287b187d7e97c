package model

import (
	"strings"
	"time"
)

// User is the subset of profile fields the ranking engine reads.
type User struct {
	ID           string   `json:"id" yaml:"id"`
	Username     string   `json:"username" yaml:"username"`
	Bio          string   `json:"bio" yaml:"bio"`
	PhoneCountry string   `json:"phone_country" yaml:"phone_country"` // ISO-3166 alpha-2 hint, e.g. "BR"
	Following    []string `json:"following" yaml:"following"`
}

// Post is a social feed entry.
type Post struct {
	ID        string    `json:"id" yaml:"id"`
	AuthorID  string    `json:"author_id" yaml:"author_id"`
	Text      string    `json:"text" yaml:"text"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Likes     int       `json:"likes" yaml:"likes"`
	Comments  int       `json:"comments" yaml:"comments"`
}

// Listing is a marketplace offer.
type Listing struct {
	ID          string `json:"id" yaml:"id"`
	SellerID    string `json:"seller_id" yaml:"seller_id"`
	Title       string `json:"title" yaml:"title"`
	Location    string `json:"location" yaml:"location"`
	CountryCode string `json:"country_code" yaml:"country_code"` // ISO-3166 alpha-2; optional
	SoldCount   int    `json:"sold_count" yaml:"sold_count"`
	Sponsored   bool   `json:"sponsored" yaml:"sponsored"`
}

// Reel is a short-form video.
type Reel struct {
	ID       string `json:"id" yaml:"id"`
	AuthorID string `json:"author_id" yaml:"author_id"`
	Text     string `json:"text" yaml:"text"`
	Views    int    `json:"views" yaml:"views"`
	Likes    int    `json:"likes" yaml:"likes"`
}

// countryNames maps lowercase country-name fragments found in free-form
// location strings to ISO codes. Legacy listings carry only a location
// string like "São Paulo, Brasil".
var countryNames = map[string]string{
	"brasil":    "BR",
	"brazil":    "BR",
	"argentina": "AR",
	"portugal":  "PT",
	"méxico":    "MX",
	"mexico":    "MX",
}

// Country resolves the listing's country. The structured CountryCode wins;
// otherwise the free-form Location is scanned for a known country name
// (case-insensitive). Returns "" when nothing matches.
func (l Listing) Country() string {
	if c := strings.ToUpper(strings.TrimSpace(l.CountryCode)); c != "" {
		return c
	}
	loc := strings.ToLower(l.Location)
	for name, code := range countryNames {
		if strings.Contains(loc, name) {
			return code
		}
	}
	return ""
}
