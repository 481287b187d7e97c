// Package fixture loads ranking inputs from a yaml file: a user, candidate
// items per surface, and inline collaborator data. The rank, explain, and
// redis seed commands all consume this format.
package fixture

import (
	"fmt"
	"os"

	"mural/internal/model"
	"mural/internal/providers"

	"gopkg.in/yaml.v3"
)

// Fixture is one self-contained ranking scenario.
type Fixture struct {
	User     *model.User     `yaml:"user"`
	Posts    []model.Post    `yaml:"posts"`
	Listings []model.Listing `yaml:"listings"`
	Reels    []model.Reel    `yaml:"reels"`

	// TrustScores maps seller id -> trust score, standing in for the
	// external trust service.
	TrustScores map[string]float64 `yaml:"trust_scores"`
}

// Load reads and parses a fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// Providers builds a static collaborator set from the fixture's inline data.
func (f *Fixture) Providers() *providers.Static {
	s := providers.NewStatic()
	if f.User != nil {
		s.Following[f.User.ID] = f.User.Following
		if f.User.PhoneCountry != "" {
			s.PhoneCountries[f.User.ID] = f.User.PhoneCountry
		}
	}
	for seller, score := range f.TrustScores {
		s.TrustScores[seller] = score
	}
	return s
}
