// Package providers defines the external collaborator contracts the ranking
// engine consumes — relationship and trust lookups — together with an
// in-memory implementation for tests and fixtures and a Redis-backed one
// for deployments.
package providers

import "context"

// RelationshipProvider resolves the set of entity IDs a user follows. It is
// queried once per ranking invocation, before scoring begins.
type RelationshipProvider interface {
	FollowingOf(ctx context.Context, userID string) ([]string, error)
}

// TrustProvider resolves seller reputation and user geo hints. Missing
// signals are reported through the bool, never as errors: the scorers map
// them to a zero contribution.
type TrustProvider interface {
	TrustScoreOf(ctx context.Context, sellerID string) (float64, bool)
	PhoneCountryOf(ctx context.Context, userID string) (string, bool)
}

// Static is a fixed in-memory provider set. Used by tests and by fixture
// driven CLI runs.
type Static struct {
	Following     map[string][]string
	TrustScores   map[string]float64
	PhoneCountries map[string]string
}

// NewStatic creates an empty static provider set.
func NewStatic() *Static {
	return &Static{
		Following:     map[string][]string{},
		TrustScores:   map[string]float64{},
		PhoneCountries: map[string]string{},
	}
}

// FollowingOf returns the configured following list; unknown users follow
// nobody.
func (s *Static) FollowingOf(_ context.Context, userID string) ([]string, error) {
	return s.Following[userID], nil
}

// TrustScoreOf returns the configured trust score, if any.
func (s *Static) TrustScoreOf(_ context.Context, sellerID string) (float64, bool) {
	v, ok := s.TrustScores[sellerID]
	return v, ok
}

// PhoneCountryOf returns the configured geo hint, if any.
func (s *Static) PhoneCountryOf(_ context.Context, userID string) (string, bool) {
	v, ok := s.PhoneCountries[userID]
	return v, ok
}
