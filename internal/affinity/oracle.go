// Package affinity integrates the external semantic-affinity oracle: given
// a piece of content text and a user's profile text, it yields an integer
// score 1–10 expressing how well the content matches the user's interests.
// The oracle is fallible and latent; callers substitute Neutral on any
// failure and never retry.
package affinity

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
)

// Neutral is the affinity substituted whenever the oracle is unavailable,
// unconfigured, over the fan-out cutoff, or fails a call.
const Neutral = 5

// Affinity score bounds.
const (
	MinScore = 1
	MaxScore = 10
)

// Oracle scores content against a user's profile text. Query returns a
// value in [MinScore, MaxScore] on success. Implementations must honor the
// context deadline.
type Oracle interface {
	Query(ctx context.Context, contentText, profileText string) (int, error)
}

var firstInt = regexp.MustCompile(`-?\d+`)

// ParseScore extracts an affinity score from a model response. The first
// integer found is used and clamped into [MinScore, MaxScore]; responses
// with no digits are malformed.
func ParseScore(s string) (int, error) {
	m := firstInt.FindString(s)
	if m == "" {
		return 0, fmt.Errorf("no score in oracle response %q", s)
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("parse oracle response %q: %w", s, err)
	}
	if n < MinScore {
		n = MinScore
	}
	if n > MaxScore {
		n = MaxScore
	}
	return n, nil
}
