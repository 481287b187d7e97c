package ranking

import (
	"strings"
	"time"
)

// Context carries the per-invocation signals the scorers read: the resolved
// current user (nil for anonymous traffic) and the ranking timestamp. It is
// built once per ranking call and never persisted.
type Context struct {
	// Now anchors all recency math for the invocation.
	Now time.Time

	user *contextUser
}

type contextUser struct {
	id           string
	bio          string
	phoneCountry string
	following    map[string]struct{}
}

// AnonymousContext builds a context with no current user. Anonymous traffic
// receives no follow, geo, or affinity bonuses.
func AnonymousContext(now time.Time) Context {
	return Context{Now: now}
}

// UserContext builds a context for a resolved user. The following slice is
// copied into a lookup set; it is expected to be resolved once, before
// scoring begins.
func UserContext(id, bio, phoneCountry string, following []string, now time.Time) Context {
	set := make(map[string]struct{}, len(following))
	for _, f := range following {
		if f = strings.TrimSpace(f); f != "" {
			set[f] = struct{}{}
		}
	}
	return Context{
		Now: now,
		user: &contextUser{
			id:           id,
			bio:          bio,
			phoneCountry: strings.ToUpper(strings.TrimSpace(phoneCountry)),
			following:    set,
		},
	}
}

// Anonymous reports whether the context has no current user.
func (c Context) Anonymous() bool { return c.user == nil }

// UserID returns the current user's id, or "" for anonymous contexts.
func (c Context) UserID() string {
	if c.user == nil {
		return ""
	}
	return c.user.id
}

// Bio returns the current user's profile text, or "" when absent.
func (c Context) Bio() string {
	if c.user == nil {
		return ""
	}
	return c.user.bio
}

// PhoneCountry returns the user's ISO country hint, or "" when absent.
func (c Context) PhoneCountry() string {
	if c.user == nil {
		return ""
	}
	return c.user.phoneCountry
}

// Follows reports whether the current user follows the given entity.
func (c Context) Follows(id string) bool {
	if c.user == nil {
		return false
	}
	_, ok := c.user.following[id]
	return ok
}

// AgeHours returns the item age in hours relative to Now. Future timestamps
// clamp to zero so they earn the maximum recency bonus, never more.
func (c Context) AgeHours(t time.Time) float64 {
	h := c.Now.Sub(t).Hours()
	if h < 0 {
		return 0
	}
	return h
}
