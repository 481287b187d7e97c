package providers

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisProviders implements RelationshipProvider and TrustProvider on top of
// Redis. Following sets live in Redis sets, trust scores and phone hints in
// plain string keys. Lookup errors on the trust side degrade to the
// missing-signal branch; ranking must keep working when Redis is down.
type RedisProviders struct {
	rdb *redis.Client
}

// NewRedis creates a Redis-backed provider set.
func NewRedis(rdb *redis.Client) *RedisProviders {
	return &RedisProviders{rdb: rdb}
}

func followingKey(userID string) string {
	return fmt.Sprintf("social:following:%s", userID)
}

func trustKey(sellerID string) string {
	return fmt.Sprintf("trust:seller:%s", sellerID)
}

func phoneCountryKey(userID string) string {
	return fmt.Sprintf("user:phone_country:%s", userID)
}

// FollowingOf returns the members of the user's following set.
func (p *RedisProviders) FollowingOf(ctx context.Context, userID string) ([]string, error) {
	ids, err := p.rdb.SMembers(ctx, followingKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// TrustScoreOf reads a seller's trust score. Absent keys, parse failures,
// and connection errors all report a missing signal.
func (p *RedisProviders) TrustScoreOf(ctx context.Context, sellerID string) (float64, bool) {
	res, err := p.rdb.Get(ctx, trustKey(sellerID)).Result()
	if err == redis.Nil {
		return 0, false
	}
	if err != nil {
		slog.Warn("providers: trust lookup failed", "seller", sellerID, "err", err)
		return 0, false
	}
	v, err := strconv.ParseFloat(res, 64)
	if err != nil {
		slog.Warn("providers: malformed trust score", "seller", sellerID, "value", res)
		return 0, false
	}
	return v, true
}

// PhoneCountryOf reads a user's phone-country hint.
func (p *RedisProviders) PhoneCountryOf(ctx context.Context, userID string) (string, bool) {
	res, err := p.rdb.Get(ctx, phoneCountryKey(userID)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		slog.Warn("providers: phone country lookup failed", "user", userID, "err", err)
		return "", false
	}
	return res, res != ""
}

// SeedFollowing replaces a user's following set. Used by the seeding CLI.
func (p *RedisProviders) SeedFollowing(ctx context.Context, userID string, following []string) error {
	key := followingKey(userID)
	if err := p.rdb.Del(ctx, key).Err(); err != nil {
		return err
	}
	if len(following) == 0 {
		return nil
	}
	members := make([]interface{}, len(following))
	for i, f := range following {
		members[i] = f
	}
	return p.rdb.SAdd(ctx, key, members...).Err()
}

// SeedTrustScore sets a seller's trust score.
func (p *RedisProviders) SeedTrustScore(ctx context.Context, sellerID string, score float64) error {
	return p.rdb.Set(ctx, trustKey(sellerID), strconv.FormatFloat(score, 'f', -1, 64), 0).Err()
}

// SeedPhoneCountry sets a user's phone-country hint.
func (p *RedisProviders) SeedPhoneCountry(ctx context.Context, userID, country string) error {
	return p.rdb.Set(ctx, phoneCountryKey(userID), country, 0).Err()
}
