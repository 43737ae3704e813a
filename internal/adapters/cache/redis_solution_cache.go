package cache

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"time"

	redis "github.com/redis/go-redis/v9"

	"ride-route-service/internal/domain"
)

// DefaultTTL bounds how long a cached solution stays valid. Solutions are
// deterministic for a given problem, so the TTL mostly caps memory use.
const DefaultTTL = 15 * time.Minute

// Redis-backed cache for solved routes, keyed by a problem fingerprint.
// Useful when the same problem is submitted repeatedly (demo pages, retries):
// a hit skips the whole search phase.
type RedisSolutionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisSolutionCache connects using a redis:// URL.
func NewRedisSolutionCache(url string, ttl time.Duration) (*RedisSolutionCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis solution cache: parse url: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &RedisSolutionCache{rdb: redis.NewClient(opt), ttl: ttl}, nil
}

// Return the cached solution for key, reporting whether it was present.
func (c *RedisSolutionCache) Get(ctx context.Context, key string) (*domain.Solution, bool, error) {
	if c.rdb == nil {
		return nil, false, errors.New("redis solution cache: client is nil")
	}

	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached solution: %w", err)
	}

	var sol domain.Solution
	if err := json.Unmarshal(data, &sol); err != nil {
		return nil, false, fmt.Errorf("get cached solution: unmarshal: %w", err)
	}

	return &sol, true, nil
}

// Store the solution under key with the cache TTL.
func (c *RedisSolutionCache) Put(ctx context.Context, key string, sol *domain.Solution) error {
	if c.rdb == nil {
		return errors.New("redis solution cache: client is nil")
	}

	if sol == nil {
		return errors.New("put cached solution: solution is nil")
	}

	data, err := json.Marshal(sol)
	if err != nil {
		return fmt.Errorf("put cached solution: marshal: %w", err)
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("put cached solution: %w", err)
	}

	return nil
}

// ProblemKey fingerprints a problem instance (FNV-1a over its coordinates and
// pairings) for use as a cache key. Identical problems produce identical keys.
func ProblemKey(p *domain.Problem) string {
	h := fnv.New64a()

	var buf [8]byte
	writeFloat := func(f float64) {
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(f))
		h.Write(buf[:])
	}

	for _, loc := range p.Locations() {
		writeFloat(loc.Lon)
		writeFloat(loc.Lat)
	}
	for _, pr := range p.Pairs() {
		binary.BigEndian.PutUint64(buf[:], uint64(pr.Pickup))
		h.Write(buf[:])
		binary.BigEndian.PutUint64(buf[:], uint64(pr.Dropoff))
		h.Write(buf[:])
	}

	return fmt.Sprintf("solve:%016x", h.Sum64())
}
