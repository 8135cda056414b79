package testutil

import (
	"context"
	"sort"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient is an in-memory stand-in for the sorted set operations the
// leaderboard needs.
type MockRedisClient struct {
	sets map[string]map[string]float64
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{sets: make(map[string]map[string]float64)}
}

func (c *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	_, ok := c.sets[key]
	return ok, nil
}

func (c *MockRedisClient) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.sets, key)
	}

	return nil
}

func (c *MockRedisClient) ZAdd(ctx context.Context, key string, z redis.Z) error {
	if _, ok := c.sets[key]; !ok {
		c.sets[key] = make(map[string]float64)
	}

	c.sets[key][z.Member.(string)] = z.Score
	return nil
}

func (c *MockRedisClient) ZIncrBy(ctx context.Context, key string, incr int64, member string) error {
	if _, ok := c.sets[key]; !ok {
		c.sets[key] = make(map[string]float64)
	}

	c.sets[key][member] += float64(incr)
	return nil
}

func (c *MockRedisClient) ZRem(ctx context.Context, key string, members ...string) error {
	for _, member := range members {
		delete(c.sets[key], member)
	}

	return nil
}

func (c *MockRedisClient) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	zs := c.sorted(key)
	if offset >= len(zs) {
		return nil, nil
	}

	end := offset + limit
	if end > len(zs) {
		end = len(zs)
	}

	return zs[offset:end], nil
}

func (c *MockRedisClient) ZRevRank(ctx context.Context, key string, member string) (uint64, error) {
	for i, z := range c.sorted(key) {
		if z.Member == member {
			return uint64(i), nil
		}
	}

	return 0, redis.Nil
}

func (c *MockRedisClient) sorted(key string) []redis.Z {
	zs := make([]redis.Z, 0, len(c.sets[key]))
	for member, score := range c.sets[key] {
		zs = append(zs, redis.Z{Member: member, Score: score})
	}

	sort.Slice(zs, func(i, j int) bool {
		if zs[i].Score != zs[j].Score {
			return zs[i].Score > zs[j].Score
		}

		return zs[i].Member.(string) > zs[j].Member.(string)
	})

	return zs
}
