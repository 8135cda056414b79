package statistic

import (
	"context"
	"fmt"

	"github.com/nasalinha/backend/internal/repository"
	"github.com/nasalinha/backend/pkg/xcontext"
	"github.com/nasalinha/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

// Entry is one member of a season leaderboard, ordered by points descending.
type Entry struct {
	UserID string
	Points int64
}

// Leaderboard keeps the per-season ranking in a redis sorted set. The set is
// rebuilt lazily from the point ledger when missing, so Invalidate after any
// edit that bypasses ChangePoint.
type Leaderboard interface {
	GetLeaderBoard(ctx context.Context, seasonID string, offset, limit int) ([]Entry, error)
	GetRank(ctx context.Context, seasonID, userID string) (uint64, error)
	ChangePoint(ctx context.Context, seasonID, userID string, points int64) error
	Invalidate(ctx context.Context, seasonID string) error
}

type leaderboard struct {
	pointRepo   repository.PointRepository
	redisClient xredis.Client
}

func New(pointRepo repository.PointRepository, redisClient xredis.Client) *leaderboard {
	return &leaderboard{pointRepo: pointRepo, redisClient: redisClient}
}

func seasonKey(seasonID string) string {
	return fmt.Sprintf("leaderboard:season:%s", seasonID)
}

func (l *leaderboard) GetLeaderBoard(
	ctx context.Context, seasonID string, offset, limit int,
) ([]Entry, error) {
	key := seasonKey(seasonID)
	if err := l.loadIfAbsent(ctx, key, seasonID); err != nil {
		return nil, err
	}

	zs, err := l.redisClient.ZRevRangeWithScores(ctx, key, offset, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(zs))
	for _, z := range zs {
		userID, ok := z.Member.(string)
		if !ok {
			return nil, fmt.Errorf("invalid member type %T", z.Member)
		}

		entries = append(entries, Entry{UserID: userID, Points: int64(z.Score)})
	}

	return entries, nil
}

func (l *leaderboard) GetRank(ctx context.Context, seasonID, userID string) (uint64, error) {
	key := seasonKey(seasonID)
	if err := l.loadIfAbsent(ctx, key, seasonID); err != nil {
		return 0, err
	}

	rank, err := l.redisClient.ZRevRank(ctx, key, userID)
	if err != nil {
		return 0, err
	}

	return rank + 1, nil
}

// ChangePoint bumps the user score if the sorted set is already loaded. A
// missing set stays missing; the next read rebuilds it from the ledger.
func (l *leaderboard) ChangePoint(
	ctx context.Context, seasonID, userID string, points int64,
) error {
	key := seasonKey(seasonID)
	existed, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		return err
	}

	if !existed {
		return nil
	}

	return l.redisClient.ZIncrBy(ctx, key, points, userID)
}

func (l *leaderboard) Invalidate(ctx context.Context, seasonID string) error {
	return l.redisClient.Del(ctx, seasonKey(seasonID))
}

func (l *leaderboard) loadIfAbsent(ctx context.Context, key, seasonID string) error {
	existed, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		return err
	}

	if existed {
		return nil
	}

	points, err := l.pointRepo.GetRanking(ctx, seasonID)
	if err != nil {
		return err
	}

	for _, p := range points {
		err := l.redisClient.ZAdd(ctx, key, redis.Z{
			Member: p.UserID,
			Score:  float64(p.TotalPoints),
		})
		if err != nil {
			return err
		}
	}

	xcontext.Logger(ctx).Debugf("Rebuilt leaderboard of season %s with %d members", seasonID, len(points))
	return nil
}
