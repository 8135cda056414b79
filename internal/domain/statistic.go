package domain

import (
	"context"
	"errors"

	"github.com/nasalinha/backend/internal/domain/statistic"
	"github.com/nasalinha/backend/internal/model"
	"github.com/nasalinha/backend/internal/repository"
	"github.com/nasalinha/backend/pkg/errorx"
	"github.com/nasalinha/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type StatisticDomain interface {
	GetRanking(ctx context.Context, req *model.GetRankingRequest) (*model.GetRankingResponse, error)
	GetMyRank(ctx context.Context, req *model.GetMyRankRequest) (*model.GetMyRankResponse, error)
}

type statisticDomain struct {
	pointRepo   repository.PointRepository
	userRepo    repository.UserRepository
	seasonRepo  repository.SeasonRepository
	leaderboard statistic.Leaderboard
}

func NewStatisticDomain(
	pointRepo repository.PointRepository,
	userRepo repository.UserRepository,
	seasonRepo repository.SeasonRepository,
	leaderboard statistic.Leaderboard,
) *statisticDomain {
	return &statisticDomain{
		pointRepo:   pointRepo,
		userRepo:    userRepo,
		seasonRepo:  seasonRepo,
		leaderboard: leaderboard,
	}
}

// GetRanking returns the season ranking ordered by points descending with
// 1-based positions. Without a season id it ranks the active season; when no
// season is active the ranking is simply empty. The redis leaderboard serves
// the ordering; when redis is unreachable the ranking degrades to a direct
// ledger query.
func (d *statisticDomain) GetRanking(
	ctx context.Context, req *model.GetRankingRequest,
) (*model.GetRankingResponse, error) {
	seasonID := req.SeasonID
	if seasonID == "" {
		season, err := d.seasonRepo.GetActive(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &model.GetRankingResponse{Ranking: []model.UserStatistic{}}, nil
			}

			xcontext.Logger(ctx).Errorf("Cannot get active season: %v", err)
			return nil, errorx.Unknown
		}

		seasonID = season.ID
	}

	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 || req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceeded the maximum limit of %d", apiCfg.MaxLimit)
	}

	entries, err := d.leaderboard.GetLeaderBoard(ctx, seasonID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Leaderboard is unavailable, falling back to database: %v", err)
		return d.getRankingFromDB(ctx, seasonID, req.Offset, req.Limit)
	}

	ranking := make([]model.UserStatistic, 0, len(entries))
	for i, entry := range entries {
		stat, err := d.loadStatistic(ctx, seasonID, entry.UserID)
		if err != nil {
			return nil, err
		}

		stat.Position = req.Offset + i + 1
		ranking = append(ranking, stat)
	}

	return &model.GetRankingResponse{Ranking: ranking}, nil
}

func (d *statisticDomain) GetMyRank(
	ctx context.Context, req *model.GetMyRankRequest,
) (*model.GetMyRankResponse, error) {
	seasonID, err := d.resolveSeasonID(ctx, req.SeasonID)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	stat, err := d.loadStatistic(ctx, seasonID, userID)
	if err != nil {
		return nil, err
	}

	rank, err := d.leaderboard.GetRank(ctx, seasonID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get rank of user %s: %v", userID, err)
		return nil, errorx.Unknown
	}

	stat.Position = int(rank)
	return &model.GetMyRankResponse{Statistic: stat}, nil
}

func (d *statisticDomain) resolveSeasonID(ctx context.Context, seasonID string) (string, error) {
	if seasonID != "" {
		return seasonID, nil
	}

	season, err := d.seasonRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errorx.New(errorx.Unavailable, "There is no active season")
		}

		xcontext.Logger(ctx).Errorf("Cannot get active season: %v", err)
		return "", errorx.Unknown
	}

	return season.ID, nil
}

func (d *statisticDomain) loadStatistic(
	ctx context.Context, seasonID, userID string,
) (model.UserStatistic, error) {
	point, err := d.pointRepo.GetByUserAndSeason(ctx, userID, seasonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.UserStatistic{}, errorx.New(errorx.NotFound,
				"Not found points of this user in this season")
		}

		xcontext.Logger(ctx).Errorf("Cannot get point record: %v", err)
		return model.UserStatistic{}, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user %s: %v", userID, err)
		return model.UserStatistic{}, errorx.Unknown
	}

	return model.UserStatistic{
		User:          model.ConvertShortUser(user),
		TotalPoints:   point.TotalPoints,
		CheckInsCount: point.CheckInsCount,
	}, nil
}

func (d *statisticDomain) getRankingFromDB(
	ctx context.Context, seasonID string, offset, limit int,
) (*model.GetRankingResponse, error) {
	points, err := d.pointRepo.GetRanking(ctx, seasonID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get ranking from database: %v", err)
		return nil, errorx.Unknown
	}

	if offset >= len(points) {
		return &model.GetRankingResponse{Ranking: []model.UserStatistic{}}, nil
	}

	end := offset + limit
	if end > len(points) {
		end = len(points)
	}

	ranking := make([]model.UserStatistic, 0, end-offset)
	for i := offset; i < end; i++ {
		ranking = append(ranking, model.UserStatistic{
			User:          model.ConvertShortUser(&points[i].User),
			TotalPoints:   points[i].TotalPoints,
			CheckInsCount: points[i].CheckInsCount,
			Position:      i + 1,
		})
	}

	return &model.GetRankingResponse{Ranking: ranking}, nil
}
