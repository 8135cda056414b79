package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/nasalinha/backend/internal/domain/statistic"
	"github.com/nasalinha/backend/internal/entity"
	"github.com/nasalinha/backend/internal/model"
	"github.com/nasalinha/backend/internal/repository"
	"github.com/nasalinha/backend/pkg/testutil"
	"github.com/nasalinha/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newStatisticDomain(redisClient *testutil.MockRedisClient) *statisticDomain {
	pointRepo := repository.NewPointRepository()
	return NewStatisticDomain(
		pointRepo,
		repository.NewUserRepository(),
		repository.NewSeasonRepository(),
		statistic.New(pointRepo, redisClient),
	)
}

func Test_statisticDomain_GetRanking(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Member.ID)
	d := newStatisticDomain(testutil.NewMockRedisClient())

	pointRepo := repository.NewPointRepository()
	rows := []*entity.Point{
		{Base: entity.Base{ID: uuid.NewString()}, UserID: testutil.Member.ID,
			SeasonID: testutil.ActiveSeason.ID, TotalPoints: 30, CheckInsCount: 3},
		{Base: entity.Base{ID: uuid.NewString()}, UserID: testutil.Trainee.ID,
			SeasonID: testutil.ActiveSeason.ID, TotalPoints: 80, CheckInsCount: 8},
		{Base: entity.Base{ID: uuid.NewString()}, UserID: testutil.Admin.ID,
			SeasonID: testutil.ActiveSeason.ID, TotalPoints: 50, CheckInsCount: 5},
	}
	for _, row := range rows {
		require.NoError(t, pointRepo.Create(ctx, row))
	}

	resp, err := d.GetRanking(ctx, &model.GetRankingRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Ranking, 3)

	require.Equal(t, testutil.Trainee.ID, resp.Ranking[0].User.ID)
	require.Equal(t, 80, resp.Ranking[0].TotalPoints)
	require.Equal(t, 1, resp.Ranking[0].Position)

	require.Equal(t, testutil.Admin.ID, resp.Ranking[1].User.ID)
	require.Equal(t, 2, resp.Ranking[1].Position)

	require.Equal(t, testutil.Member.ID, resp.Ranking[2].User.ID)
	require.Equal(t, 3, resp.Ranking[2].Position)
}

func Test_statisticDomain_GetRanking_scopedToSeason(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Member.ID)
	d := newStatisticDomain(testutil.NewMockRedisClient())

	pointRepo := repository.NewPointRepository()
	require.NoError(t, pointRepo.Create(ctx, &entity.Point{
		Base: entity.Base{ID: uuid.NewString()}, UserID: testutil.Member.ID,
		SeasonID: testutil.ActiveSeason.ID, TotalPoints: 30, CheckInsCount: 3,
	}))
	require.NoError(t, pointRepo.Create(ctx, &entity.Point{
		Base: entity.Base{ID: uuid.NewString()}, UserID: testutil.Trainee.ID,
		SeasonID: testutil.PastSeason.ID, TotalPoints: 99, CheckInsCount: 9,
	}))

	// The default ranking only sees the active season.
	resp, err := d.GetRanking(ctx, &model.GetRankingRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Ranking, 1)
	require.Equal(t, testutil.Member.ID, resp.Ranking[0].User.ID)

	past, err := d.GetRanking(ctx, &model.GetRankingRequest{SeasonID: testutil.PastSeason.ID})
	require.NoError(t, err)
	require.Len(t, past.Ranking, 1)
	require.Equal(t, testutil.Trainee.ID, past.Ranking[0].User.ID)
}

func Test_statisticDomain_GetRanking_noActiveSeason(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Member.ID)
	d := newStatisticDomain(testutil.NewMockRedisClient())

	require.NoError(t, repository.NewSeasonRepository().DeactivateAll(ctx))

	resp, err := d.GetRanking(ctx, &model.GetRankingRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Ranking)
}

func Test_statisticDomain_GetRanking_reflectsNewCheckIns(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Member.ID)
	redisClient := testutil.NewMockRedisClient()
	d := newStatisticDomain(redisClient)

	pointRepo := repository.NewPointRepository()
	require.NoError(t, pointRepo.Create(ctx, &entity.Point{
		Base: entity.Base{ID: uuid.NewString()}, UserID: testutil.Member.ID,
		SeasonID: testutil.ActiveSeason.ID, TotalPoints: 30, CheckInsCount: 3,
	}))

	// First read warms the sorted set from the ledger.
	_, err := d.GetRanking(ctx, &model.GetRankingRequest{})
	require.NoError(t, err)

	// A check-in accrual bumps both the ledger and the sorted set.
	require.NoError(t, pointRepo.Accrue(ctx, &entity.Point{
		Base: entity.Base{ID: uuid.NewString()}, UserID: testutil.Member.ID,
		SeasonID: testutil.ActiveSeason.ID, TotalPoints: 10, CheckInsCount: 1,
	}))
	require.NoError(t, d.leaderboard.ChangePoint(ctx, testutil.ActiveSeason.ID, testutil.Member.ID, 10))

	resp, err := d.GetRanking(ctx, &model.GetRankingRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Ranking, 1)
	require.Equal(t, 40, resp.Ranking[0].TotalPoints)
}

func Test_statisticDomain_GetMyRank(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Member.ID)
	d := newStatisticDomain(testutil.NewMockRedisClient())

	pointRepo := repository.NewPointRepository()
	require.NoError(t, pointRepo.Create(ctx, &entity.Point{
		Base: entity.Base{ID: uuid.NewString()}, UserID: testutil.Trainee.ID,
		SeasonID: testutil.ActiveSeason.ID, TotalPoints: 80, CheckInsCount: 8,
	}))
	require.NoError(t, pointRepo.Create(ctx, &entity.Point{
		Base: entity.Base{ID: uuid.NewString()}, UserID: testutil.Member.ID,
		SeasonID: testutil.ActiveSeason.ID, TotalPoints: 30, CheckInsCount: 3,
	}))

	resp, err := d.GetMyRank(ctx, &model.GetMyRankRequest{})
	require.NoError(t, err)
	require.Equal(t, 2, resp.Statistic.Position)
	require.Equal(t, 30, resp.Statistic.TotalPoints)

	traineeCtx := xcontext.WithRequestUserID(ctx, testutil.Trainee.ID)
	first, err := d.GetMyRank(traineeCtx, &model.GetMyRankRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, first.Statistic.Position)
}
