package domain

import (
	"testing"

	"github.com/nasalinha/backend/internal/domain/statistic"
	"github.com/nasalinha/backend/internal/model"
	"github.com/nasalinha/backend/internal/repository"
	"github.com/nasalinha/backend/pkg/errorx"
	"github.com/nasalinha/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newPointDomain() *pointDomain {
	pointRepo := repository.NewPointRepository()
	return NewPointDomain(
		pointRepo,
		repository.NewUserRepository(),
		repository.NewSeasonRepository(),
		statistic.New(pointRepo, testutil.NewMockRedisClient()),
	)
}

func Test_pointDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Admin.ID)
	d := newPointDomain()

	resp, err := d.Create(ctx, &model.CreatePointRequest{
		UserID:        testutil.Member.ID,
		SeasonID:      testutil.ActiveSeason.ID,
		TotalPoints:   50,
		CheckInsCount: 5,
	})
	require.NoError(t, err)
	require.Equal(t, 50, resp.Point.TotalPoints)
	require.Equal(t, testutil.Member.ID, resp.Point.User.ID)

	// Only one ledger row per user and season.
	_, err = d.Create(ctx, &model.CreatePointRequest{
		UserID:      testutil.Member.ID,
		SeasonID:    testutil.ActiveSeason.ID,
		TotalPoints: 10,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}

func Test_pointDomain_Create_unknownUserOrSeason(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Admin.ID)
	d := newPointDomain()

	var errx errorx.Error

	_, err := d.Create(ctx, &model.CreatePointRequest{
		UserID:   "not-exists",
		SeasonID: testutil.ActiveSeason.ID,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)

	_, err = d.Create(ctx, &model.CreatePointRequest{
		UserID:   testutil.Member.ID,
		SeasonID: "not-exists",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_pointDomain_UpdateAndDelete(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Admin.ID)
	d := newPointDomain()

	created, err := d.Create(ctx, &model.CreatePointRequest{
		UserID:        testutil.Member.ID,
		SeasonID:      testutil.ActiveSeason.ID,
		TotalPoints:   50,
		CheckInsCount: 5,
	})
	require.NoError(t, err)

	_, err = d.Update(ctx, &model.UpdatePointRequest{
		ID:            created.Point.ID,
		TotalPoints:   70,
		CheckInsCount: 7,
	})
	require.NoError(t, err)

	got, err := d.Get(ctx, &model.GetPointRequest{ID: created.Point.ID})
	require.NoError(t, err)
	require.Equal(t, 70, got.Point.TotalPoints)
	require.Equal(t, 7, got.Point.CheckInsCount)

	_, err = d.Delete(ctx, &model.DeletePointRequest{ID: created.Point.ID})
	require.NoError(t, err)

	_, err = d.Get(ctx, &model.GetPointRequest{ID: created.Point.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_pointDomain_Update_storesZeroTotal(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Admin.ID)
	d := newPointDomain()

	created, err := d.Create(ctx, &model.CreatePointRequest{
		UserID:        testutil.Member.ID,
		SeasonID:      testutil.ActiveSeason.ID,
		TotalPoints:   50,
		CheckInsCount: 5,
	})
	require.NoError(t, err)

	// Resetting the total to zero overwrites the stored value.
	_, err = d.Update(ctx, &model.UpdatePointRequest{
		ID:            created.Point.ID,
		TotalPoints:   0,
		CheckInsCount: 3,
	})
	require.NoError(t, err)

	got, err := d.Get(ctx, &model.GetPointRequest{ID: created.Point.ID})
	require.NoError(t, err)
	require.Zero(t, got.Point.TotalPoints)
	require.Equal(t, 3, got.Point.CheckInsCount)
}

func Test_pointDomain_GetList_orderedByPoints(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Admin.ID)
	d := newPointDomain()

	for _, req := range []*model.CreatePointRequest{
		{UserID: testutil.Member.ID, SeasonID: testutil.ActiveSeason.ID, TotalPoints: 30},
		{UserID: testutil.Trainee.ID, SeasonID: testutil.ActiveSeason.ID, TotalPoints: 80},
	} {
		_, err := d.Create(ctx, req)
		require.NoError(t, err)
	}

	resp, err := d.GetList(ctx, &model.GetPointsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Points, 2)
	require.Equal(t, testutil.Trainee.ID, resp.Points[0].User.ID)
	require.Equal(t, testutil.Member.ID, resp.Points[1].User.ID)
}
