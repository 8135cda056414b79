package repository

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/nasalinha/backend/internal/entity"
	"github.com/nasalinha/backend/pkg/testutil"
	"github.com/nasalinha/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_pointRepository_Accrue(t *testing.T) {
	ctx := testutil.MockContext(t)
	repo := NewPointRepository()

	err := repo.Accrue(ctx, &entity.Point{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        testutil.Member.ID,
		SeasonID:      testutil.ActiveSeason.ID,
		TotalPoints:   10,
		CheckInsCount: 1,
	})
	require.NoError(t, err)

	// A second accrual on the same pair increments instead of inserting.
	err = repo.Accrue(ctx, &entity.Point{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        testutil.Member.ID,
		SeasonID:      testutil.ActiveSeason.ID,
		TotalPoints:   20,
		CheckInsCount: 1,
	})
	require.NoError(t, err)

	point, err := repo.GetByUserAndSeason(ctx, testutil.Member.ID, testutil.ActiveSeason.ID)
	require.NoError(t, err)
	require.Equal(t, 30, point.TotalPoints)
	require.Equal(t, 2, point.CheckInsCount)

	// A different season starts its own row.
	err = repo.Accrue(ctx, &entity.Point{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        testutil.Member.ID,
		SeasonID:      testutil.PastSeason.ID,
		TotalPoints:   5,
		CheckInsCount: 1,
	})
	require.NoError(t, err)

	other, err := repo.GetByUserAndSeason(ctx, testutil.Member.ID, testutil.PastSeason.ID)
	require.NoError(t, err)
	require.Equal(t, 5, other.TotalPoints)
}

func Test_pointRepository_Accrue_concurrent(t *testing.T) {
	ctx := testutil.MockContext(t)
	repo := NewPointRepository()

	// Concurrent accruals on one pair must land on a single row with the
	// exact sum, whichever insert wins the race.
	const accruals = 20
	var wg sync.WaitGroup
	errs := make(chan error, accruals)
	for i := 0; i < accruals; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Accrue(ctx, &entity.Point{
				Base:          entity.Base{ID: uuid.NewString()},
				UserID:        testutil.Member.ID,
				SeasonID:      testutil.ActiveSeason.ID,
				TotalPoints:   10,
				CheckInsCount: 1,
			})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	point, err := repo.GetByUserAndSeason(ctx, testutil.Member.ID, testutil.ActiveSeason.ID)
	require.NoError(t, err)
	require.Equal(t, accruals*10, point.TotalPoints)
	require.Equal(t, accruals, point.CheckInsCount)

	var rows []entity.Point
	require.NoError(t, xcontext.DB(ctx).
		Where("user_id=? AND season_id=?", testutil.Member.ID, testutil.ActiveSeason.ID).
		Find(&rows).Error)
	require.Len(t, rows, 1)
}

func Test_pointRepository_UpdateByID_storesZeroValues(t *testing.T) {
	ctx := testutil.MockContext(t)
	repo := NewPointRepository()

	point := &entity.Point{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        testutil.Member.ID,
		SeasonID:      testutil.ActiveSeason.ID,
		TotalPoints:   50,
		CheckInsCount: 5,
	}
	require.NoError(t, repo.Create(ctx, point))

	err := repo.UpdateByID(ctx, point.ID, &entity.Point{TotalPoints: 0, CheckInsCount: 3})
	require.NoError(t, err)

	reloaded, err := repo.GetByID(ctx, point.ID)
	require.NoError(t, err)
	require.Zero(t, reloaded.TotalPoints)
	require.Equal(t, 3, reloaded.CheckInsCount)
}

func Test_pointRepository_GetRanking(t *testing.T) {
	ctx := testutil.MockContext(t)
	repo := NewPointRepository()

	for _, p := range []*entity.Point{
		{Base: entity.Base{ID: uuid.NewString()}, UserID: testutil.Member.ID,
			SeasonID: testutil.ActiveSeason.ID, TotalPoints: 30},
		{Base: entity.Base{ID: uuid.NewString()}, UserID: testutil.Trainee.ID,
			SeasonID: testutil.ActiveSeason.ID, TotalPoints: 80},
		{Base: entity.Base{ID: uuid.NewString()}, UserID: testutil.Admin.ID,
			SeasonID: testutil.PastSeason.ID, TotalPoints: 99},
	} {
		require.NoError(t, repo.Create(ctx, p))
	}

	ranking, err := repo.GetRanking(ctx, testutil.ActiveSeason.ID)
	require.NoError(t, err)
	require.Len(t, ranking, 2)
	require.Equal(t, testutil.Trainee.ID, ranking[0].UserID)
	require.Equal(t, testutil.Trainee.Name, ranking[0].User.Name)
	require.Equal(t, testutil.Member.ID, ranking[1].UserID)
}
