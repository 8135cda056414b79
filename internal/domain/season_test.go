package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/nasalinha/backend/internal/entity"
	"github.com/nasalinha/backend/internal/model"
	"github.com/nasalinha/backend/internal/repository"
	"github.com/nasalinha/backend/pkg/errorx"
	"github.com/nasalinha/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_seasonDomain_Create(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := NewSeasonDomain(repository.NewSeasonRepository())

	resp, err := d.Create(ctx, &model.CreateSeasonRequest{
		Name:      "Temporada 2025.2",
		StartDate: "2025-08-01",
		EndDate:   "2025-12-20",
	})
	require.NoError(t, err)
	require.Equal(t, "Temporada 2025.2", resp.Season.Name)
	require.Equal(t, 10, resp.Season.PointsPerCheckIn)
	require.False(t, resp.Season.IsActive)

	_, err = d.Create(ctx, &model.CreateSeasonRequest{
		Name:      "Temporada invertida",
		StartDate: "2025-12-20",
		EndDate:   "2025-08-01",
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_seasonDomain_ToggleActive_keepsSingleActiveSeason(t *testing.T) {
	ctx := testutil.MockContext(t)
	seasonRepo := repository.NewSeasonRepository()
	d := NewSeasonDomain(seasonRepo)

	resp, err := d.ToggleActive(ctx, &model.ToggleSeasonActiveRequest{
		ID: testutil.PastSeason.ID,
	})
	require.NoError(t, err)
	require.True(t, resp.IsActive)

	// The previously active season lost its flag.
	previous, err := seasonRepo.GetByID(ctx, testutil.ActiveSeason.ID)
	require.NoError(t, err)
	require.False(t, previous.IsActive)

	active, err := seasonRepo.GetActive(ctx)
	require.NoError(t, err)
	require.Equal(t, testutil.PastSeason.ID, active.ID)
}

func Test_seasonDomain_ActivateAndDeactivate(t *testing.T) {
	ctx := testutil.MockContext(t)
	seasonRepo := repository.NewSeasonRepository()
	d := NewSeasonDomain(seasonRepo)

	_, err := d.Activate(ctx, &model.ActivateSeasonRequest{ID: testutil.PastSeason.ID})
	require.NoError(t, err)

	active, err := seasonRepo.GetActive(ctx)
	require.NoError(t, err)
	require.Equal(t, testutil.PastSeason.ID, active.ID)

	_, err = d.Deactivate(ctx, &model.DeactivateSeasonRequest{ID: testutil.PastSeason.ID})
	require.NoError(t, err)

	_, err = seasonRepo.GetActive(ctx)
	require.Error(t, err)

	_, err = d.Activate(ctx, &model.ActivateSeasonRequest{ID: "not-exists"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_seasonDomain_ToggleActive_deactivation(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := NewSeasonDomain(repository.NewSeasonRepository())

	resp, err := d.ToggleActive(ctx, &model.ToggleSeasonActiveRequest{
		ID: testutil.ActiveSeason.ID,
	})
	require.NoError(t, err)
	require.False(t, resp.IsActive)

	_, err = d.GetActive(ctx, &model.GetActiveSeasonRequest{})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_seasonDomain_Delete_refusesWithDependents(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := NewSeasonDomain(repository.NewSeasonRepository())

	checkInRepo := repository.NewCheckInRepository()
	require.NoError(t, checkInRepo.Create(ctx, &entity.CheckIn{
		Base:     entity.Base{ID: uuid.NewString()},
		UserID:   testutil.Member.ID,
		SeasonID: testutil.ActiveSeason.ID,
		Status:   entity.CheckInApproved,
		Points:   10,
	}))

	_, err := d.Delete(ctx, &model.DeleteSeasonRequest{ID: testutil.ActiveSeason.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)

	// A season without check-ins or points can go.
	_, err = d.Delete(ctx, &model.DeleteSeasonRequest{ID: testutil.PastSeason.ID})
	require.NoError(t, err)

	_, err = d.Get(ctx, &model.GetSeasonRequest{ID: testutil.PastSeason.ID})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_seasonDomain_Update(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := NewSeasonDomain(repository.NewSeasonRepository())

	rate := 20
	_, err := d.Update(ctx, &model.UpdateSeasonRequest{
		ID:               testutil.ActiveSeason.ID,
		Name:             "Temporada renomeada",
		PointsPerCheckIn: &rate,
	})
	require.NoError(t, err)

	resp, err := d.Get(ctx, &model.GetSeasonRequest{ID: testutil.ActiveSeason.ID})
	require.NoError(t, err)
	require.Equal(t, "Temporada renomeada", resp.Season.Name)
	require.Equal(t, 20, resp.Season.PointsPerCheckIn)

	_, err = d.Update(ctx, &model.UpdateSeasonRequest{ID: "not-exists", Name: "x"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_seasonDomain_Update_rateZeroAndOmitted(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := NewSeasonDomain(repository.NewSeasonRepository())

	// An explicit zero rate is stored, not skipped.
	zero := 0
	_, err := d.Update(ctx, &model.UpdateSeasonRequest{
		ID:               testutil.ActiveSeason.ID,
		PointsPerCheckIn: &zero,
	})
	require.NoError(t, err)

	resp, err := d.Get(ctx, &model.GetSeasonRequest{ID: testutil.ActiveSeason.ID})
	require.NoError(t, err)
	require.Zero(t, resp.Season.PointsPerCheckIn)

	// An update without the rate leaves the stored value alone.
	_, err = d.Update(ctx, &model.UpdateSeasonRequest{
		ID:   testutil.ActiveSeason.ID,
		Name: "Temporada sem pontos",
	})
	require.NoError(t, err)

	resp, err = d.Get(ctx, &model.GetSeasonRequest{ID: testutil.ActiveSeason.ID})
	require.NoError(t, err)
	require.Equal(t, "Temporada sem pontos", resp.Season.Name)
	require.Zero(t, resp.Season.PointsPerCheckIn)

	negative := -5
	_, err = d.Update(ctx, &model.UpdateSeasonRequest{
		ID:               testutil.ActiveSeason.ID,
		PointsPerCheckIn: &negative,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}
