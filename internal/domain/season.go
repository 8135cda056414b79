package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nasalinha/backend/internal/entity"
	"github.com/nasalinha/backend/internal/model"
	"github.com/nasalinha/backend/internal/repository"
	"github.com/nasalinha/backend/pkg/errorx"
	"github.com/nasalinha/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type SeasonDomain interface {
	Create(ctx context.Context, req *model.CreateSeasonRequest) (*model.CreateSeasonResponse, error)
	GetList(ctx context.Context, req *model.GetSeasonsRequest) (*model.GetSeasonsResponse, error)
	Get(ctx context.Context, req *model.GetSeasonRequest) (*model.GetSeasonResponse, error)
	GetActive(ctx context.Context, req *model.GetActiveSeasonRequest) (*model.GetActiveSeasonResponse, error)
	Update(ctx context.Context, req *model.UpdateSeasonRequest) (*model.UpdateSeasonResponse, error)
	Activate(ctx context.Context, req *model.ActivateSeasonRequest) (*model.ActivateSeasonResponse, error)
	Deactivate(ctx context.Context, req *model.DeactivateSeasonRequest) (*model.DeactivateSeasonResponse, error)
	ToggleActive(ctx context.Context, req *model.ToggleSeasonActiveRequest) (*model.ToggleSeasonActiveResponse, error)
	Delete(ctx context.Context, req *model.DeleteSeasonRequest) (*model.DeleteSeasonResponse, error)
}

type seasonDomain struct {
	seasonRepo repository.SeasonRepository
}

func NewSeasonDomain(seasonRepo repository.SeasonRepository) *seasonDomain {
	return &seasonDomain{seasonRepo: seasonRepo}
}

func (d *seasonDomain) Create(
	ctx context.Context, req *model.CreateSeasonRequest,
) (*model.CreateSeasonResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Name is required")
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid start date %s", req.StartDate)
	}

	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid end date %s", req.EndDate)
	}

	if !endDate.IsZero() && !startDate.IsZero() && endDate.Before(startDate) {
		return nil, errorx.New(errorx.BadRequest, "End date must be after start date")
	}

	if req.PointsPerCheckIn < 0 {
		return nil, errorx.New(errorx.BadRequest, "Points per check-in cannot be negative")
	}

	season := &entity.Season{
		Base:             entity.Base{ID: uuid.NewString()},
		Name:             req.Name,
		Description:      req.Description,
		StartDate:        startDate,
		EndDate:          endDate,
		PointsPerCheckIn: req.PointsPerCheckIn,
		IsActive:         false,
	}

	if season.PointsPerCheckIn == 0 {
		season.PointsPerCheckIn = 10
	}

	if err := d.seasonRepo.Create(ctx, season); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create season: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateSeasonResponse{Season: model.ConvertSeason(season)}, nil
}

func (d *seasonDomain) GetList(
	ctx context.Context, req *model.GetSeasonsRequest,
) (*model.GetSeasonsResponse, error) {
	seasons, err := d.seasonRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get season list: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetSeasonsResponse{Seasons: make([]model.Season, 0, len(seasons))}
	for i := range seasons {
		resp.Seasons = append(resp.Seasons, model.ConvertSeason(&seasons[i]))
	}

	return &resp, nil
}

func (d *seasonDomain) Get(
	ctx context.Context, req *model.GetSeasonRequest,
) (*model.GetSeasonResponse, error) {
	season, err := d.seasonRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found season")
		}

		xcontext.Logger(ctx).Errorf("Cannot get season: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetSeasonResponse{Season: model.ConvertSeason(season)}, nil
}

func (d *seasonDomain) GetActive(
	ctx context.Context, req *model.GetActiveSeasonRequest,
) (*model.GetActiveSeasonResponse, error) {
	season, err := d.seasonRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "There is no active season")
		}

		xcontext.Logger(ctx).Errorf("Cannot get active season: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetActiveSeasonResponse{Season: model.ConvertSeason(season)}, nil
}

func (d *seasonDomain) Update(
	ctx context.Context, req *model.UpdateSeasonRequest,
) (*model.UpdateSeasonResponse, error) {
	// A negative rate tells the repository the field was not provided.
	data := entity.Season{
		Name:             req.Name,
		Description:      req.Description,
		PointsPerCheckIn: -1,
	}

	if req.PointsPerCheckIn != nil {
		if *req.PointsPerCheckIn < 0 {
			return nil, errorx.New(errorx.BadRequest, "Points per check-in cannot be negative")
		}

		data.PointsPerCheckIn = *req.PointsPerCheckIn
	}

	if req.StartDate != "" {
		startDate, err := parseDate(req.StartDate)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid start date %s", req.StartDate)
		}

		data.StartDate = startDate
	}

	if req.EndDate != "" {
		endDate, err := parseDate(req.EndDate)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid end date %s", req.EndDate)
		}

		data.EndDate = endDate
	}

	if err := d.seasonRepo.UpdateByID(ctx, req.ID, &data); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found season")
		}

		xcontext.Logger(ctx).Errorf("Cannot update season: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateSeasonResponse{}, nil
}

// Activate makes the season the only active one. Clearing the other flags
// and setting the target happen in one transaction, so at most one season is
// active at any time.
func (d *seasonDomain) Activate(
	ctx context.Context, req *model.ActivateSeasonRequest,
) (*model.ActivateSeasonResponse, error) {
	if err := d.setActive(ctx, req.ID, true); err != nil {
		return nil, err
	}

	return &model.ActivateSeasonResponse{}, nil
}

func (d *seasonDomain) Deactivate(
	ctx context.Context, req *model.DeactivateSeasonRequest,
) (*model.DeactivateSeasonResponse, error) {
	if err := d.setActive(ctx, req.ID, false); err != nil {
		return nil, err
	}

	return &model.DeactivateSeasonResponse{}, nil
}

// ToggleActive reads the current flag and flips it. The read and the flip are
// not one atomic step; two concurrent toggles can both observe the same flag.
func (d *seasonDomain) ToggleActive(
	ctx context.Context, req *model.ToggleSeasonActiveRequest,
) (*model.ToggleSeasonActiveResponse, error) {
	season, err := d.seasonRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found season")
		}

		xcontext.Logger(ctx).Errorf("Cannot get season: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.setActive(ctx, season.ID, !season.IsActive); err != nil {
		return nil, err
	}

	return &model.ToggleSeasonActiveResponse{IsActive: !season.IsActive}, nil
}

func (d *seasonDomain) setActive(ctx context.Context, id string, isActive bool) error {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if isActive {
		if err := d.seasonRepo.DeactivateAll(ctx); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot deactivate seasons: %v", err)
			return errorx.Unknown
		}
	}

	if err := d.seasonRepo.SetActive(ctx, id, isActive); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Not found season")
		}

		xcontext.Logger(ctx).Errorf("Cannot set season active flag: %v", err)
		return errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return nil
}

func (d *seasonDomain) Delete(
	ctx context.Context, req *model.DeleteSeasonRequest,
) (*model.DeleteSeasonResponse, error) {
	dependents, err := d.seasonRepo.CountDependents(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count season dependents: %v", err)
		return nil, errorx.Unknown
	}

	if dependents > 0 {
		return nil, errorx.New(errorx.AlreadyExists,
			"Cannot delete a season with check-ins or points")
	}

	if err := d.seasonRepo.Delete(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found season")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete season: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteSeasonResponse{}, nil
}

// parseDate accepts RFC3339 timestamps or plain yyyy-mm-dd dates. An empty
// string parses to the zero time.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	return time.Parse("2006-01-02", s)
}
