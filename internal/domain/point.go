package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nasalinha/backend/internal/domain/statistic"
	"github.com/nasalinha/backend/internal/entity"
	"github.com/nasalinha/backend/internal/model"
	"github.com/nasalinha/backend/internal/repository"
	"github.com/nasalinha/backend/pkg/errorx"
	"github.com/nasalinha/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// PointDomain administers the per-(user, season) ledger directly. Every write
// invalidates the cached leaderboard of the touched season.
type PointDomain interface {
	Create(ctx context.Context, req *model.CreatePointRequest) (*model.CreatePointResponse, error)
	GetList(ctx context.Context, req *model.GetPointsRequest) (*model.GetPointsResponse, error)
	Get(ctx context.Context, req *model.GetPointRequest) (*model.GetPointResponse, error)
	GetByUserAndSeason(ctx context.Context, req *model.GetPointByUserAndSeasonRequest) (*model.GetPointByUserAndSeasonResponse, error)
	Update(ctx context.Context, req *model.UpdatePointRequest) (*model.UpdatePointResponse, error)
	Delete(ctx context.Context, req *model.DeletePointRequest) (*model.DeletePointResponse, error)
}

type pointDomain struct {
	pointRepo   repository.PointRepository
	userRepo    repository.UserRepository
	seasonRepo  repository.SeasonRepository
	leaderboard statistic.Leaderboard
}

func NewPointDomain(
	pointRepo repository.PointRepository,
	userRepo repository.UserRepository,
	seasonRepo repository.SeasonRepository,
	leaderboard statistic.Leaderboard,
) *pointDomain {
	return &pointDomain{
		pointRepo:   pointRepo,
		userRepo:    userRepo,
		seasonRepo:  seasonRepo,
		leaderboard: leaderboard,
	}
}

func (d *pointDomain) Create(
	ctx context.Context, req *model.CreatePointRequest,
) (*model.CreatePointResponse, error) {
	if req.TotalPoints < 0 || req.CheckInsCount < 0 {
		return nil, errorx.New(errorx.BadRequest, "Points and count cannot be negative")
	}

	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.seasonRepo.GetByID(ctx, req.SeasonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found season")
		}

		xcontext.Logger(ctx).Errorf("Cannot get season: %v", err)
		return nil, errorx.Unknown
	}

	_, err = d.pointRepo.GetByUserAndSeason(ctx, req.UserID, req.SeasonID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists,
			"This user already has a point record in this season")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get point record: %v", err)
		return nil, errorx.Unknown
	}

	point := &entity.Point{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        req.UserID,
		SeasonID:      req.SeasonID,
		TotalPoints:   req.TotalPoints,
		CheckInsCount: req.CheckInsCount,
	}

	if err := d.pointRepo.Create(ctx, point); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create point record: %v", err)
		return nil, errorx.Unknown
	}

	d.invalidateLeaderboard(ctx, req.SeasonID)

	point.User = *user
	return &model.CreatePointResponse{Point: model.ConvertPoint(point)}, nil
}

func (d *pointDomain) GetList(
	ctx context.Context, req *model.GetPointsRequest,
) (*model.GetPointsResponse, error) {
	points, err := d.pointRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get point list: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetPointsResponse{Points: make([]model.Point, 0, len(points))}
	for i := range points {
		resp.Points = append(resp.Points, model.ConvertPoint(&points[i]))
	}

	return &resp, nil
}

func (d *pointDomain) Get(
	ctx context.Context, req *model.GetPointRequest,
) (*model.GetPointResponse, error) {
	point, err := d.pointRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found point record")
		}

		xcontext.Logger(ctx).Errorf("Cannot get point record: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetPointResponse{Point: model.ConvertPoint(point)}, nil
}

func (d *pointDomain) GetByUserAndSeason(
	ctx context.Context, req *model.GetPointByUserAndSeasonRequest,
) (*model.GetPointByUserAndSeasonResponse, error) {
	point, err := d.pointRepo.GetByUserAndSeason(ctx, req.UserID, req.SeasonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found point record")
		}

		xcontext.Logger(ctx).Errorf("Cannot get point record: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, point.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user of point record: %v", err)
		return nil, errorx.Unknown
	}

	point.User = *user
	return &model.GetPointByUserAndSeasonResponse{Point: model.ConvertPoint(point)}, nil
}

func (d *pointDomain) Update(
	ctx context.Context, req *model.UpdatePointRequest,
) (*model.UpdatePointResponse, error) {
	if req.TotalPoints < 0 || req.CheckInsCount < 0 {
		return nil, errorx.New(errorx.BadRequest, "Points and count cannot be negative")
	}

	point, err := d.pointRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found point record")
		}

		xcontext.Logger(ctx).Errorf("Cannot get point record: %v", err)
		return nil, errorx.Unknown
	}

	data := entity.Point{
		TotalPoints:   req.TotalPoints,
		CheckInsCount: req.CheckInsCount,
	}

	if err := d.pointRepo.UpdateByID(ctx, req.ID, &data); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update point record: %v", err)
		return nil, errorx.Unknown
	}

	d.invalidateLeaderboard(ctx, point.SeasonID)

	return &model.UpdatePointResponse{}, nil
}

func (d *pointDomain) Delete(
	ctx context.Context, req *model.DeletePointRequest,
) (*model.DeletePointResponse, error) {
	point, err := d.pointRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found point record")
		}

		xcontext.Logger(ctx).Errorf("Cannot get point record: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.pointRepo.Delete(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete point record: %v", err)
		return nil, errorx.Unknown
	}

	d.invalidateLeaderboard(ctx, point.SeasonID)

	return &model.DeletePointResponse{}, nil
}

func (d *pointDomain) invalidateLeaderboard(ctx context.Context, seasonID string) {
	if err := d.leaderboard.Invalidate(ctx, seasonID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate leaderboard of season %s: %v", seasonID, err)
	}
}
