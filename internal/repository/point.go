package repository

import (
	"context"

	"github.com/nasalinha/backend/internal/entity"
	"github.com/nasalinha/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PointRepository interface {
	Create(ctx context.Context, point *entity.Point) error
	Accrue(ctx context.Context, point *entity.Point) error
	GetByID(ctx context.Context, id string) (*entity.Point, error)
	GetByUserAndSeason(ctx context.Context, userID, seasonID string) (*entity.Point, error)
	GetList(ctx context.Context) ([]entity.Point, error)
	GetRanking(ctx context.Context, seasonID string) ([]entity.Point, error)
	UpdateByID(ctx context.Context, id string, data *entity.Point) error
	Delete(ctx context.Context, id string) error
}

type pointRepository struct{}

func NewPointRepository() *pointRepository {
	return &pointRepository{}
}

func (r *pointRepository) Create(ctx context.Context, point *entity.Point) error {
	return xcontext.DB(ctx).Create(point).Error
}

// Accrue inserts the (user, season) record or atomically increments the
// existing one. TotalPoints carries the delta of this accrual, not the
// final total.
func (r *pointRepository) Accrue(ctx context.Context, point *entity.Point) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "season_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"total_points":    gorm.Expr("total_points + ?", point.TotalPoints),
				"check_ins_count": gorm.Expr("check_ins_count + ?", point.CheckInsCount),
			}),
		}).Create(point).Error
}

func (r *pointRepository) GetByID(ctx context.Context, id string) (*entity.Point, error) {
	var result entity.Point
	err := xcontext.DB(ctx).
		Preload("User").
		Preload("Season").
		Take(&result, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *pointRepository) GetByUserAndSeason(ctx context.Context, userID, seasonID string) (*entity.Point, error) {
	var result entity.Point
	err := xcontext.DB(ctx).
		Take(&result, "user_id=? AND season_id=?", userID, seasonID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *pointRepository) GetList(ctx context.Context) ([]entity.Point, error) {
	var result []entity.Point
	err := xcontext.DB(ctx).
		Preload("User").
		Preload("Season").
		Order("total_points DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *pointRepository) GetRanking(ctx context.Context, seasonID string) ([]entity.Point, error) {
	var result []entity.Point
	err := xcontext.DB(ctx).
		Preload("User").
		Where("season_id=?", seasonID).
		Order("total_points DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateByID overwrites both counters. Zero is a legal value for either
// column, so the assignments go through a map instead of the entity struct.
func (r *pointRepository) UpdateByID(ctx context.Context, id string, data *entity.Point) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Point{}).
		Where("id=?", id).
		Updates(map[string]any{
			"total_points":    data.TotalPoints,
			"check_ins_count": data.CheckInsCount,
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Delete removes the row permanently. A soft-deleted row would still hold
// the unique (user, season) slot and swallow future accruals.
func (r *pointRepository) Delete(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Unscoped().Delete(&entity.Point{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
