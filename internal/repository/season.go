package repository

import (
	"context"
	"errors"

	"github.com/nasalinha/backend/internal/entity"
	"github.com/nasalinha/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type SeasonRepository interface {
	Create(ctx context.Context, season *entity.Season) error
	GetByID(ctx context.Context, id string) (*entity.Season, error)
	GetActive(ctx context.Context) (*entity.Season, error)
	GetList(ctx context.Context) ([]entity.Season, error)
	UpdateByID(ctx context.Context, id string, data *entity.Season) error
	DeactivateAll(ctx context.Context) error
	SetActive(ctx context.Context, id string, isActive bool) error
	Delete(ctx context.Context, id string) error
	CountDependents(ctx context.Context, id string) (int64, error)
}

type seasonRepository struct{}

func NewSeasonRepository() *seasonRepository {
	return &seasonRepository{}
}

func (r *seasonRepository) Create(ctx context.Context, season *entity.Season) error {
	return xcontext.DB(ctx).Create(season).Error
}

func (r *seasonRepository) GetByID(ctx context.Context, id string) (*entity.Season, error) {
	var result entity.Season
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetActive returns the unique active season, or gorm.ErrRecordNotFound when
// no season is active.
func (r *seasonRepository) GetActive(ctx context.Context) (*entity.Season, error) {
	var result entity.Season
	err := xcontext.DB(ctx).
		Where("is_active=?", true).
		Order("created_at DESC").
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *seasonRepository) GetList(ctx context.Context) ([]entity.Season, error) {
	var result []entity.Season
	err := xcontext.DB(ctx).Order("start_date DESC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateByID writes the fields the caller provided. Zero-value fields are
// left untouched; a negative PointsPerCheckIn marks the rate as not provided,
// so zero remains a storable rate.
func (r *seasonRepository) UpdateByID(ctx context.Context, id string, data *entity.Season) error {
	updateMap := map[string]any{}
	if data.Name != "" {
		updateMap["name"] = data.Name
	}

	if data.Description != "" {
		updateMap["description"] = data.Description
	}

	if !data.StartDate.IsZero() {
		updateMap["start_date"] = data.StartDate
	}

	if !data.EndDate.IsZero() {
		updateMap["end_date"] = data.EndDate
	}

	if data.PointsPerCheckIn >= 0 {
		updateMap["points_per_check_in"] = data.PointsPerCheckIn
	}

	if len(updateMap) == 0 {
		return nil
	}

	tx := xcontext.DB(ctx).
		Model(&entity.Season{}).
		Where("id=?", id).
		Updates(updateMap)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DeactivateAll clears the active flag of every season. Call it together
// with SetActive inside one transaction so no reader ever observes two
// active seasons.
func (r *seasonRepository) DeactivateAll(ctx context.Context) error {
	return xcontext.DB(ctx).
		Model(&entity.Season{}).
		Where("is_active=?", true).
		Update("is_active", false).Error
}

func (r *seasonRepository) SetActive(ctx context.Context, id string, isActive bool) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Season{}).
		Where("id=?", id).
		Update("is_active", isActive)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *seasonRepository) Delete(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Season{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// CountDependents counts check-ins and point rows referencing the season.
// Deletion is refused while any exist.
func (r *seasonRepository) CountDependents(ctx context.Context, id string) (int64, error) {
	var checkIns int64
	err := xcontext.DB(ctx).
		Model(&entity.CheckIn{}).
		Where("season_id=?", id).
		Count(&checkIns).Error
	if err != nil {
		return 0, err
	}

	var points int64
	err = xcontext.DB(ctx).
		Model(&entity.Point{}).
		Where("season_id=?", id).
		Count(&points).Error
	if err != nil {
		return 0, err
	}

	return checkIns + points, nil
}
