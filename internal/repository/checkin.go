package repository

import (
	"context"

	"github.com/nasalinha/backend/internal/entity"
	"github.com/nasalinha/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CheckInRepository interface {
	Create(ctx context.Context, checkIn *entity.CheckIn) error
	GetByID(ctx context.Context, id string) (*entity.CheckIn, error)
	GetList(ctx context.Context, filter CheckInFilter) ([]entity.CheckIn, error)
	UpdateByID(ctx context.Context, id string, data *entity.CheckIn) error
	Delete(ctx context.Context, id string) error
}

// CheckInFilter narrows listings. Zero-value fields are ignored.
type CheckInFilter struct {
	UserID   string
	SeasonID string
	Offset   int
	Limit    int
}

type checkInRepository struct{}

func NewCheckInRepository() *checkInRepository {
	return &checkInRepository{}
}

func (r *checkInRepository) Create(ctx context.Context, checkIn *entity.CheckIn) error {
	return xcontext.DB(ctx).Create(checkIn).Error
}

func (r *checkInRepository) GetByID(ctx context.Context, id string) (*entity.CheckIn, error) {
	var result entity.CheckIn
	err := xcontext.DB(ctx).
		Preload("User").
		Preload("Season").
		Take(&result, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *checkInRepository) GetList(ctx context.Context, filter CheckInFilter) ([]entity.CheckIn, error) {
	tx := xcontext.DB(ctx).
		Preload("User").
		Preload("Season").
		Order("created_at DESC")

	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	if filter.SeasonID != "" {
		tx = tx.Where("season_id=?", filter.SeasonID)
	}

	if filter.Limit != 0 {
		tx = tx.Offset(filter.Offset).Limit(filter.Limit)
	}

	var result []entity.CheckIn
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateByID overwrites the review fields. Points and notes are written
// through a map so an admin can zero the points or clear the notes; the
// empty status means leave it as is.
func (r *checkInRepository) UpdateByID(ctx context.Context, id string, data *entity.CheckIn) error {
	updateMap := map[string]any{
		"points": data.Points,
		"notes":  data.Notes,
	}

	if data.Status != "" {
		updateMap["status"] = data.Status
	}

	tx := xcontext.DB(ctx).
		Model(&entity.CheckIn{}).
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

func (r *checkInRepository) Delete(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.CheckIn{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
