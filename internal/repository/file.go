package repository

import (
	"context"

	"github.com/nasalinha/backend/internal/entity"
	"github.com/nasalinha/backend/pkg/xcontext"
)

type FileRepository interface {
	Create(ctx context.Context, file *entity.File) error
	GetByUserID(ctx context.Context, userID string) ([]entity.File, error)
}

type fileRepository struct{}

func NewFileRepository() *fileRepository {
	return &fileRepository{}
}

func (r *fileRepository) Create(ctx context.Context, file *entity.File) error {
	return xcontext.DB(ctx).Create(file).Error
}

func (r *fileRepository) GetByUserID(ctx context.Context, userID string) ([]entity.File, error) {
	var result []entity.File
	err := xcontext.DB(ctx).
		Where("created_by=?", userID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
