package domain

import (
	"context"
	"errors"

	"github.com/nasalinha/backend/internal/entity"
	"github.com/nasalinha/backend/internal/model"
	"github.com/nasalinha/backend/internal/repository"
	"github.com/nasalinha/backend/pkg/enum"
	"github.com/nasalinha/backend/pkg/errorx"
	"github.com/nasalinha/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error)
	GetList(ctx context.Context, req *model.GetUsersRequest) (*model.GetUsersResponse, error)
	Get(ctx context.Context, req *model.GetUserRequest) (*model.GetUserResponse, error)
	Update(ctx context.Context, req *model.UpdateUserRequest) (*model.UpdateUserResponse, error)
	ToggleActive(ctx context.Context, req *model.ToggleUserActiveRequest) (*model.ToggleUserActiveResponse, error)
}

type userDomain struct {
	userRepo repository.UserRepository
}

func NewUserDomain(userRepo repository.UserRepository) *userDomain {
	return &userDomain{userRepo: userRepo}
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the current user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{User: model.ConvertUser(user)}, nil
}

func (d *userDomain) GetList(
	ctx context.Context, req *model.GetUsersRequest,
) (*model.GetUsersResponse, error) {
	users, err := d.userRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user list: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetUsersResponse{Users: make([]model.User, 0, len(users))}
	for i := range users {
		resp.Users = append(resp.Users, model.ConvertUser(&users[i]))
	}

	return &resp, nil
}

func (d *userDomain) Get(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	user, err := d.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUserResponse{User: model.ConvertUser(user)}, nil
}

func (d *userDomain) Update(
	ctx context.Context, req *model.UpdateUserRequest,
) (*model.UpdateUserResponse, error) {
	data := entity.User{Name: req.Name}
	if req.Role != "" {
		role, err := enum.ToEnum[entity.GlobalRole](req.Role)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid role %s", req.Role)
		}

		data.Role = role
	}

	if err := d.userRepo.UpdateByID(ctx, req.ID, &data); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateUserResponse{}, nil
}

func (d *userDomain) ToggleActive(
	ctx context.Context, req *model.ToggleUserActiveRequest,
) (*model.ToggleUserActiveResponse, error) {
	user, err := d.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if user.ID == xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "You cannot deactivate yourself")
	}

	if err := d.userRepo.SetActive(ctx, user.ID, !user.IsActive); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot toggle user active flag: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ToggleUserActiveResponse{IsActive: !user.IsActive}, nil
}
