package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nasalinha/backend/internal/entity"
	"github.com/nasalinha/backend/internal/model"
	"github.com/nasalinha/backend/internal/repository"
	"github.com/nasalinha/backend/pkg/crypto"
	"github.com/nasalinha/backend/pkg/emailer"
	"github.com/nasalinha/backend/pkg/enum"
	"github.com/nasalinha/backend/pkg/errorx"
	"github.com/nasalinha/backend/pkg/logger"
	"github.com/nasalinha/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type AuthDomain interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Refresh(ctx context.Context, req *model.RefreshTokenRequest) (*model.RefreshTokenResponse, error)
	ForgotPassword(ctx context.Context, req *model.ForgotPasswordRequest) (*model.ForgotPasswordResponse, error)
	ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) (*model.ResetPasswordResponse, error)
}

type authDomain struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	emailer          emailer.Emailer
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	emailer emailer.Emailer,
) *authDomain {
	return &authDomain{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		emailer:          emailer,
	}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Name == "" || req.Email == "" {
		return nil, errorx.New(errorx.BadRequest, "Name and email are required")
	}

	if len(req.Password) < minPasswordLength {
		return nil, errorx.New(errorx.BadRequest,
			"Password must have at least %d characters", minPasswordLength)
	}

	_, err := d.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This email is already registered")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	role := entity.RoleMember
	if req.Role != "" {
		parsed, err := enum.ToEnum[entity.GlobalRole](req.Role)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid role %s", req.Role)
		}

		// Admins are created by the seed or by another admin, never by an
		// open registration.
		if parsed == entity.RoleAdmin {
			return nil, errorx.New(errorx.PermissionDenied, "Cannot register an admin account")
		}

		role = parsed
	}

	hashedPassword, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash the password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:     entity.Base{ID: uuid.NewString()},
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     role,
		IsActive: true,
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	accessToken, err := d.generateAccessToken(ctx, user)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	refreshToken, err := d.generateRefreshToken(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return nil, errorx.Unknown
	}

	d.sendWelcome(xcontext.Logger(ctx), user)

	return &model.RegisterResponse{
		User:         model.ConvertUser(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// sendWelcome fires the welcome email in the background. A failed email never
// fails the registration.
func (d *authDomain) sendWelcome(log logger.Logger, user *entity.User) {
	go func() {
		if err := d.emailer.SendWelcome(context.Background(), user.Name, user.Email); err != nil {
			log.Warnf("Cannot send the welcome email to %s: %v", user.Email, err)
		}
	}()
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := d.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	if !crypto.ComparePassword(user.Password, req.Password) {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
	}

	if !user.IsActive {
		return nil, errorx.New(errorx.PermissionDenied, "Your account is deactivated")
	}

	accessToken, err := d.generateAccessToken(ctx, user)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	refreshToken, err := d.generateRefreshToken(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{
		User:         model.ConvertUser(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (d *authDomain) Refresh(
	ctx context.Context, req *model.RefreshTokenRequest,
) (*model.RefreshTokenResponse, error) {
	var token model.RefreshToken
	if err := xcontext.TokenEngine(ctx).Verify(req.RefreshToken, &token); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot verify refresh token: %v", err)
		return nil, errorx.New(errorx.Unauthenticated, "Invalid refresh token")
	}

	hashedFamily := crypto.SHA256([]byte(token.Family))
	storedToken, err := d.refreshTokenRepo.Get(ctx, hashedFamily)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid refresh token")
		}

		xcontext.Logger(ctx).Errorf("Cannot get refresh token: %v", err)
		return nil, errorx.Unknown
	}

	if time.Now().After(storedToken.Expiration) {
		return nil, errorx.New(errorx.TokenExpired, "Your session is expired, please login again")
	}

	if storedToken.Counter != token.Counter {
		// A replayed token means the family leaked. Revoke everything.
		if err := d.refreshTokenRepo.Delete(ctx, hashedFamily); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete stolen refresh token: %v", err)
			return nil, errorx.Unknown
		}

		return nil, errorx.New(errorx.StolenDetected,
			"Your refresh token will be revoked because it is detected as stolen")
	}

	user, err := d.userRepo.GetByID(ctx, storedToken.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user of refresh token: %v", err)
		return nil, errorx.Unknown
	}

	if !user.IsActive {
		return nil, errorx.New(errorx.PermissionDenied, "Your account is deactivated")
	}

	if err := d.refreshTokenRepo.Rotate(ctx, hashedFamily); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot rotate refresh token: %v", err)
		return nil, errorx.Unknown
	}

	cfg := xcontext.Configs(ctx).Auth
	newRefreshToken, err := xcontext.TokenEngine(ctx).Generate(
		cfg.RefreshToken.Expiration,
		model.RefreshToken{Family: token.Family, Counter: token.Counter + 1},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return nil, errorx.Unknown
	}

	accessToken, err := d.generateAccessToken(ctx, user)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

func (d *authDomain) ForgotPassword(
	ctx context.Context, req *model.ForgotPasswordRequest,
) (*model.ForgotPasswordResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, errorx.New(errorx.BadRequest, "Email is required")
	}

	user, err := d.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Do not reveal whether the email exists.
			return &model.ForgotPasswordResponse{}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	cfg := xcontext.Configs(ctx).Auth
	resetToken, err := xcontext.TokenEngine(ctx).Generate(
		cfg.PasswordReset.Expiration,
		model.PasswordResetToken{UserID: user.ID, Purpose: model.PasswordResetPurpose},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate password reset token: %v", err)
		return nil, errorx.Unknown
	}

	log := xcontext.Logger(ctx)
	go func() {
		err := d.emailer.SendPasswordReset(context.Background(), user.Name, user.Email, resetToken)
		if err != nil {
			log.Warnf("Cannot send the password reset email to %s: %v", user.Email, err)
		}
	}()

	return &model.ForgotPasswordResponse{}, nil
}

func (d *authDomain) ResetPassword(
	ctx context.Context, req *model.ResetPasswordRequest,
) (*model.ResetPasswordResponse, error) {
	var token model.PasswordResetToken
	if err := xcontext.TokenEngine(ctx).Verify(req.Token, &token); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot verify password reset token: %v", err)
		return nil, errorx.New(errorx.Unauthenticated, "Invalid or expired reset token")
	}

	if token.Purpose != model.PasswordResetPurpose {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid or expired reset token")
	}

	if len(req.Password) < minPasswordLength {
		return nil, errorx.New(errorx.BadRequest,
			"Password must have at least %d characters", minPasswordLength)
	}

	hashedPassword, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash the password: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.UpdatePassword(ctx, token.UserID, hashedPassword); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot update the password: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ResetPasswordResponse{}, nil
}

func (d *authDomain) generateAccessToken(ctx context.Context, user *entity.User) (string, error) {
	cfg := xcontext.Configs(ctx).Auth
	return xcontext.TokenEngine(ctx).Generate(cfg.AccessToken.Expiration, model.AccessToken{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	})
}

func (d *authDomain) generateRefreshToken(ctx context.Context, userID string) (string, error) {
	family, err := crypto.GenerateRandomString()
	if err != nil {
		return "", err
	}

	cfg := xcontext.Configs(ctx).Auth
	token, err := xcontext.TokenEngine(ctx).Generate(
		cfg.RefreshToken.Expiration,
		model.RefreshToken{Family: family, Counter: 0},
	)
	if err != nil {
		return "", err
	}

	err = d.refreshTokenRepo.Create(ctx, &entity.RefreshToken{
		Family:     crypto.SHA256([]byte(family)),
		UserID:     userID,
		Counter:    0,
		Expiration: time.Now().Add(cfg.RefreshToken.Expiration),
	})
	if err != nil {
		return "", err
	}

	return token, nil
}
