package domain

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/nasalinha/backend/internal/common"
	"github.com/nasalinha/backend/internal/domain/statistic"
	"github.com/nasalinha/backend/internal/entity"
	"github.com/nasalinha/backend/internal/model"
	"github.com/nasalinha/backend/internal/repository"
	"github.com/nasalinha/backend/pkg/enum"
	"github.com/nasalinha/backend/pkg/errorx"
	"github.com/nasalinha/backend/pkg/storage"
	"github.com/nasalinha/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CheckInDomain interface {
	Create(ctx context.Context, req *model.CreateCheckInRequest) (*model.CreateCheckInResponse, error)
	GetList(ctx context.Context, req *model.GetCheckInsRequest) (*model.GetCheckInsResponse, error)
	GetMy(ctx context.Context, req *model.GetMyCheckInsRequest) (*model.GetMyCheckInsResponse, error)
	Update(ctx context.Context, req *model.UpdateCheckInRequest) (*model.UpdateCheckInResponse, error)
	Delete(ctx context.Context, req *model.DeleteCheckInRequest) (*model.DeleteCheckInResponse, error)
}

type checkInDomain struct {
	checkInRepo repository.CheckInRepository
	seasonRepo  repository.SeasonRepository
	pointRepo   repository.PointRepository
	userRepo    repository.UserRepository
	fileRepo    repository.FileRepository
	storage     storage.Storage
	leaderboard statistic.Leaderboard
}

func NewCheckInDomain(
	checkInRepo repository.CheckInRepository,
	seasonRepo repository.SeasonRepository,
	pointRepo repository.PointRepository,
	userRepo repository.UserRepository,
	fileRepo repository.FileRepository,
	storage storage.Storage,
	leaderboard statistic.Leaderboard,
) *checkInDomain {
	return &checkInDomain{
		checkInRepo: checkInRepo,
		seasonRepo:  seasonRepo,
		pointRepo:   pointRepo,
		userRepo:    userRepo,
		fileRepo:    fileRepo,
		storage:     storage,
		leaderboard: leaderboard,
	}
}

// Create records a check-in of the current user against the active season.
// The photo is uploaded before the transaction begins, so a storage failure
// never leaves a half-written check-in. The point ledger is updated in the
// same transaction as the check-in row.
func (d *checkInDomain) Create(
	ctx context.Context, req *model.CreateCheckInRequest,
) (*model.CreateCheckInResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	season, err := d.seasonRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unavailable, "There is no active season")
		}

		xcontext.Logger(ctx).Errorf("Cannot get active season: %v", err)
		return nil, errorx.Unknown
	}

	photo, notes, err := d.uploadPhoto(ctx, userID)
	if err != nil {
		return nil, err
	}

	checkIn := &entity.CheckIn{
		Base:     entity.Base{ID: uuid.NewString()},
		UserID:   userID,
		SeasonID: season.ID,
		PhotoURL: photo.Url,
		Status:   entity.CheckInApproved,
		Points:   season.PointsPerCheckIn,
		Notes:    notes,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.checkInRepo.Create(ctx, checkIn); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create check-in: %v", err)
		return nil, errorx.Unknown
	}

	err = d.pointRepo.Accrue(ctx, &entity.Point{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        userID,
		SeasonID:      season.ID,
		TotalPoints:   season.PointsPerCheckIn,
		CheckInsCount: 1,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot accrue points: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	err = d.leaderboard.ChangePoint(ctx, season.ID, userID, int64(season.PointsPerCheckIn))
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot bump leaderboard: %v", err)
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user of check-in: %v", err)
		return nil, errorx.Unknown
	}

	checkIn.User = *user
	checkIn.Season = *season
	return &model.CreateCheckInResponse{CheckIn: model.ConvertCheckIn(checkIn)}, nil
}

// uploadPhoto reads the multipart body, resizes the photo, and pushes it to
// the object storage, keeping a file record of the upload.
func (d *checkInDomain) uploadPhoto(
	ctx context.Context, userID string,
) (*storage.UploadResponse, string, error) {
	cfg := xcontext.Configs(ctx)
	r := xcontext.HTTPRequest(ctx)

	if err := r.ParseMultipartForm(cfg.File.MaxSize); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot parse multipart form: %v", err)
		return nil, "", errorx.New(errorx.BadRequest, "Invalid multipart form")
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		return nil, "", errorx.New(errorx.BadRequest, "A photo is required to check in")
	}
	defer file.Close()

	if header.Size > cfg.File.MaxSize {
		return nil, "", errorx.New(errorx.BadRequest,
			"The photo must not exceed %d bytes", cfg.File.MaxSize)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read the photo: %v", err)
		return nil, "", errorx.Unknown
	}

	resized, mime, err := common.ResizePhoto(data)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot decode the photo: %v", err)
		return nil, "", errorx.New(errorx.BadRequest, "The photo is not a valid image")
	}

	uploaded, err := d.storage.Upload(ctx, &storage.UploadObject{
		Bucket:   cfg.File.CheckInBucket,
		Prefix:   "checkin",
		FileName: header.Filename,
		Mime:     mime,
		Data:     resized,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload the photo: %v", err)
		return nil, "", errorx.New(errorx.Unavailable, "Cannot upload the photo, please try again")
	}

	err = d.fileRepo.Create(ctx, &entity.File{
		Base:      entity.Base{ID: uuid.NewString()},
		Mime:      mime,
		Name:      uploaded.FileName,
		CreatedBy: userID,
		Url:       uploaded.Url,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save the file record: %v", err)
		return nil, "", errorx.Unknown
	}

	return uploaded, r.FormValue("notes"), nil
}

func (d *checkInDomain) GetList(
	ctx context.Context, req *model.GetCheckInsRequest,
) (*model.GetCheckInsResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 || req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceeded the maximum limit of %d", apiCfg.MaxLimit)
	}

	checkIns, err := d.checkInRepo.GetList(ctx, repository.CheckInFilter{
		UserID:   req.UserID,
		SeasonID: req.SeasonID,
		Offset:   req.Offset,
		Limit:    req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get check-in list: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetCheckInsResponse{CheckIns: make([]model.CheckIn, 0, len(checkIns))}
	for i := range checkIns {
		resp.CheckIns = append(resp.CheckIns, model.ConvertCheckIn(&checkIns[i]))
	}

	return &resp, nil
}

func (d *checkInDomain) GetMy(
	ctx context.Context, req *model.GetMyCheckInsRequest,
) (*model.GetMyCheckInsResponse, error) {
	checkIns, err := d.checkInRepo.GetList(ctx, repository.CheckInFilter{
		UserID:   xcontext.RequestUserID(ctx),
		SeasonID: req.SeasonID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get check-in list: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetMyCheckInsResponse{CheckIns: make([]model.CheckIn, 0, len(checkIns))}
	for i := range checkIns {
		resp.CheckIns = append(resp.CheckIns, model.ConvertCheckIn(&checkIns[i]))
	}

	return &resp, nil
}

// Update edits the review fields of a check-in. The point ledger is not
// recalculated; use the point administration endpoints to correct totals.
func (d *checkInDomain) Update(
	ctx context.Context, req *model.UpdateCheckInRequest,
) (*model.UpdateCheckInResponse, error) {
	if req.Points < 0 {
		return nil, errorx.New(errorx.BadRequest, "Points cannot be negative")
	}

	data := entity.CheckIn{Notes: req.Notes, Points: req.Points}
	if req.Status != "" {
		status, err := enum.ToEnum[entity.CheckInStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}

		data.Status = status
	}

	if err := d.checkInRepo.UpdateByID(ctx, req.ID, &data); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found check-in")
		}

		xcontext.Logger(ctx).Errorf("Cannot update check-in: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateCheckInResponse{}, nil
}

func (d *checkInDomain) Delete(
	ctx context.Context, req *model.DeleteCheckInRequest,
) (*model.DeleteCheckInResponse, error) {
	if _, err := d.checkInRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found check-in")
		}

		xcontext.Logger(ctx).Errorf("Cannot get check-in: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.checkInRepo.Delete(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete check-in: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteCheckInResponse{}, nil
}
