package domain

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nasalinha/backend/internal/domain/statistic"
	"github.com/nasalinha/backend/internal/entity"
	"github.com/nasalinha/backend/internal/model"
	"github.com/nasalinha/backend/internal/repository"
	"github.com/nasalinha/backend/pkg/errorx"
	"github.com/nasalinha/backend/pkg/testutil"
	"github.com/nasalinha/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newCheckInDomain(mockStorage *testutil.MockStorage) *checkInDomain {
	pointRepo := repository.NewPointRepository()
	return NewCheckInDomain(
		repository.NewCheckInRepository(),
		repository.NewSeasonRepository(),
		pointRepo,
		repository.NewUserRepository(),
		repository.NewFileRepository(),
		mockStorage,
		statistic.New(pointRepo, testutil.NewMockRedisClient()),
	)
}

func withPhotoRequest(t *testing.T, ctx context.Context, notes string) context.Context {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	encoded := bytes.Buffer{}
	require.NoError(t, png.Encode(&encoded, img))

	body := bytes.Buffer{}
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("photo", "selfie.png")
	require.NoError(t, err)
	_, err = part.Write(encoded.Bytes())
	require.NoError(t, err)

	require.NoError(t, w.WriteField("notes", notes))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/createCheckIn", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return xcontext.WithHTTPRequest(ctx, req)
}

func withEmptyRequest(ctx context.Context) context.Context {
	req := httptest.NewRequest(http.MethodPost, "/createCheckIn", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=empty")
	return xcontext.WithHTTPRequest(ctx, req)
}

func Test_checkInDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Member.ID)
	mockStorage := testutil.NewMockStorage()
	d := newCheckInDomain(mockStorage)

	resp, err := d.Create(withPhotoRequest(t, ctx, "primeiro dia"), &model.CreateCheckInRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.Member.ID, resp.CheckIn.User.ID)
	require.Equal(t, testutil.ActiveSeason.ID, resp.CheckIn.SeasonID)
	require.Equal(t, "APPROVED", resp.CheckIn.Status)
	require.Equal(t, 10, resp.CheckIn.Points)
	require.Equal(t, "primeiro dia", resp.CheckIn.Notes)
	require.NotEmpty(t, resp.CheckIn.PhotoURL)
	require.Len(t, mockStorage.Uploaded, 1)

	point, err := repository.NewPointRepository().
		GetByUserAndSeason(ctx, testutil.Member.ID, testutil.ActiveSeason.ID)
	require.NoError(t, err)
	require.Equal(t, 10, point.TotalPoints)
	require.Equal(t, 1, point.CheckInsCount)
}

func Test_checkInDomain_Create_accruesAcrossRateChanges(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Member.ID)
	d := newCheckInDomain(testutil.NewMockStorage())

	first, err := d.Create(withPhotoRequest(t, ctx, ""), &model.CreateCheckInRequest{})
	require.NoError(t, err)
	require.Equal(t, 10, first.CheckIn.Points)

	seasonRepo := repository.NewSeasonRepository()
	require.NoError(t, seasonRepo.UpdateByID(ctx, testutil.ActiveSeason.ID,
		&entity.Season{PointsPerCheckIn: 20}))

	second, err := d.Create(withPhotoRequest(t, ctx, ""), &model.CreateCheckInRequest{})
	require.NoError(t, err)
	require.Equal(t, 20, second.CheckIn.Points)

	// The first check-in keeps the rate it was created with.
	checkInRepo := repository.NewCheckInRepository()
	reloaded, err := checkInRepo.GetByID(ctx, first.CheckIn.ID)
	require.NoError(t, err)
	require.Equal(t, 10, reloaded.Points)

	point, err := repository.NewPointRepository().
		GetByUserAndSeason(ctx, testutil.Member.ID, testutil.ActiveSeason.ID)
	require.NoError(t, err)
	require.Equal(t, 30, point.TotalPoints)
	require.Equal(t, 2, point.CheckInsCount)
}

func Test_checkInDomain_Create_noActiveSeason(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Member.ID)
	d := newCheckInDomain(testutil.NewMockStorage())

	require.NoError(t, repository.NewSeasonRepository().DeactivateAll(ctx))

	_, err := d.Create(withPhotoRequest(t, ctx, ""), &model.CreateCheckInRequest{})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unavailable, errx.Code)
}

func Test_checkInDomain_Create_missingPhoto(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Member.ID)
	d := newCheckInDomain(testutil.NewMockStorage())

	_, err := d.Create(withEmptyRequest(ctx), &model.CreateCheckInRequest{})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_checkInDomain_Create_storageFailureLeavesNoCheckIn(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Member.ID)
	mockStorage := testutil.NewMockStorage()
	mockStorage.Err = errorx.New(errorx.Unavailable, "storage is down")
	d := newCheckInDomain(mockStorage)

	_, err := d.Create(withPhotoRequest(t, ctx, ""), &model.CreateCheckInRequest{})
	require.Error(t, err)

	checkIns, err := repository.NewCheckInRepository().GetList(ctx, repository.CheckInFilter{
		UserID: testutil.Member.ID,
	})
	require.NoError(t, err)
	require.Empty(t, checkIns)
}

func Test_checkInDomain_Update_doesNotTouchLedger(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Member.ID)
	d := newCheckInDomain(testutil.NewMockStorage())

	created, err := d.Create(withPhotoRequest(t, ctx, ""), &model.CreateCheckInRequest{})
	require.NoError(t, err)

	_, err = d.Update(ctx, &model.UpdateCheckInRequest{
		ID:     created.CheckIn.ID,
		Status: "REJECTED",
		Points: created.CheckIn.Points,
		Notes:  "foto borrada",
	})
	require.NoError(t, err)

	reloaded, err := repository.NewCheckInRepository().GetByID(ctx, created.CheckIn.ID)
	require.NoError(t, err)
	require.Equal(t, entity.CheckInRejected, reloaded.Status)

	point, err := repository.NewPointRepository().
		GetByUserAndSeason(ctx, testutil.Member.ID, testutil.ActiveSeason.ID)
	require.NoError(t, err)
	require.Equal(t, 10, point.TotalPoints)
	require.Equal(t, 1, point.CheckInsCount)
}

func Test_checkInDomain_Update_zeroesPointsAndClearsNotes(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Member.ID)
	d := newCheckInDomain(testutil.NewMockStorage())

	created, err := d.Create(withPhotoRequest(t, ctx, "nota inicial"), &model.CreateCheckInRequest{})
	require.NoError(t, err)

	// Zero points and empty notes are stored, not skipped.
	_, err = d.Update(ctx, &model.UpdateCheckInRequest{
		ID:     created.CheckIn.ID,
		Points: 0,
		Notes:  "",
	})
	require.NoError(t, err)

	reloaded, err := repository.NewCheckInRepository().GetByID(ctx, created.CheckIn.ID)
	require.NoError(t, err)
	require.Zero(t, reloaded.Points)
	require.Empty(t, reloaded.Notes)

	// The omitted status keeps its stored value.
	require.Equal(t, entity.CheckInApproved, reloaded.Status)
}

func Test_checkInDomain_GetMy(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Member.ID)
	d := newCheckInDomain(testutil.NewMockStorage())

	_, err := d.Create(withPhotoRequest(t, ctx, ""), &model.CreateCheckInRequest{})
	require.NoError(t, err)

	otherCtx := xcontext.WithRequestUserID(ctx, testutil.Trainee.ID)
	_, err = d.Create(withPhotoRequest(t, otherCtx, ""), &model.CreateCheckInRequest{})
	require.NoError(t, err)

	resp, err := d.GetMy(ctx, &model.GetMyCheckInsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.CheckIns, 1)
	require.Equal(t, testutil.Member.ID, resp.CheckIns[0].User.ID)
}
