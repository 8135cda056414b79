package domain

import (
	"testing"

	"github.com/nasalinha/backend/internal/model"
	"github.com/nasalinha/backend/internal/repository"
	"github.com/nasalinha/backend/pkg/errorx"
	"github.com/nasalinha/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_userDomain_GetMe(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Member.ID)
	d := NewUserDomain(repository.NewUserRepository())

	resp, err := d.GetMe(ctx, &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.Member.ID, resp.User.ID)
	require.Equal(t, testutil.Member.Email, resp.User.Email)
}

func Test_userDomain_Update(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Admin.ID)
	d := NewUserDomain(repository.NewUserRepository())

	_, err := d.Update(ctx, &model.UpdateUserRequest{
		ID:   testutil.Trainee.ID,
		Name: "Trainee Promovido",
		Role: "MEMBER",
	})
	require.NoError(t, err)

	resp, err := d.Get(ctx, &model.GetUserRequest{ID: testutil.Trainee.ID})
	require.NoError(t, err)
	require.Equal(t, "Trainee Promovido", resp.User.Name)
	require.Equal(t, "MEMBER", resp.User.Role)

	_, err = d.Update(ctx, &model.UpdateUserRequest{
		ID:   testutil.Trainee.ID,
		Role: "SUPERUSER",
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_userDomain_ToggleActive(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Admin.ID)
	d := NewUserDomain(repository.NewUserRepository())

	resp, err := d.ToggleActive(ctx, &model.ToggleUserActiveRequest{ID: testutil.Member.ID})
	require.NoError(t, err)
	require.False(t, resp.IsActive)

	resp, err = d.ToggleActive(ctx, &model.ToggleUserActiveRequest{ID: testutil.Member.ID})
	require.NoError(t, err)
	require.True(t, resp.IsActive)
}

func Test_userDomain_ToggleActive_self(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Admin.ID)
	d := NewUserDomain(repository.NewUserRepository())

	_, err := d.ToggleActive(ctx, &model.ToggleUserActiveRequest{ID: testutil.Admin.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}
