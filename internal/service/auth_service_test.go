package service

import (
	"context"
	"coursemaster_backend/internal/model"
	"coursemaster_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAssignsRoleFromAllowList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.auth.SetAdminEmails([]string{"Boss@Example.com"})

	admin, err := f.auth.Register(ctx, "Boss", " boss@example.com ", "password123")
	require.NoError(t, err)
	assert.Equal(t, model.Admin, admin.User.Role)
	assert.Equal(t, "boss@example.com", admin.User.Email)
	assert.NotEmpty(t, admin.Token)

	student, err := f.auth.Register(ctx, "Kid", "kid@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, model.Student, student.User.Role)

	_, err = f.auth.Register(ctx, "Kid again", "KID@example.com", "password123")
	assert.ErrorIs(t, err, util.ErrConflict)
}

func TestAdminAllowListReload(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.auth.IsAdminEmail("x@example.com"))

	f.auth.SetAdminEmails([]string{"x@example.com, y@example.com"})
	assert.True(t, f.auth.IsAdminEmail("X@example.com"))
	assert.True(t, f.auth.IsAdminEmail("y@example.com"))

	f.auth.SetAdminEmails(nil)
	assert.False(t, f.auth.IsAdminEmail("x@example.com"))
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "Kid", "kid@example.com", "password123")
	require.NoError(t, err)

	res, err := f.auth.Login(ctx, "kid@example.com", "password123")
	require.NoError(t, err)
	claims, err := util.ParseJWT(res.Token, f.cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.NotEmpty(t, claims.ID)

	_, err = f.auth.Login(ctx, "kid@example.com", "wrong-password")
	assert.ErrorIs(t, err, util.ErrUnauthenticated)

	_, err = f.auth.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, util.ErrUnauthenticated)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.auth.Register(ctx, "Kid", "kid@example.com", "password123")
	require.NoError(t, err)
	claims, err := util.ParseJWT(res.Token, f.cfg.JWT.Secret)
	require.NoError(t, err)

	revoked, err := f.auth.IsRevoked(ctx, claims)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, f.auth.Logout(ctx, claims))

	revoked, err = f.auth.IsRevoked(ctx, claims)
	require.NoError(t, err)
	assert.True(t, revoked)
}
