package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/comic_catalog/internal/models"
	"github.com/Skotchmaster/comic_catalog/internal/transport"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	return &UserService{Repo: newTestStore(t), Hasher: testHasher, Events: &recordingPublisher{}}
}

func validCreateUser() transport.CreateUserRequest {
	return transport.CreateUserRequest{
		Name:            "Bob",
		Email:           "bob@example.com",
		Username:        "bobbob",
		Password:        "password1",
		ConfirmPassword: "password1",
		Role:            "admin",
	}
}

func TestUserService_CreateAndManage(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, validCreateUser())
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "password1", user.PasswordHash)
	assert.True(t, testHasher.Check(user.PasswordHash, "password1"))

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	got, err := svc.Get(ctx, "bobbob")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	updated, err := svc.UpdateRole(ctx, "bobbob", transport.UpdateUserRequest{Role: "super"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuper, updated.Role)

	_, err = svc.UpdateRole(ctx, "bobbob", transport.UpdateUserRequest{Role: "root"})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.Delete(ctx, "bobbob"))
	assert.ErrorIs(t, svc.Delete(ctx, "bobbob"), ErrNotFound)

	_, err = svc.Get(ctx, "bobbob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_Create_Conflicts(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validCreateUser())
	require.NoError(t, err)

	sameName := validCreateUser()
	sameName.Email = "other@example.com"
	_, err = svc.Create(ctx, sameName)
	assert.ErrorIs(t, err, ErrConflict)

	sameEmail := validCreateUser()
	sameEmail.Username = "bobby-2"
	_, err = svc.Create(ctx, sameEmail)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserService_Create_Validation(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)

	mismatch := validCreateUser()
	mismatch.ConfirmPassword = "password2"

	short := validCreateUser()
	short.Password = "short"

	tooLong := validCreateUser()
	tooLong.Password = strings.Repeat("é", 40)
	tooLong.ConfirmPassword = tooLong.Password

	for _, req := range []transport.CreateUserRequest{mismatch, short, tooLong} {
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestUserService_EnsureSuper(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureSuper(ctx, "", ""))
	require.NoError(t, svc.EnsureSuper(ctx, "root", "rootpass"))
	require.NoError(t, svc.EnsureSuper(ctx, "root", "changed"))

	root, err := svc.Get(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuper, root.Role)
	assert.True(t, testHasher.Check(root.PasswordHash, "rootpass"))

	err = svc.EnsureSuper(ctx, "boss", strings.Repeat("é", 40))
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Get(ctx, "boss")
	assert.ErrorIs(t, err, ErrNotFound)
}
