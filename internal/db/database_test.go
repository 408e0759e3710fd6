package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/comic_catalog/internal/db"
	"github.com/Skotchmaster/comic_catalog/internal/db/dbtest"
	"github.com/Skotchmaster/comic_catalog/internal/models"
)

func TestOpen_EmptyDSN(t *testing.T) {
	t.Parallel()

	_, err := db.Open(context.Background(), "")
	require.Error(t, err)
}

func TestOpen_MigratesModels(t *testing.T) {
	t.Parallel()

	gdb := dbtest.Open(t)
	require.NoError(t, db.Ping(context.Background(), gdb))

	for _, m := range models.All() {
		assert.True(t, gdb.Migrator().HasTable(m))
	}

	u := models.User{Username: "migrated", PasswordHash: "x", Role: models.RoleAdmin}
	require.NoError(t, gdb.Create(&u).Error)
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.IsOnline)
	assert.Nil(t, u.RefreshToken)
}
