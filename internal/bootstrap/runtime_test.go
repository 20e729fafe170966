package bootstrap

import (
	"testing"

	"microblog/internal/config"
	"microblog/internal/models"
	"microblog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDemoUser(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	cfg := &config.Config{Env: "development", DevDemoAPIKey: "test", DevDemoUserName: "demo"}

	require.NoError(t, EnsureDemoUser(cfg, db))
	require.NoError(t, EnsureDemoUser(cfg, db))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "demo", users[0].Name)
	assert.Equal(t, "test", users[0].APIKey)

	cfg.DevDemoUserName = "renamed"
	require.NoError(t, EnsureDemoUser(cfg, db))
	require.NoError(t, db.First(&users[0], users[0].ID).Error)
	assert.Equal(t, "renamed", users[0].Name)
}

func TestEnsureDemoUser_SkippedOutsideDevelopment(t *testing.T) {
	db := testutil.NewSQLiteDB(t)

	for _, cfg := range []*config.Config{
		{Env: "production", DevDemoAPIKey: "test"},
		{Env: "development"},
		nil,
	} {
		require.NoError(t, EnsureDemoUser(cfg, db))
	}

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
