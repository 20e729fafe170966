package service

import (
	"context"
	"strings"
	"testing"

	"microblog/internal/models"
	"microblog/internal/repository"
	"microblog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	return NewUserService(repository.NewUserRepository(db), repository.NewFollowRepository(db)), db
}

func TestUserService_CreateUser(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	first, err := svc.CreateUser(ctx, CreateUserInput{Name: "  alice ", APIKey: "key-1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", first.Name)

	second, err := svc.CreateUser(ctx, CreateUserInput{Name: "bob", APIKey: "key-2"})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	_, err = svc.CreateUser(ctx, CreateUserInput{Name: "carol", APIKey: "key-1"})
	assertAppError(t, err, models.CodeConflict)
}

func TestUserService_CreateUser_Validation(t *testing.T) {
	svc, _ := newUserService(t)

	tests := []struct {
		name  string
		input CreateUserInput
	}{
		{name: "blank name", input: CreateUserInput{Name: "   ", APIKey: "k"}},
		{name: "missing api key", input: CreateUserInput{Name: "n"}},
		{name: "name too long", input: CreateUserInput{Name: strings.Repeat("n", 101), APIKey: "k"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateUser(context.Background(), tc.input)
			assertAppError(t, err, models.CodeValidation)
		})
	}
}

func TestUserService_Authenticate(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, db)

	got, err := svc.Authenticate(ctx, user.APIKey)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	for _, key := range []string{"", "unknown"} {
		_, err := svc.Authenticate(ctx, key)
		assertAppError(t, err, models.CodeUnauthorized)
		assert.EqualError(t, err, MsgUnknownAPIKey)
	}
}

func TestUserService_Follow(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db)
	bob := testutil.CreateUser(t, db)

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

	t.Run("twice", func(t *testing.T) {
		assertAppError(t, svc.Follow(ctx, alice.ID, bob.ID), models.CodeConflict)
	})
	t.Run("self", func(t *testing.T) {
		assertAppError(t, svc.Follow(ctx, alice.ID, alice.ID), models.CodeRuleViolated)
	})
	t.Run("missing followee", func(t *testing.T) {
		assertAppError(t, svc.Follow(ctx, alice.ID, 9999), models.CodeNotFound)
	})
}

func TestUserService_Unfollow(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db)
	bob := testutil.CreateUser(t, db)
	testutil.Follow(t, db, alice, bob)

	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))
	assertAppError(t, svc.Unfollow(ctx, alice.ID, bob.ID), models.CodeNotFound)
}

func TestUserService_GetProfile(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db)
	bob := testutil.CreateUser(t, db)
	carol := testutil.CreateUser(t, db)
	testutil.Follow(t, db, bob, alice)
	testutil.Follow(t, db, carol, alice)
	testutil.Follow(t, db, alice, carol)

	profile, err := svc.GetProfile(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.Name, profile.Name)
	assert.Equal(t, []models.UserSummary{bob.Summary(), carol.Summary()}, profile.Followers)
	assert.Equal(t, []models.UserSummary{carol.Summary()}, profile.Following)

	_, err = svc.GetProfile(ctx, 9999)
	assertAppError(t, err, models.CodeNotFound)
}
