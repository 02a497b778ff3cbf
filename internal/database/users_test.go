package database

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"markeep/internal/models"
)

func createTestUser(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := testStore.CreateUser(context.Background(), CreateUserParams{
		Email:        email,
		Nickname:     "nick-" + email,
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return user
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	user := createTestUser(t, "create@markeep.test")

	require.NotZero(t, user.ID)
	require.True(t, user.HasPassword())
	require.False(t, user.GoogleLinked)

	_, err := testStore.CreateUser(ctx, CreateUserParams{Email: "create@markeep.test", Nickname: "again", PasswordHash: "x"})
	require.ErrorIs(t, err, ErrEmailTaken)

	exists, err := testStore.EmailExists(ctx, "create@markeep.test")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = testStore.EmailExists(ctx, "nobody@markeep.test")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestGetUser_Missing(t *testing.T) {
	user, err := testStore.GetUserByEmail(context.Background(), "missing@markeep.test")
	require.NoError(t, err)
	require.Nil(t, user)

	user, err = testStore.GetUserByID(context.Background(), -1)
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestUpsertOAuthUser(t *testing.T) {
	ctx := context.Background()
	arg := UpsertOAuthUserParams{Provider: models.ProviderKakao, Email: "oauth@markeep.test", Nickname: "kakao user"}

	first, inserted, err := testStore.UpsertOAuthUser(ctx, arg)
	require.NoError(t, err)
	require.True(t, inserted)
	require.True(t, first.KakaoLinked)
	require.False(t, first.HasPassword())

	second, inserted, err := testStore.UpsertOAuthUser(ctx, arg)
	require.NoError(t, err)
	require.False(t, inserted)
	require.Equal(t, first.ID, second.ID)

	arg.Provider = models.ProviderNaver
	third, inserted, err := testStore.UpsertOAuthUser(ctx, arg)
	require.NoError(t, err)
	require.False(t, inserted)
	require.Equal(t, first.ID, third.ID)
	require.True(t, third.KakaoLinked)
	require.True(t, third.NaverLinked)
	require.Equal(t, "kakao user", third.Nickname)
}

func TestUpsertOAuthUser_ExistingLocalAccount(t *testing.T) {
	local := createTestUser(t, "local-then-google@markeep.test")

	user, inserted, err := testStore.UpsertOAuthUser(context.Background(), UpsertOAuthUserParams{
		Provider: models.ProviderGoogle,
		Email:    local.Email,
		Nickname: "google name",
	})
	require.NoError(t, err)
	require.False(t, inserted)
	require.Equal(t, local.ID, user.ID)
	require.True(t, user.GoogleLinked)
	require.True(t, user.HasPassword())
}

func TestUpsertOAuthUser_ConcurrentFirstLogin(t *testing.T) {
	ctx := context.Background()
	const workers = 8

	var wg sync.WaitGroup
	ids := make([]int64, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user, _, err := testStore.UpsertOAuthUser(ctx, UpsertOAuthUserParams{
				Provider: models.ProviderGoogle,
				Email:    "race@markeep.test",
				Nickname: fmt.Sprintf("racer %d", i),
			})
			errs[i] = err
			if err == nil {
				ids[i] = user.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, ids[0], ids[i])
	}

	var count int
	err := testStore.GetPool().QueryRow(ctx, `SELECT count(*) FROM users WHERE email = $1`, "race@markeep.test").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestUpsertOAuthUser_UnknownProvider(t *testing.T) {
	_, _, err := testStore.UpsertOAuthUser(context.Background(), UpsertOAuthUserParams{
		Provider: "github; DROP TABLE users",
		Email:    "x@markeep.test",
		Nickname: "x",
	})
	require.ErrorIs(t, err, ErrUnknownProvider)
}

func TestUpdateUserPassword(t *testing.T) {
	ctx := context.Background()
	user := createTestUser(t, "password@markeep.test")

	ok, err := testStore.UpdateUserPassword(ctx, user.Email, "new-hash")
	require.NoError(t, err)
	require.True(t, ok)

	updated, err := testStore.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "new-hash", *updated.PasswordHash)

	ok, err = testStore.UpdateUserPassword(ctx, "ghost@markeep.test", "x")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestUpdateUserProfileImage(t *testing.T) {
	ctx := context.Background()
	user := createTestUser(t, "image@markeep.test")

	previous, err := testStore.UpdateUserProfileImage(ctx, user.ID, "first.png")
	require.NoError(t, err)
	require.Nil(t, previous)

	previous, err = testStore.UpdateUserProfileImage(ctx, user.ID, "second.png")
	require.NoError(t, err)
	require.NotNil(t, previous)
	require.Equal(t, "first.png", *previous)

	_, err = testStore.UpdateUserProfileImage(ctx, -1, "x.png")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserStats(t *testing.T) {
	ctx := context.Background()
	owner := createTestUser(t, "stats-owner@markeep.test")
	fan := createTestUser(t, "stats-fan@markeep.test")

	folder := createTestFolder(t, owner.ID, "stats folder", 0)
	_, err := testStore.CreateSite(ctx, CreateSiteParams{FolderID: folder.ID, URL: "https://go.dev", Title: "Go"})
	require.NoError(t, err)
	_, err = testStore.PinFolder(ctx, fan.ID, folder.ID)
	require.NoError(t, err)

	stats, err := testStore.GetUserStats(ctx, owner.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.FolderCount)
	require.Equal(t, int64(1), stats.SiteCount)
	require.Equal(t, int64(1), stats.PinsReceived)
}
