package users_test

import (
	"context"
	"testing"

	"github.com/codequest-dev/codequest-server/internal/utils"
	"github.com/codequest-dev/codequest-server/users"
	fakeuserrepo "github.com/codequest-dev/codequest-server/users/repofake"
	"github.com/stretchr/testify/require"
)

func TestNewUserDefaults(t *testing.T) {
	user := users.NewUser("user-1", "Ada")

	require.Equal(t, "user-1", user.ID)
	require.Equal(t, "Ada", user.Name)
	require.Equal(t, 1, user.Level)
	require.Equal(t, 0, user.XP)
	require.Equal(t, 0, user.Streak)
	require.Empty(t, user.Achievements)
	require.Empty(t, user.Codes)
	require.NotEmpty(t, user.CreatedAt)
}

func TestApplyMergesOnlySetFields(t *testing.T) {
	user := users.NewUser("user-1", "Ada")
	created := user.CreatedAt

	user.Apply(users.Update{
		XP:    utils.Ptr(150),
		Level: utils.Ptr(2),
	})

	require.Equal(t, "Ada", user.Name, "unset fields stay untouched")
	require.Equal(t, 150, user.XP)
	require.Equal(t, 2, user.Level)
	require.Equal(t, created, user.CreatedAt)
}

func TestToggleLike(t *testing.T) {
	code := users.Code{ID: 1, LikedBy: []string{}}

	require.True(t, code.ToggleLike("user-2"))
	require.True(t, code.Liked("user-2"))

	require.False(t, code.ToggleLike("user-2"))
	require.False(t, code.Liked("user-2"))
	require.Empty(t, code.LikedBy)
}

func TestFakeUserRepo(t *testing.T) {
	ctx := context.Background()
	repo := fakeuserrepo.NewFakeUserRepo()

	require.NoError(t, repo.Upsert(ctx, users.NewUser("user-1", "Ada")))
	require.NoError(t, repo.Upsert(ctx, users.NewUser("user-2", "Grace")))

	user, err := repo.GetByID(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "Ada", user.Name)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	updated, err := repo.Update(ctx, "user-2", users.Update{Streak: utils.Ptr(7)})
	require.NoError(t, err)
	require.Equal(t, 7, updated.Streak)

	require.NoError(t, repo.Delete(ctx, "user-1"))
	_, err = repo.GetByID(ctx, "user-1")
	require.ErrorIs(t, err, users.NotFoundErr)

	_, err = repo.Update(ctx, "missing", users.Update{})
	require.ErrorIs(t, err, users.NotFoundErr)
}

func TestFakeUserRepoCopiesAreIndependent(t *testing.T) {
	ctx := context.Background()
	repo := fakeuserrepo.NewFakeUserRepo()

	user := users.NewUser("user-1", "Ada")
	user.Codes = []users.Code{{ID: 1, Title: "Fizzbuzz", LikedBy: []string{}}}
	require.NoError(t, repo.Upsert(ctx, user))

	// Mutating a read copy's embedded code must not leak into the store.
	fetched, err := repo.GetByID(ctx, "user-1")
	require.NoError(t, err)
	fetched.Codes[0].Views = 99
	fetched.Codes[0].ToggleLike("user-2")

	stored, err := repo.GetByID(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 0, stored.Codes[0].Views)
	require.Empty(t, stored.Codes[0].LikedBy)

	// Same for copies handed out by List.
	list, err := repo.List(ctx)
	require.NoError(t, err)
	list[0].Codes[0].Title = "scribbled"

	stored, err = repo.GetByID(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "Fizzbuzz", stored.Codes[0].Title)
}
