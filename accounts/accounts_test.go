package accounts_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codequest-dev/codequest-server/accounts"
	fakeaccountrepo "github.com/codequest-dev/codequest-server/accounts/repofake"
)

func TestFakeAccountRepo(t *testing.T) {
	ctx := context.Background()
	repo := fakeaccountrepo.NewFakeAccountRepo()

	account := &accounts.Account{
		ID:            "acc-1",
		Email:         "ada@example.com",
		PasswordHash:  "salt:hash",
		Notifications: []accounts.Notification{},
	}
	require.NoError(t, repo.Create(ctx, account))

	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, "acc-1", byEmail.ID)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, accounts.NotFoundErr)

	notifications := []accounts.Notification{accounts.NewNotification("Welcome", "hi")}
	require.NoError(t, repo.UpdateNotifications(ctx, "acc-1", notifications))

	byID, err := repo.GetByID(ctx, "acc-1")
	require.NoError(t, err)
	require.Len(t, byID.Notifications, 1)

	require.NoError(t, repo.Delete(ctx, "acc-1"))
	_, err = repo.GetByID(ctx, "acc-1")
	require.ErrorIs(t, err, accounts.NotFoundErr)
}

func TestFakeAccountRepoCopiesAreIndependent(t *testing.T) {
	ctx := context.Background()
	repo := fakeaccountrepo.NewFakeAccountRepo()

	require.NoError(t, repo.Create(ctx, &accounts.Account{
		ID:            "acc-1",
		Email:         "ada@example.com",
		Notifications: []accounts.Notification{accounts.NewNotification("Welcome", "hi")},
	}))

	// Marking a read copy's notification must not leak into the store.
	fetched, err := repo.GetByID(ctx, "acc-1")
	require.NoError(t, err)
	fetched.Notifications[0].Read = true

	stored, err := repo.GetByID(ctx, "acc-1")
	require.NoError(t, err)
	require.False(t, stored.Notifications[0].Read)

	// The slice passed to UpdateNotifications stays caller-owned.
	updated := []accounts.Notification{accounts.NewNotification("Second", "hello")}
	require.NoError(t, repo.UpdateNotifications(ctx, "acc-1", updated))
	updated[0].Read = true

	stored, err = repo.GetByID(ctx, "acc-1")
	require.NoError(t, err)
	require.False(t, stored.Notifications[0].Read)
}
