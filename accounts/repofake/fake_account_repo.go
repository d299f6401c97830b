package fakeaccountrepo

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/codequest-dev/codequest-server/accounts"
)

var _ accounts.Repo = (*FakeAccountRepo)(nil)

type FakeAccountRepo struct {
	accounts map[string]*accounts.Account
	emailIds map[string]string // email to account id
	lock     sync.RWMutex
}

func NewFakeAccountRepo() accounts.Repo {
	return &FakeAccountRepo{
		accounts: make(map[string]*accounts.Account),
		emailIds: make(map[string]string),
	}
}

func (ar *FakeAccountRepo) Create(ctx context.Context, account *accounts.Account) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	ar.accounts[account.ID] = cloneAccount(account)
	ar.emailIds[account.Email] = account.ID
	return nil
}

func (ar *FakeAccountRepo) GetByID(ctx context.Context, id string) (*accounts.Account, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	account, ok := ar.accounts[id]
	if !ok {
		return nil, accounts.NotFoundErr
	}
	return cloneAccount(account), nil
}

func (ar *FakeAccountRepo) GetByEmail(ctx context.Context, email string) (*accounts.Account, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	id, ok := ar.emailIds[email]
	if !ok {
		return nil, accounts.NotFoundErr
	}
	return cloneAccount(ar.accounts[id]), nil
}

func (ar *FakeAccountRepo) UpdateNotifications(ctx context.Context, id string, notifications []accounts.Notification) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	account, ok := ar.accounts[id]
	if !ok {
		return accounts.NotFoundErr
	}
	account.Notifications = cloneNotifications(notifications)
	return nil
}

func (ar *FakeAccountRepo) Delete(ctx context.Context, id string) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	account, ok := ar.accounts[id]
	if !ok {
		return accounts.NotFoundErr
	}
	delete(ar.emailIds, account.Email)
	delete(ar.accounts, id)
	return nil
}

// cloneAccount copies the record and its notifications slice. Handing out the
// stored slice header would let handlers mutate notifications in place outside
// the lock.
func cloneAccount(account *accounts.Account) *accounts.Account {
	copied := *account
	copied.Notifications = cloneNotifications(account.Notifications)
	return &copied
}

func cloneNotifications(notifications []accounts.Notification) []accounts.Notification {
	if notifications == nil {
		return nil
	}
	copied := make([]accounts.Notification, len(notifications))
	copy(copied, notifications)
	return copied
}
