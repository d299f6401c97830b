package accounts

import (
	"context"
	"errors"
)

var NotFoundErr = errors.New("account not found")

type Repo interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	UpdateNotifications(ctx context.Context, id string, notifications []Notification) error
	Delete(ctx context.Context, id string) error
}
