package users

import (
	"context"
	"errors"
)

var NotFoundErr = errors.New("user not found")

type Repo interface {
	Upsert(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, id string, update Update) (*User, error)
	Delete(ctx context.Context, id string) error
}
