package fakeuserrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/codequest-dev/codequest-server/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users map[string]*users.User
	lock  sync.RWMutex
}

func NewFakeUserRepo() users.Repo {
	return &FakeUserRepo{
		users: make(map[string]*users.User),
	}
}

func (ur *FakeUserRepo) Upsert(ctx context.Context, user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	ur.users[user.ID] = cloneUser(user)
	return nil
}

func (ur *FakeUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, users.NotFoundErr
	}
	return cloneUser(user), nil
}

func (ur *FakeUserRepo) List(ctx context.Context) ([]*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	userList := make([]*users.User, 0, len(ur.users))
	for _, user := range ur.users {
		userList = append(userList, cloneUser(user))
	}

	sort.Slice(userList, func(i, j int) bool {
		return userList[i].ID < userList[j].ID
	})
	return userList, nil
}

func (ur *FakeUserRepo) Update(ctx context.Context, id string, update users.Update) (*users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, users.NotFoundErr
	}
	user.Apply(update)
	// Re-clone after Apply so the stored record owns its slices even when the
	// update carried caller-owned ones.
	cloned := cloneUser(user)
	ur.users[id] = cloned
	return cloneUser(cloned), nil
}

func (ur *FakeUserRepo) Delete(ctx context.Context, id string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, ok := ur.users[id]; !ok {
		return users.NotFoundErr
	}
	delete(ur.users, id)
	return nil
}

// cloneUser deep-copies the record, including the embedded codes and their
// likedBy/files slices. Handing out stored slice headers would let handlers
// mutate codes in place outside the lock.
func cloneUser(user *users.User) *users.User {
	copied := *user
	if user.Achievements != nil {
		copied.Achievements = make([]string, len(user.Achievements))
		copy(copied.Achievements, user.Achievements)
	}
	if user.Codes != nil {
		copied.Codes = make([]users.Code, len(user.Codes))
		for i, code := range user.Codes {
			copied.Codes[i] = cloneCode(code)
		}
	}
	return &copied
}

func cloneCode(code users.Code) users.Code {
	if code.LikedBy != nil {
		likedBy := make([]string, len(code.LikedBy))
		copy(likedBy, code.LikedBy)
		code.LikedBy = likedBy
	}
	if code.Files != nil {
		files := make([]users.CodeFile, len(code.Files))
		copy(files, code.Files)
		code.Files = files
	}
	return code
}
