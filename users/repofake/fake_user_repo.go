package fakeuserrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-api-skeleton/internal/errors"
	"github.com/jrsteele09/go-api-skeleton/users"
	"github.com/pkg/errors"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

// FakeUserRepo keeps accounts in memory. Records are copied on the way in
// and out so callers never share state with the store.
type FakeUserRepo struct {
	users    map[string]*users.User
	emailIds map[string]string // email to user id
	lock     sync.RWMutex
	nowFunc  func() time.Time
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:    make(map[string]*users.User),
		emailIds: make(map[string]string),
		nowFunc:  func() time.Time { return time.Now().UTC() },
	}
}

func (ur *FakeUserRepo) GetByEmail(_ context.Context, email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.emailIds[email]
	if !ok {
		return nil, errors.Wrapf(apperrors.ErrNotFound, "user %q", email)
	}
	return ur.users[id].Clone(), nil
}

func (ur *FakeUserRepo) GetByID(_ context.Context, id string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	u, ok := ur.users[id]
	if !ok {
		return nil, errors.Wrapf(apperrors.ErrNotFound, "user id %q", id)
	}
	return u.Clone(), nil
}

func (ur *FakeUserRepo) List(_ context.Context) ([]*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	userList := make([]*users.User, 0, len(ur.users))
	for _, v := range ur.users {
		userList = append(userList, v.Clone())
	}
	sort.Slice(userList, func(i, j int) bool {
		return userList[i].Email < userList[j].Email
	})
	return userList, nil
}

func (ur *FakeUserRepo) Create(_ context.Context, user *users.User) (*users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, taken := ur.emailIds[user.Email]; taken {
		return nil, errors.Wrapf(apperrors.ErrDuplicateEmail, "email %q", user.Email)
	}

	stored := user.Clone()
	stored.ID = uuid.New().String()
	stored.CreatedAt = ur.nowFunc()
	stored.UpdatedAt = stored.CreatedAt
	ur.users[stored.ID] = stored
	ur.emailIds[stored.Email] = stored.ID
	return stored.Clone(), nil
}

func (ur *FakeUserRepo) Update(_ context.Context, email string, patch users.UserPatch) (*users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	id, ok := ur.emailIds[email]
	if !ok {
		return nil, errors.Wrapf(apperrors.ErrNotFound, "user %q", email)
	}
	stored := ur.users[id]
	patch.Apply(stored)
	stored.UpdatedAt = ur.nowFunc()
	return stored.Clone(), nil
}

func (ur *FakeUserRepo) UpdatePassword(_ context.Context, user *users.User, passwordHash string) (*users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	stored, ok := ur.users[user.ID]
	if !ok {
		return nil, errors.Wrapf(apperrors.ErrNotFound, "user id %q", user.ID)
	}
	stored.PasswordHash = passwordHash
	stored.UpdatedAt = ur.nowFunc()
	return stored.Clone(), nil
}

func (ur *FakeUserRepo) Delete(_ context.Context, user *users.User) (bool, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	stored, ok := ur.users[user.ID]
	if !ok {
		return false, nil
	}
	delete(ur.emailIds, stored.Email)
	delete(ur.users, stored.ID)
	return true, nil
}
