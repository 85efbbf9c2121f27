package users

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var _ UserRepo = (*InMemoryRepo)(nil)

// InMemoryRepo is a mutex guarded map-backed user repository, suitable for the
// reference server and for tests.
type InMemoryRepo struct {
	users    map[string]*User
	emailIds map[string]string // email to user id
	lock     sync.RWMutex
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		users:    make(map[string]*User),
		emailIds: make(map[string]string),
	}
}

func (ur *InMemoryRepo) Upsert(user *User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	ur.users[user.ID] = user
	ur.emailIds[user.Email] = user.ID
	return nil
}

func (ur *InMemoryRepo) Delete(email string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	userID, ok := ur.emailIds[email]
	if !ok {
		return errors.New("not found")
	}
	delete(ur.emailIds, email)

	if _, ok := ur.users[userID]; !ok {
		return nil
	}

	delete(ur.users, userID)
	return nil
}

func (ur *InMemoryRepo) GetByEmail(email string) (*User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	if _, ok := ur.emailIds[email]; !ok {
		return nil, errors.New("not found")
	}
	return ur.users[ur.emailIds[email]], nil
}

func (ur *InMemoryRepo) GetByID(id string) (*User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	if _, ok := ur.users[id]; !ok {
		return nil, errors.New("not found")
	}
	return ur.users[id], nil
}

func (ur *InMemoryRepo) List(offset, limit int) ([]*User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	all := make([]*User, 0, len(ur.users))
	for _, u := range ur.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })

	if offset >= len(all) {
		return []*User{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
