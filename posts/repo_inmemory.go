package posts

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is a mutex guarded map-backed post repository, suitable for the
// reference server and for tests.
type InMemoryRepo struct {
	posts map[string]*Post
	lock  sync.RWMutex
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		posts: make(map[string]*Post),
	}
}

func (pr *InMemoryRepo) Upsert(post *Post) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	pr.posts[post.ID] = post
	return nil
}

func (pr *InMemoryRepo) Delete(id string) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if _, ok := pr.posts[id]; !ok {
		return errors.New("not found")
	}
	delete(pr.posts, id)
	return nil
}

func (pr *InMemoryRepo) GetByID(id string) (*Post, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	post, ok := pr.posts[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return post, nil
}

func (pr *InMemoryRepo) List() ([]*Post, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	all := make([]*Post, 0, len(pr.posts))
	for _, p := range pr.posts {
		all = append(all, p)
	}
	sortByCreation(all)
	return all, nil
}

func (pr *InMemoryRepo) ListByAuthor(authorID string) ([]*Post, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	matched := make([]*Post, 0)
	for _, p := range pr.posts {
		if p.AuthorID == authorID {
			matched = append(matched, p)
		}
	}
	sortByCreation(matched)
	return matched, nil
}

func sortByCreation(posts []*Post) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID < posts[j].ID
		}
		return posts[i].CreatedAt.Before(posts[j].CreatedAt)
	})
}
