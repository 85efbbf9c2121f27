package credentials

import "sync"

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps the credentials in memory only. Used in tests and for
// callers that explicitly opt out of persistence.
type MemoryStore struct {
	current *Credentials
	lock    sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (ms *MemoryStore) Load() (*Credentials, error) {
	ms.lock.RLock()
	defer ms.lock.RUnlock()

	if ms.current == nil {
		return &Credentials{}, nil
	}
	snapshot := *ms.current
	return &snapshot, nil
}

func (ms *MemoryStore) Save(credentials *Credentials) error {
	ms.lock.Lock()
	defer ms.lock.Unlock()

	snapshot := *credentials
	ms.current = &snapshot
	return nil
}

func (ms *MemoryStore) Clear() error {
	ms.lock.Lock()
	defer ms.lock.Unlock()

	ms.current = nil
	return nil
}
