package godeco

import "sync"

type (
	LockManager struct {
		mu    sync.Mutex
		locks map[lockKey]*sync.Mutex
	}

	lockKey struct {
		store *Store
		reg   *Registration
	}
)

func NewLockManager() *LockManager {
	return &LockManager{
		locks: make(map[lockKey]*sync.Mutex),
	}
}

func (lm *LockManager) GetLockFor(store *Store, reg *Registration) *sync.Mutex {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	key := lockKey{store: store, reg: reg}
	if lock, exists := lm.locks[key]; exists {
		return lock
	}

	lock := &sync.Mutex{}
	lm.locks[key] = lock
	return lock
}

func (lm *LockManager) ReleaseLock(store *Store, reg *Registration) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	delete(lm.locks, lockKey{store: store, reg: reg})
}
