package keylock

import "sync"

// KeyLock serializes critical sections per key. The allocation engine
// holds the lock for a room id across its conflict-check-then-write so
// that two concurrent requests for overlapping slots cannot both pass
// the check.
type KeyLock struct {
	locks sync.Map // key -> *sync.Mutex
}

func New() *KeyLock {
	return &KeyLock{}
}

func (k *KeyLock) Lock(key string) {
	m, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	m.(*sync.Mutex).Lock()
}

func (k *KeyLock) Unlock(key string) {
	m, ok := k.locks.Load(key)
	if !ok {
		panic("keylock: unlock of unheld key " + key)
	}
	m.(*sync.Mutex).Unlock()
}
