package market

import "sync"

// itemLocker выдаёт мьютекс на каждый товар. Записи удаляются, когда
// мьютекс больше никто не держит и не ждёт.
type itemLocker struct {
	mu    sync.Mutex
	locks map[string]*itemLock
}

type itemLock struct {
	sync.Mutex
	refs int
}

func newItemLocker() *itemLocker {
	return &itemLocker{locks: make(map[string]*itemLock)}
}

// Lock блокирует товар и возвращает функцию разблокировки.
func (l *itemLocker) Lock(itemID string) (unlock func()) {
	l.mu.Lock()
	lock, ok := l.locks[itemID]
	if !ok {
		lock = &itemLock{}
		l.locks[itemID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.Lock()

	return func() {
		lock.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, itemID)
		}
		l.mu.Unlock()
	}
}

func (l *itemLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.locks)
}
