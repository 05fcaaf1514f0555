package schedule

import (
	"sync"
)

// teacherLocks serializes the check-then-commit window per teacher. The
// load check is a read-then-decide-then-write sequence with no
// transactional wrapping, so without this two concurrent mutations could
// both read a stale weekly total and overshoot the cap together.
type teacherLocks struct {
	mu   sync.Mutex
	byID map[int32]*sync.Mutex
}

func (l *teacherLocks) get(teacherID int32) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.byID[teacherID]
	if !ok {
		lock = &sync.Mutex{}
		l.byID[teacherID] = lock
	}
	return lock
}

// lockAll acquires the locks for the given teacher IDs and returns the
// matching release function. IDs must be sorted and de-duplicated; taking
// locks in a single global order keeps concurrent batches deadlock-free.
func (l *teacherLocks) lockAll(teacherIDs []int32) (unlock func()) {
	locks := make([]*sync.Mutex, 0, len(teacherIDs))
	for _, teacherID := range teacherIDs {
		lock := l.get(teacherID)
		lock.Lock()
		locks = append(locks, lock)
	}
	return func() {
		for i := len(locks) - 1; i >= 0; i-- {
			locks[i].Unlock()
		}
	}
}
