package cascade

import "sync"

// projectLocks serializes cascades per project identifier. Two concurrent
// edits to overlapping dependency chains of one project would interleave
// writes and leave dates inconsistent; edits to different projects share
// nothing and must not block each other.
type projectLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// lock acquires the mutex for projectID, creating it on first use, and
// returns the matching unlock function.
func (p *projectLocks) lock(projectID string) func() {
	p.mu.Lock()
	if p.locks == nil {
		p.locks = make(map[string]*sync.Mutex)
	}
	l, ok := p.locks[projectID]
	if !ok {
		l = &sync.Mutex{}
		p.locks[projectID] = l
	}
	p.mu.Unlock()

	l.Lock()
	return l.Unlock
}
