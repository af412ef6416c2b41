package store

import "sync"

// listeners is a set of change callbacks.
type listeners struct {
	mu   sync.Mutex
	next int
	fns  map[int]func()
}

// Subscribe registers fn to be called after every state change and returns
// a function that removes it. Callbacks run on the goroutine that made the
// change, with no store lock held.
func (l *listeners) Subscribe(fn func()) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]func())
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.fns, id)
	}
}

func (l *listeners) notify() {
	l.mu.Lock()
	fns := make([]func(), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
