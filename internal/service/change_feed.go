package service

import "sync"

// ChangeFeed fans committed-write notifications out to in-process listeners.
// It satisfies repository.ChangeNotifier.
type ChangeFeed struct {
	mu        sync.RWMutex
	listeners map[int]func(tables []string)
	nextID    int
}

func NewChangeFeed() *ChangeFeed {
	return &ChangeFeed{listeners: make(map[int]func(tables []string))}
}

// Notify calls every listener synchronously; listeners must not block.
func (f *ChangeFeed) Notify(tables ...string) {
	f.mu.RLock()
	fns := make([]func([]string), 0, len(f.listeners))
	for _, fn := range f.listeners {
		fns = append(fns, fn)
	}
	f.mu.RUnlock()

	for _, fn := range fns {
		fn(tables)
	}
}

// Listen registers fn and returns a function that removes it.
func (f *ChangeFeed) Listen(fn func(tables []string)) (cancel func()) {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.listeners, id)
			f.mu.Unlock()
		})
	}
}
