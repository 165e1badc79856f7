// Package client holds the state a Booksy client keeps on its own machine:
// the shopping cart and the bearer token. Both are plain JSON files under a
// state directory and are never synchronized with the server.
//
// Changes are fanned out through one logical broadcaster fed by two
// transports: local mutations emit directly (the in-process signal), and an
// fsnotify watcher relays writes made by other processes sharing the same
// state directory (the cross-process signal). Delivery between processes is
// eventually consistent, last write wins.
package client

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// broadcaster fans a change signal out to subscribers.
type broadcaster struct {
	mu   sync.Mutex
	subs map[int]chan struct{}
	next int
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[int]chan struct{})}
}

// subscribe registers a listener. The returned cancel func must be called
// when the listener goes away.
func (b *broadcaster) subscribe() (<-chan struct{}, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan struct{}, 1)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
	return ch, cancel
}

// emit signals every subscriber. The send is non-blocking; a subscriber that
// has not drained its previous signal is already due for a refresh.
func (b *broadcaster) emit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// watchFile runs onChange whenever path is written by anyone, including other
// processes. The parent directory is watched because the file itself may not
// exist yet. Returns a stop func.
func watchFile(path string, onChange func()) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	name := filepath.Base(path)
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != name {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					onChange()
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return watcher.Close, nil
}
