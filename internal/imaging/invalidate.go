package imaging

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/fsnotify/fsnotify"
)

// Invalidator evicts ImageCache entries whose files change on disk, so a
// long-running server never computes a palette from a stale decode.
//
// A path is watched before the cache first opens it, so a change landing
// while the file is being decoded still evicts it. A write, removal, rename or
// create event for that path evicts it; the next Load decodes the file again
// and starts a fresh watch.
type Invalidator struct {
	cache   *ImageCache
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewInvalidator starts watching the files cache loads. Call Close to stop.
func NewInvalidator(cache *ImageCache) (*Invalidator, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	inv := &Invalidator{
		cache:   cache,
		watcher: w,
		done:    make(chan struct{}),
	}
	cache.setBeforeOpen(inv.track)
	go inv.run()

	return inv, nil
}

func (inv *Invalidator) track(path string) {
	if err := inv.watcher.Add(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		log.Printf("Cannot watch %s, it will not be refreshed on change: %v", path, err)
	}
}

func (inv *Invalidator) run() {
	defer close(inv.done)

	const changed = fsnotify.Write | fsnotify.Remove | fsnotify.Rename | fsnotify.Create
	for {
		select {
		case ev, ok := <-inv.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&changed != 0 {
				inv.cache.Evict(ev.Name)
			}
		case err, ok := <-inv.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// Close stops watching and detaches from the cache. Entries already cached
// stay cached.
func (inv *Invalidator) Close() error {
	inv.cache.setBeforeOpen(nil)
	err := inv.watcher.Close()
	<-inv.done
	return err
}
