// /internal/library/watcher.go
package library

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const rebuildDebounce = 2 * time.Second

// Watch rebuilds the index whenever the songs tree changes on disk, so new
// albums show up in the next playlist generation without a restart. Blocks
// until ctx is cancelled.
func (l *Library) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(l.root); err != nil {
		return err
	}
	l.watchAlbums(watcher)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
				continue
			}
			if timer == nil {
				timer = time.AfterFunc(rebuildDebounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(rebuildDebounce)
			}

		case <-fire:
			log.Printf("[INFO] Assets changed, rebuilding library index")
			if err := l.Rebuild(); err != nil {
				log.Printf("[ERR] Library rebuild failed: %v", err)
			}
			l.watchAlbums(watcher)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[WARN] Assets watcher error: %v", err)
		}
	}
}

// watchAlbums adds every album folder so track-level changes are seen too.
func (l *Library) watchAlbums(watcher *fsnotify.Watcher) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			// Re-adding an already watched path is a no-op.
			_ = watcher.Add(filepath.Join(l.root, e.Name()))
		}
	}
}
