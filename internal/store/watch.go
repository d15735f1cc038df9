package store

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// WaitForChange blocks until the database at dbPath (or its WAL) is written
// by anyone, or ctx is done. It returns ctx.Err() on cancellation.
func WaitForChange(ctx context.Context, dbPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(dbPath)); err != nil {
		return err
	}

	base := filepath.Base(dbPath)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 && isDBFile(evt.Name, base) {
				return nil
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

func isDBFile(path, base string) bool {
	name := filepath.Base(path)
	return name == base || strings.HasPrefix(name, base+"-")
}
