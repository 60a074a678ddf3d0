package main

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/kiteco/prettyfast/kite-golib/errors"
)

// watch formats the files once and then again whenever one of them is
// written, until the watcher fails.
func (r *runner) watch(files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrapf(err, "creating watcher")
	}
	defer watcher.Close()

	for _, name := range files {
		if err := watcher.Add(name); err != nil {
			return errors.Wrapf(err, "watching %s", name)
		}
		r.report(name)
	}

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			switch {
			case ev.Op&(fsnotify.Write|fsnotify.Create) != 0:
				r.report(ev.Name)
			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				// editors that save by renaming replace the watched file
				if err := watcher.Add(ev.Name); err == nil {
					r.report(ev.Name)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return errors.Wrapf(err, "watching")
		}
	}
}

func (r *runner) report(name string) {
	if _, err := r.runFile(name); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
