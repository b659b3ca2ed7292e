package script

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// StartWatching re-parses scripts whenever a watched file is written.
func (r *Runner) StartWatching(dirs []string) error {
	if r.isWatching {
		return fmt.Errorf("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	r.watcher = watcher
	r.watchDirs = dirs

	for _, dir := range r.watchDirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return r.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	r.isWatching = true
	go r.watchLoop()
	return nil
}

func (r *Runner) StopWatching() error {
	if !r.isWatching {
		log.Println("not watching")
	}

	r.isWatching = false
	return r.watcher.Close()
}

func (r *Runner) watchLoop() {
	for r.isWatching {
		select {
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			r.handleFileEvent(event)
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("error: %v", err)
		}
	}
}

func (r *Runner) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write == fsnotify.Write {
		if !r.hasScriptExtension(event.Name) {
			return
		}
		// wait for a while after file change to consider multiple changes as one
		time.Sleep(100 * time.Millisecond)
		report, err := r.Run(event.Name)
		if err != nil {
			log.Printf("error: %v", err)
			return
		}
		r.reportEntries(event.Name, report)
	}
}

func (r *Runner) reportEntries(filename string, report *Report) {
	if len(report.Entries) == 0 {
		log.Printf("no problems found in %s (%d lines bound)", filename, len(report.Nodes))
		return
	}

	log.Printf("found %d diagnostics in %s", len(report.Entries), filename)
	for _, e := range report.Entries {
		log.Printf("- %s", e)
	}
}
