/*-------------------------------------------------------------------------
 *
 * PahVenture MSSQL MCP Server
 *
 * Copyright (c) 2026, PahVenture
 * This software is released under the MIT License
 *
 *-------------------------------------------------------------------------
 */

package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/PahVenture/pv-mcp-mssql-server/internal/logging"
)

// FileWatcher watches a configuration file and invokes a reload callback
// when it changes. The environment always wins over the file, so a reload
// only revalidates the file layer and surfaces problems early instead of at
// the next request.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	filePath string
	reloadFn func() error
	done     chan struct{}
}

// NewFileWatcher creates a watcher for filePath. The callback runs debounced
// after write or create events.
func NewFileWatcher(filePath string, reloadFn func() error) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:  watcher,
		filePath: filePath,
		reloadFn: reloadFn,
		done:     make(chan struct{}),
	}

	// Watch the directory containing the file rather than the file itself;
	// editors often delete and recreate files on save.
	dir := filepath.Dir(filePath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	return fw, nil
}

// Start begins watching for file changes
func (fw *FileWatcher) Start() {
	go fw.watch()
}

// Stop stops watching for file changes
func (fw *FileWatcher) Stop() {
	close(fw.done)
	fw.watcher.Close()
}

func (fw *FileWatcher) watch() {
	var debounceTimer *time.Timer
	const debounceDuration = 100 * time.Millisecond

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Name != fw.filePath {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDuration, func() {
					if err := fw.reloadFn(); err != nil {
						logging.Error("config reload failed", "path", fw.filePath, "error", err.Error())
					} else {
						logging.Info("config reloaded", "path", fw.filePath)
					}
				})
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("config watcher error", "path", fw.filePath, "error", err.Error())

		case <-fw.done:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return
		}
	}
}
