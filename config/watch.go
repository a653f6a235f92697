// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/watch.go
// Summary: File change notification for config and data files.

package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

const changeMask = fsnotify.Create | fsnotify.Write | fsnotify.Rename | fsnotify.Remove

// Watch calls onChange with the absolute path of any of paths that is
// created, written, renamed or removed, until ctx is done. The parent
// directories are watched so files replaced by editors keep reporting.
// onChange runs on the watcher goroutine.
func Watch(ctx context.Context, paths []string, onChange func(path string)) error {
	targets := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("config: watch %s: %w", p, err)
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: watch: %w", err)
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("config: watch %s: %w", dir, err)
		}
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&changeMask == 0 {
					continue
				}
				name, err := filepath.Abs(evt.Name)
				if err != nil || !targets[name] {
					continue
				}
				log.WithField("op", evt.Op.String()).Debugf("Config: %s changed", name)
				onChange(name)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("Config: Watch error")
			}
		}
	}()
	return nil
}
