package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const watchDebounce = 150 * time.Millisecond

// Watch reloads the config at path whenever it changes and passes each
// valid result to fn. Invalid files are logged and skipped. It blocks until
// ctx is cancelled.
func Watch(ctx context.Context, path string, fn func(*Config), logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	// Watch the directory so editors that replace the file are seen.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}
	logger.Debug("watching config", zap.String("path", target))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error", zap.Error(err))

		case <-pending:
			pending = nil
			cfg, err := Load(target)
			if err != nil {
				logger.Warn("config reload rejected", zap.String("path", target), zap.Error(err))
				continue
			}
			logger.Info("config reloaded", zap.String("path", target))
			fn(cfg)
		}
	}
}
