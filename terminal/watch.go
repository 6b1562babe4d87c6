package terminal

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce batches the several events editors emit for one save.
const DefaultDebounce = 200 * time.Millisecond

// ConfigWatcher reports changes to a single file. It watches the parent
// directory so files replaced by rename are still seen.
type ConfigWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	logger   *zap.Logger
}

// NewConfigWatcher starts watching path's directory.
func NewConfigWatcher(path string, logger *zap.Logger) (*ConfigWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &ConfigWatcher{
		watcher:  watcher,
		path:     abs,
		debounce: DefaultDebounce,
		logger:   logger,
	}, nil
}

// Run calls onChange once per burst of writes to the file until ctx is
// done. The watcher is closed when Run returns.
func (w *ConfigWatcher) Run(ctx context.Context, onChange func()) error {
	defer w.watcher.Close()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("config changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			pending = time.After(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", zap.Error(err))

		case <-pending:
			pending = nil
			onChange()
		}
	}
}
