package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"brokersearch/internal/domain/models"
)

// ShowingsLoader источник снимков журнала показов
type ShowingsLoader interface {
	Load(ctx context.Context) (*models.ShowingSet, error)
}

// DatasetCache кэш снимка показов. Снимок сбрасывается, когда меняется время
// модификации или размер файла-источника, а также по событиям fsnotify.
// Ошибки загрузки не кэшируются.
type DatasetCache struct {
	loader ShowingsLoader
	path   string

	mu      sync.RWMutex
	set     *models.ShowingSet
	modTime time.Time
	size    int64
	loads   int

	watchMu   sync.Mutex
	watcher   *fsnotify.Watcher
	done      chan struct{}
	listeners []func(path string)
}

// NewDatasetCache создает кэш над источником; path задает файл, за которым следит кэш
func NewDatasetCache(loader ShowingsLoader, path string) *DatasetCache {
	return &DatasetCache{loader: loader, path: path}
}

// Load возвращает снимок из кэша или загружает его заново
func (c *DatasetCache) Load(ctx context.Context) (*models.ShowingSet, error) {
	modTime, size, err := c.stat()
	if err != nil {
		// Источник сам сообщит об отсутствии файла
		c.Invalidate()
		return c.loader.Load(ctx)
	}

	c.mu.RLock()
	if c.set != nil && c.modTime.Equal(modTime) && c.size == size {
		set := c.set
		c.mu.RUnlock()
		return set, nil
	}
	c.mu.RUnlock()

	set, err := c.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.set = set
	c.modTime = modTime
	c.size = size
	c.loads++
	c.mu.Unlock()

	slog.Debug("showings dataset loaded", "path", c.path, "rows", set.Len())
	return set, nil
}

func (c *DatasetCache) stat() (time.Time, int64, error) {
	if c.path == "" {
		return time.Time{}, 0, fs.ErrNotExist
	}
	info, err := os.Stat(c.path)
	if err != nil {
		return time.Time{}, 0, err
	}
	return info.ModTime(), info.Size(), nil
}

// Invalidate сбрасывает кэшированный снимок
func (c *DatasetCache) Invalidate() {
	c.mu.Lock()
	c.set = nil
	c.modTime = time.Time{}
	c.size = 0
	c.mu.Unlock()
}

// Loads количество фактических загрузок из источника
func (c *DatasetCache) Loads() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loads
}

// OnChange регистрирует обработчик изменения отслеживаемого файла.
// Вызывается из горутины наблюдателя.
func (c *DatasetCache) OnChange(fn func(path string)) {
	c.watchMu.Lock()
	c.listeners = append(c.listeners, fn)
	c.watchMu.Unlock()
}

// Watch запускает наблюдение за файлами. Следим за каталогами, а не за файлами:
// редакторы и выгрузки часто заменяют файл через rename.
func (c *DatasetCache) Watch(paths ...string) error {
	c.watchMu.Lock()
	defer c.watchMu.Unlock()

	if c.watcher != nil {
		return errors.New("dataset cache is already watching")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	files := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, p := range append([]string{c.path}, paths...) {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return fmt.Errorf("failed to resolve path %s: %w", p, err)
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	c.watcher = fw
	c.done = make(chan struct{})
	go c.watchLoop(fw, c.done, files)
	return nil
}

func (c *DatasetCache) watchLoop(fw *fsnotify.Watcher, done chan struct{}, files map[string]bool) {
	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !files[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				if filepath.Clean(event.Name) == c.absPath() {
					c.Invalidate()
				}
				slog.Info("data file changed", "path", event.Name, "op", event.Op.String())
				c.notify(event.Name)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			slog.Warn("file watcher error", "error", err)

		case <-done:
			return
		}
	}
}

func (c *DatasetCache) absPath() string {
	abs, err := filepath.Abs(c.path)
	if err != nil {
		return c.path
	}
	return abs
}

func (c *DatasetCache) notify(path string) {
	c.watchMu.Lock()
	listeners := append([]func(string){}, c.listeners...)
	c.watchMu.Unlock()

	for _, fn := range listeners {
		fn(path)
	}
}

// Stop останавливает наблюдение. Повторный вызов безопасен.
func (c *DatasetCache) Stop() error {
	c.watchMu.Lock()
	defer c.watchMu.Unlock()

	if c.watcher == nil {
		return nil
	}
	close(c.done)
	err := c.watcher.Close()
	c.watcher = nil
	return err
}
