package markup

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce 合并同一批文件事件的等待时间。
const DefaultDebounce = 100 * time.Millisecond

// Watch 先处理一次全部匹配文件，然后在文件写入/创建时重新处理，直到 ctx 取消。
func (p *Preprocessor) Watch(ctx context.Context, patterns []string, opts FileOptions) error {
	sources, err := expand(patterns, opts.OutDir)
	if err != nil {
		return err
	}
	for _, src := range sources {
		if _, err := p.processFile(ctx, src, opts); err != nil {
			return err
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, pattern := range patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		if err := addTree(watcher, filepath.FromSlash(base)); err != nil {
			return err
		}
	}
	slog.Info("Watching for changes", "patterns", patterns)

	pending := make(map[string]source)
	timer := time.NewTimer(DefaultDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					_ = addTree(watcher, event.Name)
					continue
				}
			}
			if src, ok := matchSource(patterns, event.Name, opts.OutDir); ok {
				pending[src.path] = src
				timer.Reset(DefaultDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", "error", err)

		case <-timer.C:
			for path, src := range pending {
				if _, err := p.processFile(ctx, src, opts); err != nil {
					slog.Error("Preprocess failed", "file", path, "error", err)
				}
				delete(pending, path)
			}
		}
	}
}

// addTree 监听 root 及其所有子目录 (fsnotify 不递归)。
func addTree(w *fsnotify.Watcher, root string) error {
	if root == "" {
		root = "."
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}

		return nil
	})
}

func matchSource(patterns []string, name, skipDir string) (source, bool) {
	if within(skipDir, name) {
		return source{}, false
	}
	for _, pattern := range patterns {
		ok, err := doublestar.PathMatch(filepath.Clean(pattern), filepath.Clean(name))
		if err != nil || !ok {
			continue
		}
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))

		return source{path: name, base: filepath.FromSlash(base)}, true
	}

	return source{}, false
}
