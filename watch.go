package chatmsg

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Watch reloads the active language whenever its file changes on disk.
// It follows language switches: after a load the new file is watched
// instead. It blocks until ctx is done. The active language must come from
// a file when Watch starts; later stream or bundled loads pause watching
// until a file is loaded again.
func (c *Catalog) Watch(ctx context.Context) error {
	st, changed := c.watchState()
	if st == nil {
		return ErrNoActiveLanguage
	}
	if !watchable(st) {
		return errors.Wrapf(ErrNotReloadable, "watch %s", st.language)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer w.Close()

	fw := &fileWatch{catalog: c, watcher: w}
	if err := fw.follow(st); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changed:
			st, changed = c.watchState()
			if err := fw.follow(st); err != nil {
				c.logger.Warn("language watcher", "language", st.language, "error", err)
			}
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if fw.target == "" || filepath.Clean(ev.Name) != fw.target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// the event may belong to a language that was just replaced
			cur := c.state()
			if !watchable(cur) || filepath.Clean(cur.src.path) != fw.target {
				continue
			}
			if err := c.reload(cur); err != nil {
				// keep serving the previous document
				c.logger.Warn("reload language", "path", fw.target, "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("language watcher", "error", err)
		}
	}
}

func watchable(st *catalogState) bool {
	return st != nil && st.src.path != "" && !st.src.bundled
}

// fileWatch tracks which file and directory the watcher is pointed at.
type fileWatch struct {
	catalog *Catalog
	watcher *fsnotify.Watcher
	dir     string
	target  string
}

// follow points the watcher at the file of st. Editors often replace the
// file, so the directory is watched and events are filtered by name.
func (fw *fileWatch) follow(st *catalogState) error {
	if !watchable(st) {
		fw.unwatch()
		return nil
	}
	target := filepath.Clean(st.src.path)
	if target == fw.target {
		return nil
	}
	if dir := filepath.Dir(target); dir != fw.dir {
		fw.unwatch()
		if err := fw.watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "watch %s", target)
		}
		fw.dir = dir
	}
	fw.target = target
	fw.catalog.logger.Info("watching language file", "language", st.language, "path", target)
	return nil
}

func (fw *fileWatch) unwatch() {
	if fw.dir != "" {
		_ = fw.watcher.Remove(fw.dir)
	}
	fw.dir, fw.target = "", ""
}
