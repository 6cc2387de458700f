package gen

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/TerraSkye/api-client/internal/ctxlog"
)

// Watch runs regen whenever a schema file under dir changes, until
// the context is done. Regeneration failures are logged and watching
// continues, so a broken intermediate save does not kill the watcher.
func Watch(ctx context.Context, dir string, regen func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return err
	}

	logger := ctxlog.FromContext(ctx)
	logger.Info("watching schema directory", "dir", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Op.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			if !schemaFile(ev.Name) {
				continue
			}
			logger.Debug("schema change detected", "file", ev.Name, "op", ev.Op.String())
			if err := regen(ctx); err != nil {
				logger.Error("regeneration failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		}
	}
}

// schemaFile reports whether a changed path is worth a regeneration:
// schema declarations (.go) or marshaled snapshots (.json).
func schemaFile(name string) bool {
	switch filepath.Ext(name) {
	case ".go", ".json":
		return true
	}
	return false
}
