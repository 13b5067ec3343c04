package generator

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Vulkan-FIT/vkcpp-gen/am"
	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/logger"
)

// Files maps output paths, relative to the destination, to their content.
type Files map[string][]byte

// Names returns the paths in sorted order.
func (f Files) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFiles writes every file under dir. Files are independent, so they
// are written concurrently; the first failure cancels the rest.
func WriteFiles(ctx context.Context, dir string, files Files) error {
	if err := os.MkdirAll(dir, am.DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create output directory %s", dir)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, name := range files.Names() {
		name := name
		content := files[name]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, name)
			if err := os.MkdirAll(filepath.Dir(path), am.DefaultDirPermissions); err != nil {
				return errors.Wrapf(err, "failed to create directory for %s", name)
			}
			if err := os.WriteFile(path, content, am.DefaultFilePermissions); err != nil {
				return errors.Wrapf(err, "failed to write %s", path)
			}
			logger.Debugw("Wrote output file", logger.FieldFile, path, "bytes", len(content))
			return nil
		})
	}
	return g.Wait()
}
