package sink

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/l10nsync/pkg/domain/interfaces"
	"github.com/m-mizutani/l10nsync/pkg/domain/model"
	"github.com/m-mizutani/l10nsync/pkg/domain/types"
	"github.com/m-mizutani/l10nsync/pkg/utils/logging"
)

// Extract writes each entry to root/<entry name>. Directories are created when
// the first file below them is written.
type Extract struct {
	root string
}

var _ interfaces.EntrySink = (*Extract)(nil)

func NewExtract(root string) *Extract {
	return &Extract{root: root}
}

func (x *Extract) Put(ctx context.Context, entry *model.TransformedEntry) error {
	fpath, err := x.resolve(entry.Name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fpath), 0o755); err != nil {
		return goerr.Wrap(types.ErrSinkWriteFailed, "failed to create directory",
			goerr.V("path", fpath),
			goerr.V("error", err),
		)
	}

	logging.From(ctx).Debug("extracting file", "name", entry.Name, "path", fpath)

	// #nosec G306
	if err := os.WriteFile(fpath, entry.Data, 0o644); err != nil {
		return goerr.Wrap(types.ErrSinkWriteFailed, "failed to write file",
			goerr.V("path", fpath),
			goerr.V("error", err),
		)
	}

	return nil
}

// Close has nothing to release; every file is closed by Put.
func (x *Extract) Close() error {
	return nil
}

func (x *Extract) resolve(name string) (string, error) {
	normalized := strings.ReplaceAll(name, "\\", "/")
	if strings.HasPrefix(normalized, "/") || filepath.IsAbs(name) {
		return "", goerr.Wrap(types.ErrSinkWriteFailed, "absolute file path in archive", goerr.V("name", name))
	}

	var parts []string
	for _, part := range strings.Split(normalized, "/") {
		if part == "" || part == "." {
			continue
		}
		if part == ".." {
			return "", goerr.Wrap(types.ErrSinkWriteFailed, "illegal file path of zip", goerr.V("name", name))
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return "", goerr.Wrap(types.ErrSinkWriteFailed, "empty file path in archive", goerr.V("name", name))
	}

	return filepath.Join(append([]string{x.root}, parts...)...), nil
}
