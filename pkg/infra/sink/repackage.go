package sink

import (
	"context"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/l10nsync/pkg/domain/interfaces"
	"github.com/m-mizutani/l10nsync/pkg/domain/model"
	"github.com/m-mizutani/l10nsync/pkg/domain/types"
	"github.com/m-mizutani/l10nsync/pkg/utils/logging"
)

// Repackage writes every entry into one zip archive.
type Repackage struct {
	path   string
	fd     *os.File
	zw     *zip.Writer
	closed bool
}

var _ interfaces.EntrySink = (*Repackage)(nil)

// NewRepackage creates parent directories of path and creates (or truncates)
// the archive file.
func NewRepackage(path string) (*Repackage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, goerr.Wrap(types.ErrSinkWriteFailed, "failed to create parent directory",
			goerr.V("path", path),
			goerr.V("error", err),
		)
	}

	fd, err := os.Create(filepath.Clean(path))
	if err != nil {
		return nil, goerr.Wrap(types.ErrSinkWriteFailed, "failed to create archive file",
			goerr.V("path", path),
			goerr.V("error", err),
		)
	}

	return &Repackage{
		path: path,
		fd:   fd,
		zw:   zip.NewWriter(fd),
	}, nil
}

func (x *Repackage) Put(ctx context.Context, entry *model.TransformedEntry) error {
	if x.closed {
		return goerr.Wrap(types.ErrSinkWriteFailed, "archive is already closed", goerr.V("path", x.path))
	}

	modified := entry.Modified
	if modified.IsZero() {
		modified = logging.CtxTime(ctx)
	}

	logging.From(ctx).Debug("repackaging file", "name", entry.Name, "archive", x.path)

	w, err := x.zw.CreateHeader(&zip.FileHeader{
		Name:     entry.Name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return goerr.Wrap(types.ErrSinkWriteFailed, "failed to create archive entry",
			goerr.V("path", x.path),
			goerr.V("name", entry.Name),
			goerr.V("error", err),
		)
	}

	if _, err := w.Write(entry.Data); err != nil {
		return goerr.Wrap(types.ErrSinkWriteFailed, "failed to write archive entry",
			goerr.V("path", x.path),
			goerr.V("name", entry.Name),
			goerr.V("error", err),
		)
	}

	return nil
}

// Close flushes the central directory and closes the file. Only the first
// call has an effect.
func (x *Repackage) Close() error {
	if x.closed {
		return nil
	}
	x.closed = true

	zipErr := x.zw.Close()
	fileErr := x.fd.Close()

	if zipErr != nil {
		return goerr.Wrap(types.ErrSinkWriteFailed, "failed to finish archive",
			goerr.V("path", x.path),
			goerr.V("error", zipErr),
		)
	}
	if fileErr != nil {
		return goerr.Wrap(types.ErrSinkWriteFailed, "failed to close archive file",
			goerr.V("path", x.path),
			goerr.V("error", fileErr),
		)
	}

	return nil
}
