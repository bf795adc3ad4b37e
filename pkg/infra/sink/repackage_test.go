package sink_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/l10nsync/pkg/domain/model"
	"github.com/m-mizutani/l10nsync/pkg/domain/types"
	"github.com/m-mizutani/l10nsync/pkg/infra/sink"
	"github.com/m-mizutani/l10nsync/pkg/utils/logging"
)

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	zr := gt.R1(zip.OpenReader(path)).NoError(t)
	defer func() {
		gt.NoError(t, zr.Close())
	}()

	files := map[string]string{}
	for _, f := range zr.File {
		rc := gt.R1(f.Open()).NoError(t)
		files[f.Name] = string(gt.R1(io.ReadAll(rc)).NoError(t))
		gt.NoError(t, rc.Close())
	}
	return files
}

func TestRepackage(t *testing.T) {
	ctx := context.Background()

	t.Run("write entries into new archive", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "build", "lang", "translations.zip")
		s := gt.R1(sink.NewRepackage(path)).NoError(t)

		gt.NoError(t, s.Put(ctx, &model.TransformedEntry{Name: "a/b.txt", Data: []byte("k=v!w\n")}))
		gt.NoError(t, s.Put(ctx, &model.TransformedEntry{Name: "c.txt", Data: []byte("x=y\n")}))
		gt.NoError(t, s.Close())

		files := readArchive(t, path)
		gt.V(t, files).Equal(map[string]string{
			"a/b.txt": "k=v!w\n",
			"c.txt":   "x=y\n",
		})
	})

	t.Run("existing archive is truncated", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.zip")
		gt.NoError(t, os.WriteFile(path, []byte("stale content"), 0o644))

		s := gt.R1(sink.NewRepackage(path)).NoError(t)
		gt.NoError(t, s.Close())

		gt.V(t, len(readArchive(t, path))).Equal(0)
	})

	t.Run("modified time is preserved", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.zip")
		modified := time.Date(2023, 5, 6, 7, 8, 10, 0, time.UTC)

		s := gt.R1(sink.NewRepackage(path)).NoError(t)
		gt.NoError(t, s.Put(ctx, &model.TransformedEntry{Name: "a.txt", Data: []byte("a=b\n"), Modified: modified}))
		gt.NoError(t, s.Close())

		zr := gt.R1(zip.OpenReader(path)).NoError(t)
		defer zr.Close()
		gt.V(t, len(zr.File)).Equal(1)
		gt.True(t, zr.File[0].Modified.Equal(modified))
	})

	t.Run("zero modified time uses context time", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.zip")
		now := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
		ctx := logging.CtxWithTime(ctx, func() time.Time { return now })

		s := gt.R1(sink.NewRepackage(path)).NoError(t)
		gt.NoError(t, s.Put(ctx, &model.TransformedEntry{Name: "a.txt", Data: []byte("a=b\n")}))
		gt.NoError(t, s.Close())

		zr := gt.R1(zip.OpenReader(path)).NoError(t)
		defer zr.Close()
		gt.True(t, zr.File[0].Modified.Equal(now))
	})

	t.Run("put after close fails", func(t *testing.T) {
		s := gt.R1(sink.NewRepackage(filepath.Join(t.TempDir(), "out.zip"))).NoError(t)
		gt.NoError(t, s.Close())
		gt.NoError(t, s.Close())

		err := s.Put(ctx, &model.TransformedEntry{Name: "a.txt", Data: []byte("a")})
		gt.True(t, errors.Is(err, types.ErrSinkWriteFailed))
	})

	t.Run("cannot create archive under a file", func(t *testing.T) {
		dir := t.TempDir()
		gt.NoError(t, os.WriteFile(filepath.Join(dir, "file"), []byte("x"), 0o644))

		_, err := sink.NewRepackage(filepath.Join(dir, "file", "out.zip"))
		gt.True(t, errors.Is(err, types.ErrSinkWriteFailed))
	})
}

func TestNew(t *testing.T) {
	t.Run("extract mode", func(t *testing.T) {
		s := gt.R1(sink.New(t.TempDir(), true)).NoError(t)
		_, ok := s.(*sink.Extract)
		gt.True(t, ok)
	})

	t.Run("repackage mode", func(t *testing.T) {
		s := gt.R1(sink.New(filepath.Join(t.TempDir(), "out.zip"), false)).NoError(t)
		defer s.Close()
		_, ok := s.(*sink.Repackage)
		gt.True(t, ok)
	})
}
