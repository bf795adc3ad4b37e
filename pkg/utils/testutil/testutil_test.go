package testutil_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/l10nsync/pkg/utils/testutil"
)

func TestGetEnvOrSkip(t *testing.T) {
	key := "TEST_ENV_VAR_SET"
	t.Setenv(key, "test_value")

	gt.V(t, testutil.GetEnvOrSkip(t, key)).Equal("test_value")
}

func TestBuildZip(t *testing.T) {
	data := testutil.BuildZip(t,
		testutil.ZipFile{Name: "dir/"},
		testutil.ZipFile{Name: "dir/a.txt", Content: "a=b"},
		testutil.ZipFile{Name: "dir/b.txt", Content: "c=d", Stored: true},
	)

	zr := gt.R1(zip.NewReader(bytes.NewReader(data), int64(len(data)))).NoError(t)
	gt.V(t, len(zr.File)).Equal(3)
	gt.V(t, zr.File[1].Method).Equal(zip.Deflate)
	gt.V(t, zr.File[2].Method).Equal(zip.Store)
	gt.True(t, zr.File[1].Modified.Equal(testutil.ZipModified))

	for i, want := range []string{"", "a=b", "c=d"} {
		rc := gt.R1(zr.File[i].Open()).NoError(t)
		gt.V(t, string(gt.R1(io.ReadAll(rc)).NoError(t))).Equal(want)
		gt.NoError(t, rc.Close())
	}
}
