package testutil

import (
	"bytes"
	"hash/crc32"
	"os"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/m-mizutani/gt"
)

// GetEnvOrSkip returns the value of the environment variable. If not set, skip the test.
func GetEnvOrSkip(t *testing.T, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("Environment variable %s is not set, skipping test", key)
	}
	return value
}

// ZipFile is one entry of an archive built by BuildZip.
type ZipFile struct {
	Name    string
	Content string

	// Stored writes the entry uncompressed with sizes in the local header.
	// Otherwise the entry is deflated and its sizes follow in a data
	// descriptor, as a streaming writer does.
	Stored bool
}

// ZipModified is the modified time of every entry written by BuildZip.
var ZipModified = time.Date(2024, 5, 6, 7, 8, 10, 0, time.UTC)

func BuildZip(t *testing.T, files ...ZipFile) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)

	for _, f := range files {
		if f.Stored {
			fw := gt.R1(zw.CreateRaw(&zip.FileHeader{
				Name:               f.Name,
				Method:             zip.Store,
				Modified:           ZipModified,
				CRC32:              crc32.ChecksumIEEE([]byte(f.Content)),
				CompressedSize64:   uint64(len(f.Content)),
				UncompressedSize64: uint64(len(f.Content)),
			})).NoError(t)
			gt.R1(fw.Write([]byte(f.Content))).NoError(t)
			continue
		}

		fw := gt.R1(zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: ZipModified,
		})).NoError(t)
		gt.R1(fw.Write([]byte(f.Content))).NoError(t)
	}

	gt.NoError(t, zw.Close())
	return buf.Bytes()
}
