// Package zipstream reads a zip archive sequentially from its local file
// headers, without seeking to the central directory. It can consume an HTTP
// response body directly.
package zipstream

import (
	"bufio"
	"encoding/binary"
	"hash"
	"hash/crc32"
	"io"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/m-mizutani/goerr/v2"
)

const (
	localHeaderSignature    = 0x04034b50
	centralHeaderSignature  = 0x02014b50
	endOfCentralSignature   = 0x06054b50
	zip64EndSignature       = 0x06064b50
	dataDescriptorSignature = 0x08074b50

	localHeaderLen = 26 // without signature

	flagEncrypted      = 0x1
	flagDataDescriptor = 0x8

	zip64ExtraID = 0x0001
	uint32max    = 0xffffffff
)

const (
	Store   uint16 = 0
	Deflate uint16 = 8
)

var (
	ErrFormat      = goerr.New("not a valid zip stream")
	ErrUnsupported = goerr.New("unsupported zip feature")
	ErrChecksum    = goerr.New("zip entry checksum mismatch")
)

// Entry describes one local file header. Size and CompressedSize are -1 when
// the header defers them to a trailing data descriptor, and stay -1 after the
// content is read; the descriptor is only used to verify the content.
type Entry struct {
	Name           string
	Method         uint16
	Flags          uint16
	CRC32          uint32
	CompressedSize int64
	Size           int64
	Modified       time.Time

	zip64 bool
}

func (x *Entry) IsDir() bool {
	return strings.HasSuffix(x.Name, "/")
}

func (x *Entry) hasDataDescriptor() bool {
	return x.Flags&flagDataDescriptor != 0
}

// Reader iterates entries in stream order. Read returns the content of the
// entry most recently returned by Next.
type Reader struct {
	r       *bufio.Reader
	content *entryReader
	err     error
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next advances to the next entry, discarding unread content of the current
// one. It returns io.EOF when the central directory or the end of the stream
// is reached.
func (x *Reader) Next() (*Entry, error) {
	if x.err != nil {
		return nil, x.err
	}

	if x.content != nil {
		if _, err := io.Copy(io.Discard, x.content); err != nil {
			x.err = err
			return nil, err
		}
		x.content = nil
	}

	entry, err := x.readLocalHeader()
	if err != nil {
		x.err = err
		return nil, err
	}

	content, err := x.openContent(entry)
	if err != nil {
		x.err = err
		return nil, err
	}
	x.content = content

	return entry, nil
}

func (x *Reader) Read(p []byte) (int, error) {
	if x.err != nil {
		return 0, x.err
	}
	if x.content == nil {
		return 0, io.EOF
	}
	return x.content.Read(p)
}

func (x *Reader) readLocalHeader() (*Entry, error) {
	var sig [4]byte
	if _, err := io.ReadFull(x.r, sig[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, goerr.Wrap(ErrFormat, "failed to read header signature", goerr.V("error", err))
	}

	switch binary.LittleEndian.Uint32(sig[:]) {
	case localHeaderSignature:
	case centralHeaderSignature, endOfCentralSignature, zip64EndSignature:
		return nil, io.EOF
	default:
		return nil, goerr.Wrap(ErrFormat, "unexpected header signature", goerr.V("signature", sig))
	}

	var buf [localHeaderLen]byte
	if _, err := io.ReadFull(x.r, buf[:]); err != nil {
		return nil, goerr.Wrap(ErrFormat, "truncated local file header", goerr.V("error", err))
	}

	b := readBuf(buf[:])
	b.uint16() // version needed to extract
	entry := &Entry{
		Flags:  b.uint16(),
		Method: b.uint16(),
	}
	modTime := b.uint16()
	modDate := b.uint16()
	entry.CRC32 = b.uint32()
	compressedSize := b.uint32()
	size := b.uint32()
	nameLen := int(b.uint16())
	extraLen := int(b.uint16())
	entry.Modified = msDosTimeToTime(modDate, modTime)
	entry.CompressedSize = int64(compressedSize)
	entry.Size = int64(size)

	nameAndExtra := make([]byte, nameLen+extraLen)
	if _, err := io.ReadFull(x.r, nameAndExtra); err != nil {
		return nil, goerr.Wrap(ErrFormat, "truncated file name", goerr.V("error", err))
	}
	entry.Name = string(nameAndExtra[:nameLen])

	if err := parseExtra(entry, nameAndExtra[nameLen:], size == uint32max, compressedSize == uint32max); err != nil {
		return nil, err
	}

	if entry.Flags&flagEncrypted != 0 {
		return nil, goerr.Wrap(ErrUnsupported, "encrypted entry", goerr.V("name", entry.Name))
	}
	if entry.Method != Store && entry.Method != Deflate {
		return nil, goerr.Wrap(ErrUnsupported, "compression method", goerr.V("name", entry.Name), goerr.V("method", entry.Method))
	}

	if entry.hasDataDescriptor() {
		switch {
		case entry.Method == Deflate:
			entry.CompressedSize, entry.Size = -1, -1
		case entry.IsDir():
			entry.CompressedSize, entry.Size = 0, 0
		default:
			// A stored entry does not mark its own end
			return nil, goerr.Wrap(ErrUnsupported, "stored entry with data descriptor", goerr.V("name", entry.Name))
		}
	}

	return entry, nil
}

func parseExtra(entry *Entry, extra []byte, needSize, needCompressedSize bool) error {
	b := readBuf(extra)
	for len(b) >= 4 {
		id := b.uint16()
		n := int(b.uint16())
		if len(b) < n {
			return goerr.Wrap(ErrFormat, "truncated extra field", goerr.V("name", entry.Name))
		}
		field := b.sub(n)
		if id != zip64ExtraID {
			continue
		}

		entry.zip64 = true
		if needSize {
			if len(field) < 8 {
				return goerr.Wrap(ErrFormat, "truncated zip64 extra field", goerr.V("name", entry.Name))
			}
			entry.Size = int64(field.uint64())
		}
		if needCompressedSize {
			if len(field) < 8 {
				return goerr.Wrap(ErrFormat, "truncated zip64 extra field", goerr.V("name", entry.Name))
			}
			entry.CompressedSize = int64(field.uint64())
		}
	}
	return nil
}

func (x *Reader) openContent(entry *Entry) (*entryReader, error) {
	content := &entryReader{
		owner: x,
		entry: entry,
		hash:  crc32.NewIEEE(),
	}

	var raw io.Reader = x.r
	if entry.CompressedSize >= 0 {
		content.limited = &io.LimitedReader{R: x.r, N: entry.CompressedSize}
		raw = content.limited
	}

	switch entry.Method {
	case Store:
		content.body = raw
	case Deflate:
		// A bare bufio.Reader is an io.ByteReader, so flate stops exactly at
		// the end of the deflate stream when the size is deferred.
		if content.limited != nil {
			raw = bufio.NewReader(raw)
		}
		fr := flate.NewReader(raw)
		content.body = fr
		content.closer = fr
	}

	return content, nil
}

type entryReader struct {
	owner   *Reader
	entry   *Entry
	body    io.Reader
	closer  io.Closer
	limited *io.LimitedReader
	hash    hash.Hash32
	nread   int64
	err     error
}

func (x *entryReader) Read(p []byte) (int, error) {
	if x.err != nil {
		return 0, x.err
	}

	n, err := x.body.Read(p)
	x.hash.Write(p[:n])
	x.nread += int64(n)

	if x.entry.Size >= 0 && x.nread > x.entry.Size {
		err = goerr.Wrap(ErrFormat, "entry content exceeds declared size", goerr.V("name", x.entry.Name))
	}

	switch err {
	case nil:
	case io.EOF:
		if verr := x.finish(); verr != nil {
			err = verr
		}
	case io.ErrUnexpectedEOF:
		err = goerr.Wrap(ErrFormat, "truncated entry content", goerr.V("name", x.entry.Name))
	}

	if err != nil {
		x.err = err
		if err != io.EOF {
			x.owner.err = err
		}
	}
	return n, err
}

func (x *entryReader) finish() error {
	if x.closer != nil {
		if err := x.closer.Close(); err != nil {
			return goerr.Wrap(ErrFormat, "failed to close decompressor", goerr.V("name", x.entry.Name), goerr.V("error", err))
		}
	}
	if x.limited != nil && x.limited.N > 0 {
		if _, err := io.Copy(io.Discard, x.limited); err != nil {
			return goerr.Wrap(ErrFormat, "truncated entry content", goerr.V("name", x.entry.Name), goerr.V("error", err))
		}
	}

	crc, size := x.entry.CRC32, x.entry.Size
	if x.entry.hasDataDescriptor() {
		desc, err := x.owner.readDataDescriptor(x.entry)
		if err != nil {
			return err
		}
		crc, size = desc.crc32, desc.size
	}

	if size >= 0 && x.nread != size {
		return goerr.Wrap(ErrFormat, "entry size mismatch",
			goerr.V("name", x.entry.Name),
			goerr.V("expected", size),
			goerr.V("actual", x.nread),
		)
	}
	if x.hash.Sum32() != crc {
		return goerr.Wrap(ErrChecksum, "crc32 mismatch", goerr.V("name", x.entry.Name))
	}

	return nil
}

type dataDescriptor struct {
	crc32 uint32
	size  int64
}

// readDataDescriptor reads the trailer of entry. The Entry itself is left as
// returned by Next.
func (x *Reader) readDataDescriptor(entry *Entry) (*dataDescriptor, error) {
	var buf [24]byte
	if _, err := io.ReadFull(x.r, buf[:4]); err != nil {
		return nil, goerr.Wrap(ErrFormat, "truncated data descriptor", goerr.V("name", entry.Name), goerr.V("error", err))
	}

	// The signature is optional
	if binary.LittleEndian.Uint32(buf[:4]) == dataDescriptorSignature {
		if _, err := io.ReadFull(x.r, buf[:4]); err != nil {
			return nil, goerr.Wrap(ErrFormat, "truncated data descriptor", goerr.V("name", entry.Name), goerr.V("error", err))
		}
	}
	desc := &dataDescriptor{crc32: binary.LittleEndian.Uint32(buf[:4])}

	width := 4
	if entry.zip64 {
		width = 8
	}
	sizes := buf[4 : 4+2*width]
	if _, err := io.ReadFull(x.r, sizes); err != nil {
		return nil, goerr.Wrap(ErrFormat, "truncated data descriptor", goerr.V("name", entry.Name), goerr.V("error", err))
	}

	b := readBuf(sizes)
	// compressed size first, then uncompressed size
	if entry.zip64 {
		b.uint64()
		desc.size = int64(b.uint64())
	} else {
		b.uint32()
		desc.size = int64(b.uint32())
	}

	return desc, nil
}

// msDosTimeToTime converts an MS-DOS date and time into a time.Time in UTC.
func msDosTimeToTime(dosDate, dosTime uint16) time.Time {
	return time.Date(
		int(dosDate>>9+1980),
		time.Month(dosDate>>5&0xf),
		int(dosDate&0x1f),
		int(dosTime>>11),
		int(dosTime>>5&0x3f),
		int(dosTime&0x1f*2),
		0,
		time.UTC,
	)
}

type readBuf []byte

func (b *readBuf) uint16() uint16 {
	v := binary.LittleEndian.Uint16(*b)
	*b = (*b)[2:]
	return v
}

func (b *readBuf) uint32() uint32 {
	v := binary.LittleEndian.Uint32(*b)
	*b = (*b)[4:]
	return v
}

func (b *readBuf) uint64() uint64 {
	v := binary.LittleEndian.Uint64(*b)
	*b = (*b)[8:]
	return v
}

func (b *readBuf) sub(n int) readBuf {
	v := (*b)[:n]
	*b = (*b)[n:]
	return v
}
