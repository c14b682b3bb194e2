// Package zwrap takes a reader, looks at the first bytes and, if they
// are the gzip magic number, puts a decompressor in front of it. Calling
// Close closes the decompressor, followed by the underlying source.
// It works the same for files, memory mapped files and http streams.
package zwrap

import (
	"bufio"
	"compress/gzip"
	"errors"
	"io"
)

var gzMagic = [2]byte{0x1f, 0x8b}

// IsGzip says if b starts with the gzip magic number.
func IsGzip(b []byte) bool {
	return len(b) >= len(gzMagic) && b[0] == gzMagic[0] && b[1] == gzMagic[1]
}

type FpGzip struct { // This is what we return.
	src  io.Closer
	rdr  io.Reader
	zrdr *gzip.Reader // nil if the source was not compressed
}

// Close closes the decompressor, then the underlying source.
func (fc *FpGzip) Close() error {
	var e1 error
	if fc.zrdr != nil {
		e1 = fc.zrdr.Close()
	}
	return errors.Join(e1, fc.src.Close())
}

// Read reads decompressed bytes if the source was compressed.
func (fc *FpGzip) Read(p []byte) (int, error) { return fc.rdr.Read(p) }

// Compressed says if we are decompressing.
func (fc *FpGzip) Compressed() bool { return fc.zrdr != nil }

// Wrap insists that src is gzipped.
func Wrap(src io.ReadCloser) (*FpGzip, error) {
	zrdr, err := gzip.NewReader(src)
	if err != nil {
		return nil, err
	}
	return &FpGzip{src: src, rdr: zrdr, zrdr: zrdr}, nil
}

// WrapMaybe peeks at the start of src and only decompresses if it
// sees the gzip magic number. An empty source is not an error here.
func WrapMaybe(src io.ReadCloser) (*FpGzip, error) {
	br := bufio.NewReader(src)
	head, err := br.Peek(len(gzMagic))
	if err != nil && err != io.EOF {
		return nil, err
	}
	if !IsGzip(head) {
		return &FpGzip{src: src, rdr: br}, nil
	}
	zrdr, err := gzip.NewReader(br)
	if err != nil {
		return nil, err
	}
	return &FpGzip{src: src, rdr: zrdr, zrdr: zrdr}, nil
}
