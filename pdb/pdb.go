// Package pdb is the upper level for reading and writing coordinates.
// Decide if a file is compressed or not and what format we are going to
// read. Then call the old PDB format reader or the mmcif reader.
// Files are memory mapped. Sources can also be downloaded by their four
// letter code.
package pdb

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrew-torda/ab_rmsd/pdb/cmmn"
	"github.com/andrew-torda/ab_rmsd/pdb/mmcif"
	"github.com/andrew-torda/ab_rmsd/pdb/zwrap"
	"github.com/andrew-torda/ab_rmsd/pkg/common"
	"github.com/edsrzf/mmap-go"
)

const (
	oldFmt byte = iota
	mmcifFmt
	unkFmt
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrFormat = Error("not a coordinate file we can read")
	ErrSrc    = Error("unknown source type")
)

const peekSize = 64 * 1024 // how much we look at when guessing the format

// fmtFromName decides the format from the file name, if it can.
// We cannot use filepath.Ext directly, since it will return .gz if
// we feed it a.pdb.gz.
func fmtFromName(fname string) byte {
	s := strings.ToLower(filepath.Base(fname))
	s = strings.TrimSuffix(s, ".gz")
	switch filepath.Ext(s) {
	case ".pdb", ".ent":
		return oldFmt
	case ".cif", ".mmcif":
		return mmcifFmt
	}
	return unkFmt
}

// IsCoordName says if a file name looks like a pdb or mmcif file,
// compressed or not.
func IsCoordName(fname string) bool { return fmtFromName(fname) != unkFmt }

// sniff looks at the start of a file and guesses if it is in old PDB
// format or in mmcif.
func sniff(head []byte) byte {
	pdbWords := []string{"HEADER", "COMPND", "SOURCE", "REMARK", "SEQRES", "CRYST1", "MODEL ", "ATOM  ", "HETATM"}
	mmcifWords := []string{"data_", "loop_", "_entry.id"}
	for len(head) > 0 {
		var ln []byte
		if i := bytes.IndexByte(head, '\n'); i >= 0 {
			ln, head = head[:i], head[i+1:]
		} else {
			ln, head = head, nil
		}
		for _, w := range mmcifWords {
			if bytes.HasPrefix(ln, []byte(w)) {
				return mmcifFmt
			}
		}
		for _, w := range pdbWords {
			if bytes.HasPrefix(ln, []byte(w)) {
				return oldFmt
			}
		}
	}
	return unkFmt
}

// mapped is a memory mapped file we can read from.
type mapped struct {
	*bytes.Reader
	mm mmap.MMap
	fp *os.File
}

func (m *mapped) Close() error { return errors.Join(m.mm.Unmap(), m.fp.Close()) }

// openMapped maps a regular, non-empty file into memory.
func openMapped(fname string) (*mapped, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	info, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, err
	}
	if !info.Mode().IsRegular() {
		fp.Close()
		return nil, fmt.Errorf("%s: %w: not a regular file", fname, ErrFormat)
	}
	if info.Size() == 0 {
		fp.Close()
		return nil, fmt.Errorf("%s: %w: empty file", fname, ErrFormat)
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		fp.Close()
		return nil, fmt.Errorf("mapping %s: %w", fname, err)
	}
	return &mapped{Reader: bytes.NewReader(mm), mm: mm, fp: fp}, nil
}

// ReadCoord reads the first model from a file (srcType cmmn.FileSrc)
// or downloads it (cmmn.HTTPSrc, fname is a four letter code).
// Files may be gzipped and may be in old pdb or mmcif format.
// The model is named from the file contents or, failing that, the
// file name.
func ReadCoord(fname string, srcType byte, lg *log.Logger) (*cmmn.Model, error) {
	lg = common.OrDiscard(lg)
	var src io.ReadCloser
	var typ byte
	var err error
	switch srcType {
	case cmmn.FileSrc:
		if src, err = openMapped(fname); err != nil {
			return nil, err
		}
		typ = fmtFromName(fname)
	case cmmn.HTTPSrc:
		if src, typ, err = getHTTP(fname, lg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w %d", ErrSrc, srcType)
	}
	rdr, err := zwrap.WrapMaybe(src)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	defer rdr.Close()

	br := bufio.NewReaderSize(rdr, peekSize)
	if typ == unkFmt {
		head, _ := br.Peek(peekSize) // short files give an error we do not care about
		if typ = sniff(head); typ == unkFmt {
			return nil, fmt.Errorf("%s: %w: cannot recognise format", fname, ErrFormat)
		}
	}
	var m *cmmn.Model
	if typ == oldFmt {
		m, err = ReadPDB(br)
	} else {
		m, err = mmcif.ReadAtomSite(br)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	if m.Name == "" {
		m.Name = FileID(fname)
	}
	lg.Println(fname, "chains", cmmn.ChnSl(m.Chains).ChainNames(), "atoms", cmmn.ChnSl(m.Chains).NAtom())
	return m, nil
}

// FileID is the base of a file name, up to the first dot.
// "a/1abc.pdb.gz" gives "1abc".
func FileID(fname string) string {
	s := filepath.Base(fname)
	if i := strings.IndexByte(s, '.'); i > 0 {
		s = s[:i]
	}
	return s
}
