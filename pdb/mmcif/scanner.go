package mmcif

import (
	"bufio"
	"bytes"
	"io"
)

const maxLine = 1024 * 1024 // longest line we will accept

// cmmtScanner is a wrapper around bufio.Scanner that
//   - jumps over blank lines
//   - removes leading and trailing space
//   - jumps over multi-line text fields
//   - counts lines in n, so we can print out the line number in
//     error messages
//
// Comment lines are returned, since they end tables.
type cmmtScanner struct {
	*bufio.Scanner        // standard library scanner
	line           []byte // current line, trimmed
	n              int    // line number in the mmcif file
	again          bool   // give back the same line on the next cscan
}

func newCmmtScanner(r io.Reader) *cmmtScanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLine)
	return &cmmtScanner{Scanner: s}
}

// cscan moves to the next interesting line and sets line to it.
func (s *cmmtScanner) cscan() bool {
	if s.again {
		s.again = false
		return true
	}
	for s.Scan() {
		s.n++
		raw := s.Bytes()
		if len(raw) > 0 && raw[0] == ';' {
			if !s.skipText() {
				return false
			}
			continue
		}
		if b := bytes.TrimSpace(raw); len(b) > 0 {
			s.line = b
			return true
		}
	}
	s.line = nil
	return false
}

// skipText reads to the line starting with the semicolon that closes
// a text field.
func (s *cmmtScanner) skipText() bool {
	for s.Scan() {
		s.n++
		if b := s.Bytes(); len(b) > 0 && b[0] == ';' {
			return true
		}
	}
	return false
}

// back means the next call to cscan will return the current line again.
func (s *cmmtScanner) back() { s.again = true }

func (s *cmmtScanner) cbytes() []byte { return s.line }
