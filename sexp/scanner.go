package sexp

import "io"

const scannerBufSize = 8 << 10

// Scanner is the default Source implementation.  It reads bytes from an
// io.Reader through an internal buffer and tracks the file position of the
// next unread byte so syntax errors can reference their source location.
//
// The reader operates on raw bytes.  Multi-byte UTF-8 sequences pass
// through a Scanner untouched, one byte at a time.
type Scanner struct {
	file    string
	r       io.Reader
	readErr error

	buf   []byte
	pos   int // index of the next unread byte in buf
	total int // bytes consumed from r
	line  int // line number of the next unread byte
	col   int // column number of the next unread byte
}

var _ Source = (*Scanner)(nil)
var _ Locator = (*Scanner)(nil)

// NewScanner initializes and returns a new Scanner.  The file name is only
// used to construct Locations.
func NewScanner(file string, r io.Reader) *Scanner {
	return &Scanner{
		file: file,
		r:    r,
		buf:  make([]byte, 0, scannerBufSize),
		line: 1,
		col:  1,
	}
}

// NextChar implements the Source interface.
func (s *Scanner) NextChar() (byte, bool) {
	c, ok := s.PeekChar()
	if !ok {
		return 0, false
	}
	s.pos++
	s.total++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c, true
}

// PeekChar implements the Source interface.
func (s *Scanner) PeekChar() (byte, bool) {
	if s.pos >= len(s.buf) {
		s.fill()
		if len(s.buf) == 0 {
			return 0, false
		}
	}
	return s.buf[s.pos], true
}

func (s *Scanner) fill() {
	s.buf = s.buf[:0]
	s.pos = 0
	if s.readErr != nil {
		return
	}
	n, err := io.ReadFull(s.r, s.buf[:cap(s.buf)])
	s.buf = s.buf[:n]
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	s.readErr = err
}

// Err returns the first error other than io.EOF encountered reading the
// underlying stream.  The Source interface reports any read failure as end
// of input; Err lets callers tell a broken stream from a finished one.
func (s *Scanner) Err() error {
	if s.readErr == io.EOF {
		return nil
	}
	return s.readErr
}

// Loc implements the Locator interface.  The returned Location references
// the next unread byte.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Pos:  s.total,
		Line: s.line,
		Col:  s.col,
	}
}
