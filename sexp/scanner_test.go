package sexp_test

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/luthersystems/sexpread/sexp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner(t *testing.T) {
	s := sexp.NewScanner("in", strings.NewReader("ab"))

	c, ok := s.PeekChar()
	require.True(t, ok)
	assert.Equal(t, byte('a'), c)

	// peek does not consume
	c, ok = s.PeekChar()
	require.True(t, ok)
	assert.Equal(t, byte('a'), c)

	c, ok = s.NextChar()
	require.True(t, ok)
	assert.Equal(t, byte('a'), c)

	c, ok = s.NextChar()
	require.True(t, ok)
	assert.Equal(t, byte('b'), c)

	// exhausted input stays exhausted
	for i := 0; i < 3; i++ {
		_, ok = s.NextChar()
		assert.False(t, ok)
		_, ok = s.PeekChar()
		assert.False(t, ok)
	}
	assert.NoError(t, s.Err())
}

func TestScannerLoc(t *testing.T) {
	s := sexp.NewScanner("in", strings.NewReader("ab\ncd"))
	loc := s.Loc()
	assert.Equal(t, "in", loc.File)
	assert.Equal(t, 1, loc.Line)
	assert.Equal(t, 1, loc.Col)
	assert.Equal(t, 0, loc.Pos)

	s.NextChar() // a
	s.NextChar() // b
	loc = s.Loc()
	assert.Equal(t, 1, loc.Line)
	assert.Equal(t, 3, loc.Col)

	s.NextChar() // newline
	loc = s.Loc()
	assert.Equal(t, 2, loc.Line)
	assert.Equal(t, 1, loc.Col)
	assert.Equal(t, 3, loc.Pos)
}

func TestScannerShortReads(t *testing.T) {
	// A reader that returns one byte at a time forces a refill on every
	// scan.
	const text = "hello world"
	s := sexp.NewScanner("in", iotest.OneByteReader(strings.NewReader(text)))
	var got []byte
	for {
		c, ok := s.NextChar()
		if !ok {
			break
		}
		got = append(got, c)
	}
	assert.Equal(t, text, string(got))
	assert.NoError(t, s.Err())
}

func TestScannerLargeInput(t *testing.T) {
	// Larger than the internal buffer, exercising multiple refills.
	text := strings.Repeat("x", 40<<10)
	s := sexp.NewScanner("in", strings.NewReader(text))
	n := 0
	for {
		_, ok := s.NextChar()
		if !ok {
			break
		}
		n++
	}
	assert.Equal(t, len(text), n)
}

func TestScannerReadError(t *testing.T) {
	broken := errors.New("disk on fire")
	s := sexp.NewScanner("in", iotest.ErrReader(broken))
	_, ok := s.NextChar()
	assert.False(t, ok)
	assert.Equal(t, broken, s.Err())
}
