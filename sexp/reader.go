// Package sexp implements a generic reader for S-expression syntax.  The
// reader is parameterized over a host-supplied value model and character
// source so it can construct values for any runtime; the lisp package
// provides a ready-made model.
package sexp

import (
	"fmt"
	"strings"
)

// symbolChars are the non-alphanumeric bytes that may start and continue a
// token.  Bytes >= 128 are also token constituents, which lets multi-byte
// UTF-8 sequences ride through symbols unmodified.
const symbolChars = "~!@$%&*_+-=:<>^.?/|"

// Reader reads S-expression datums from a Source, constructing every value
// through a Model.  Each call to Read produces exactly one datum.  A Reader
// is not safe for concurrent use.
type Reader struct {
	model Model
	src   Source
	cfg   Config

	symDot             Value
	symQuote           Value
	symQuasiquote      Value
	symUnquote         Value
	symUnquoteSplicing Value
	nilSym             Value
	haveNilSym         bool
}

// New initializes and returns a Reader that reads datums from src.  A nil
// cfg selects the default configuration.  New interns the dot and
// quote-family symbols through the model so they are recognizable even
// when they never appear literally in the input.
func New(model Model, src Source, cfg *Config) *Reader {
	r := &Reader{
		model: model,
		src:   src,
	}
	if cfg != nil {
		r.cfg = *cfg
	}
	r.symDot = model.Symbol(".")
	r.symQuote = model.Symbol("quote")
	r.symQuasiquote = model.Symbol("quasiquote")
	r.symUnquote = model.Symbol("unquote")
	r.symUnquoteSplicing = model.Symbol("unquote-splicing")
	if r.cfg.NilSymbol != "" {
		r.nilSym = model.Symbol(r.cfg.NilSymbol)
		r.haveNilSym = true
	}
	return r
}

// Read produces the next datum from the source.  At true end of input Read
// returns the model's end-of-stream sentinel and keeps returning it on
// subsequent calls.  A returned *SyntaxError aborts the whole datum; no
// partial value accompanies it and the source is not resynchronized.
func (r *Reader) Read() (v Value, err error) {
	defer func() {
		if e := recover(); e != nil {
			serr, ok := e.(*SyntaxError)
			if !ok {
				panic(e)
			}
			v = nil
			err = serr
		}
	}()
	return r.readDatum(), nil
}

// ReadAll reads datums until end of input.
func (r *Reader) ReadAll() ([]Value, error) {
	var vs []Value
	eos := r.model.EOS()
	for {
		v, err := r.Read()
		if err != nil {
			return vs, err
		}
		if r.model.Eq(v, eos) {
			return vs, nil
		}
		vs = append(vs, v)
	}
}

// raise signals a syntax error.  It unwinds the entire in-progress read;
// Read recovers it at the top level.
func (r *Reader) raise(code ErrorCode, format string, v ...interface{}) {
	err := &SyntaxError{
		Code: code,
		Msg:  fmt.Sprintf(format, v...),
	}
	if loc, ok := r.src.(Locator); ok {
		err.Loc = loc.Loc()
	}
	panic(err)
}

// dispatch actions.  Comment and prefix productions do not complete a datum
// and report actRetry so the caller loops instead of recursing.  List
// openers report actList/actVector so accumulation can run on an explicit
// frame stack rather than the call stack.
type action uint

const (
	actValue action = iota
	actRetry
	actList
	actVector
)

// readDatum reads one datum.  It returns the end-of-stream sentinel at end
// of input.
func (r *Reader) readDatum() Value {
	for {
		c, ok := r.skipSpace()
		if !ok {
			return r.model.EOS()
		}
		r.skip()
		v, term, act := r.dispatch(c)
		switch act {
		case actValue:
			return v
		case actList:
			return r.readList(term, false)
		case actVector:
			return r.readList(term, true)
		}
		// a comment or prefix was consumed; try again
	}
}

// dispatch consumes one production starting with the already-consumed lead
// character c.
func (r *Reader) dispatch(c byte) (Value, byte, action) {
	switch {
	case c == '\'':
		return r.quoteForm(r.symQuote), 0, actValue
	case c == '`':
		return r.quoteForm(r.symQuasiquote), 0, actValue
	case c == ',':
		if p, ok := r.peekChar(); ok && p == '@' {
			r.skip()
			return r.quoteForm(r.symUnquoteSplicing), 0, actValue
		}
		return r.quoteForm(r.symUnquote), 0, actValue
	case c == '(':
		return nil, ')', actList
	case c == '[' && r.cfg.BracketLists:
		return nil, ']', actList
	case c == '#':
		return r.dispatchHash()
	case c == '"':
		return r.readString(), 0, actValue
	case isTokenStart(c):
		return r.readToken(c, 10, false), 0, actValue
	}
	r.raise(ErrUnexpectedChar, "unexpected character %q", c)
	panic("unreachable")
}

// quoteForm wraps the next datum as (sym datum).
func (r *Reader) quoteForm(sym Value) Value {
	x := r.readDatum()
	return r.model.Cons(sym, r.model.Cons(x, r.model.Nil()))
}

// dispatchHash handles the '#' production.  The lead '#' has been consumed;
// the dispatch character is peeked so an exactness prefix can loop back
// here without a full top-level retry.
func (r *Reader) dispatchHash() (Value, byte, action) {
	for {
		c, ok := r.peekChar()
		if !ok {
			r.raise(ErrUnexpectedEOF, "unexpected end of input after '#'")
		}
		switch c {
		case '!':
			// sh-bang comment through end of line
			r.skip()
			r.skipLine()
			return nil, 0, actRetry
		case '|':
			r.skip()
			r.skipBlockComment()
			return nil, 0, actRetry
		case ';':
			// datum comment: read and discard exactly one datum
			r.skip()
			r.readDatum()
			return nil, 0, actRetry
		case '(':
			r.skip()
			return nil, ')', actVector
		case '\\':
			r.skip()
			return r.readCharLiteral(), 0, actValue
		case 'f', 'F':
			r.skip()
			return r.model.False(), 0, actValue
		case 't', 'T':
			if m, ok := r.model.(TrueModel); ok {
				r.skip()
				return m.True(), 0, actValue
			}
			return r.hashFallback(c)
		case 'u', 'U':
			if m, ok := r.model.(UnspecifiedModel); ok {
				r.skip()
				return m.Unspecified(), 0, actValue
			}
			return r.hashFallback(c)
		case '#':
			if m, ok := r.model.(EOFModel); ok {
				r.skip()
				return m.EOF(), 0, actValue
			}
			return r.hashFallback(c)
		case 'e', 'E', 'i', 'I':
			// exactness prefix, accepted and ignored
			r.skip()
		case 'b', 'B':
			r.skip()
			return r.readToken(c, 2, true), 0, actValue
		case 'o', 'O':
			r.skip()
			return r.readToken(c, 8, true), 0, actValue
		case 'd', 'D':
			r.skip()
			return r.readToken(c, 10, true), 0, actValue
		case 'x', 'X':
			r.skip()
			return r.readToken(c, 16, true), 0, actValue
		default:
			return r.hashFallback(c)
		}
	}
}

// hashFallback consumes an unrecognized dispatch character and defers to
// the MacroChar hook when one is configured.
func (r *Reader) hashFallback(c byte) (Value, byte, action) {
	r.skip()
	if r.cfg.MacroChar != nil {
		v, ok := r.cfg.MacroChar(c)
		if !ok {
			return nil, 0, actRetry
		}
		return v, 0, actValue
	}
	r.raise(ErrUnsupportedHashChar, "unsupported '#' sequence: #%c", c)
	panic("unreachable")
}

type listState uint

const (
	listElems  listState = iota // accumulating elements
	listDotCDR                  // '.' seen; the next datum is the tail
	listDotEnd                  // tail attached; only the terminator may follow
)

type listFrame struct {
	term   byte
	vector bool
	state  listState
	head   Value
	tail   Value // last constructed pair, nil until the first element
}

// readList accumulates list and vector elements.  Nested lists push frames
// onto an explicit stack so input nesting depth does not grow the call
// stack; only scalar productions and quote forms recurse.
func (r *Reader) readList(term byte, vector bool) Value {
	stack := []listFrame{{term: term, vector: vector, head: r.model.Nil()}}
	var elem Value
	haveElem := false
	for {
		f := &stack[len(stack)-1]
		if haveElem {
			haveElem = false
			switch {
			case f.state == listDotCDR:
				r.model.SetCDR(f.tail, elem)
				f.state = listDotEnd
			case r.model.Eq(elem, r.symDot):
				if f.tail == nil {
					r.raise(ErrMalformedDottedList, "expected an element before '.'")
				}
				f.state = listDotCDR
			default:
				p := r.model.Cons(elem, r.model.Nil())
				if f.tail == nil {
					f.head = p
				} else {
					r.model.SetCDR(f.tail, p)
				}
				f.tail = p
			}
		}
		c, ok := r.skipSpace()
		if !ok {
			switch f.state {
			case listDotEnd:
				r.raise(ErrUnexpectedEOF, "unexpected end of input after dotted tail")
			default:
				r.raise(ErrUnexpectedEOF, "unexpected end of input in list")
			}
		}
		if f.state == listDotEnd {
			r.skip()
			if c != f.term {
				r.raise(ErrMalformedDottedList, "expected %q after dotted tail, found %q", f.term, c)
			}
			elem, haveElem = r.closeFrame(&stack)
			if !haveElem {
				return elem
			}
			continue
		}
		if c == f.term && f.state == listElems {
			r.skip()
			elem, haveElem = r.closeFrame(&stack)
			if !haveElem {
				return elem
			}
			continue
		}
		r.skip()
		v, term2, act := r.dispatch(c)
		switch act {
		case actValue:
			elem = v
			haveElem = true
		case actList:
			stack = append(stack, listFrame{term: term2, head: r.model.Nil()})
		case actVector:
			stack = append(stack, listFrame{term: term2, vector: true, head: r.model.Nil()})
		}
	}
}

// closeFrame pops the top frame and finishes its value.  The second return
// is true when the value belongs to an enclosing frame rather than the
// caller.
func (r *Reader) closeFrame(stack *[]listFrame) (Value, bool) {
	f := (*stack)[len(*stack)-1]
	*stack = (*stack)[:len(*stack)-1]
	v := f.head
	if f.vector {
		v = r.model.Vector(v)
	}
	return v, len(*stack) > 0
}

// readString accumulates a string body.  The opening quote has been
// consumed.  A backslash copies the following byte verbatim, backslash
// included; escape interpretation is left to the model's StringProcessor.
func (r *Reader) readString() Value {
	var buf []byte
	for {
		c, ok := r.nextChar()
		if !ok {
			r.raise(ErrUnexpectedEOF, "unexpected end of input in string")
		}
		if c == '"' {
			break
		}
		buf = append(buf, c)
		if c == '\\' {
			c, ok = r.nextChar()
			if !ok {
				r.raise(ErrUnexpectedEOF, "unexpected end of input in string")
			}
			buf = append(buf, c)
		}
	}
	v := r.model.String(buf)
	if m, ok := r.model.(StringProcessor); ok {
		v = m.ProcessString(v)
	}
	return v
}

// readCharLiteral reads the name following '#\'.
func (r *Reader) readCharLiteral() Value {
	c, ok := r.nextChar()
	if !ok {
		r.raise(ErrUnexpectedEOF, "unexpected end of input after '#\\'")
	}
	name := []byte{c}
	if isAlpha(c) {
		for {
			p, ok := r.peekChar()
			if !ok || !isAlpha(p) || r.terminating(p) {
				break
			}
			r.skip()
			name = append(name, p)
		}
	}
	switch {
	case strings.EqualFold(string(name), "space"):
		c = ' '
	case strings.EqualFold(string(name), "newline"):
		c = '\n'
	case len(name) > 1:
		r.raise(ErrUnknownCharName, "unknown character name %q", "#\\"+string(name))
	}
	return r.model.Character(c)
}

// readToken accumulates a number-or-symbol token starting with the
// already-consumed lead byte.  When radixForced is true the lead byte is a
// radix indicator: it stays in the token text but is excluded from the
// numeric substring, and a parse failure is an error instead of a symbol.
func (r *Reader) readToken(lead byte, radix int, radixForced bool) Value {
	buf := []byte{lead}
	for {
		c, ok := r.peekChar()
		if !ok || r.terminating(c) {
			break
		}
		r.skip()
		buf = append(buf, c)
	}
	text := string(buf)
	numText := text
	if radixForced {
		numText = text[1:]
	}
	if n, ok := r.model.Number(numText, radix); ok {
		return n
	}
	if radixForced {
		r.raise(ErrInvalidNumber, "invalid number literal %q", numText)
	}
	sym := r.model.Symbol(text)
	if r.haveNilSym && r.model.Eq(sym, r.nilSym) {
		return r.model.Nil()
	}
	return sym
}

// skipSpace consumes whitespace and line comments.  It returns the first
// significant character without consuming it, or false at end of input.
func (r *Reader) skipSpace() (byte, bool) {
	for {
		c, ok := r.peekChar()
		if !ok {
			return 0, false
		}
		if isSpace(c) {
			r.skip()
			continue
		}
		if c == ';' {
			r.skip()
			r.skipLine()
			continue
		}
		return c, true
	}
}

// skipLine consumes up to, but not including, the next newline.
func (r *Reader) skipLine() {
	for {
		c, ok := r.peekChar()
		if !ok || c == '\n' {
			return
		}
		r.skip()
	}
}

// skipBlockComment consumes a balanced #| ... |# comment.  The opening '#|'
// has been consumed.
func (r *Reader) skipBlockComment() {
	level := 1
	for level > 0 {
		c, ok := r.nextChar()
		if !ok {
			r.raise(ErrUnexpectedEOF, "unterminated block comment")
		}
		switch c {
		case '|':
			if p, ok := r.peekChar(); ok && p == '#' {
				r.skip()
				level--
			}
		case '#':
			if p, ok := r.peekChar(); ok && p == '|' {
				r.skip()
				level++
			}
		}
	}
}

func (r *Reader) nextChar() (byte, bool) {
	return r.src.NextChar()
}

func (r *Reader) peekChar() (byte, bool) {
	return r.src.PeekChar()
}

// skip consumes a character already seen through peekChar.
func (r *Reader) skip() {
	r.src.NextChar()
}

// terminating reports whether c ends an unterminated token run.
func (r *Reader) terminating(c byte) bool {
	switch c {
	case ';', '(', ')', '#':
		return true
	case '[', ']':
		return r.cfg.BracketLists
	}
	return isSpace(c)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isAlpha(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isTokenStart(c byte) bool {
	return isDigit(c) || isAlpha(c) || c >= 0x80 || strings.IndexByte(symbolChars, c) >= 0
}
