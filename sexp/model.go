package sexp

// Value is an opaque host value.  The reader never inspects a Value except
// by passing it back to the Model, so hosts may use any representation.
type Value interface{}

// Source supplies the reader with input one byte at a time.  Both methods
// report false at end of input; once the input is exhausted they must keep
// reporting false on every subsequent call.
type Source interface {
	// NextChar consumes and returns the next input byte.
	NextChar() (byte, bool)
	// PeekChar returns the next input byte without consuming it.
	PeekChar() (byte, bool)
}

// Locator is an optional Source capability.  A Source that can report its
// position lets the reader attach locations to syntax errors.
type Locator interface {
	Loc() *Location
}

// Model supplies the reader with value constructors and the small set of
// sentinels the grammar needs.  All constructed values are owned by the
// host as soon as a constructor returns.
//
// A Model implementation must guarantee that Symbol is interning: two calls
// with the same name return values for which Eq reports true.  The reader
// relies on this to recognize the dot symbol and to synthesize the
// quote-family forms.
type Model interface {
	// Cons allocates a new pair.  The reader may later mutate the pair's
	// tail through SetCDR while accumulating a list.
	Cons(car, cdr Value) Value
	// SetCDR replaces the tail of a pair previously returned by Cons.
	SetCDR(pair, cdr Value)
	// String constructs a string value.  The reader hands over ownership of
	// text and never touches the slice again.
	String(text []byte) Value
	// Symbol returns the canonical value for the named symbol.
	Symbol(name string) Value
	// Number parses text in the given radix (2, 8, 10 or 16).  Number
	// reports false if text is not a number; it must not fail any other
	// way.
	Number(text string, radix int) (Value, bool)
	// Vector converts a proper list into a vector value.
	Vector(list Value) Value
	// Character constructs a character value.
	Character(c byte) Value
	// Eq reports whether a and b are the same value.  The reader only
	// compares values against sentinels and symbols it obtained itself.
	Eq(a, b Value) bool

	// Nil returns the empty list sentinel.
	Nil() Value
	// False returns the boolean false sentinel, read from #f.
	False() Value
	// EOS returns the end-of-stream sentinel, distinct from every value
	// constructible from input text.
	EOS() Value
}

// TrueModel is an optional Model capability enabling the #t literal.  A
// model without it treats #t like any other unknown hash dispatch.
type TrueModel interface {
	Model
	True() Value
}

// UnspecifiedModel is an optional Model capability enabling the #u literal.
type UnspecifiedModel interface {
	Model
	Unspecified() Value
}

// EOFModel is an optional Model capability enabling the ## logical
// end-of-file literal.
type EOFModel interface {
	Model
	EOF() Value
}

// StringProcessor is an optional Model capability.  When present, every
// string produced by Model.String is passed through ProcessString before
// the reader returns it, typically to interpret backslash escapes.  Absent
// the capability string bytes pass through unchanged, backslashes included.
type StringProcessor interface {
	Model
	ProcessString(s Value) Value
}

// Config adjusts optional reader behavior.  The zero value enables plain
// R5RS-style syntax with no extensions.
type Config struct {
	// BracketLists enables [...] as an alternate list syntax.  Brackets
	// also become token terminators.
	BracketLists bool

	// NilSymbol names a reserved symbol read as the empty list instead of
	// as a symbol.  Empty disables the alias.
	NilSymbol string

	// MacroChar is consulted for '#' dispatch characters the reader does
	// not recognize.  A false return means no match and the reader skips
	// the sequence and reads the next datum.  When MacroChar is nil an
	// unrecognized dispatch character is a syntax error.
	MacroChar func(c byte) (Value, bool)
}
