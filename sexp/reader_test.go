package sexp_test

import (
	"strings"
	"testing"

	"github.com/luthersystems/sexpread/lisp"
	"github.com/luthersystems/sexpread/sexp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReader(src string, cfg *sexp.Config) (*lisp.Model, *sexp.Reader) {
	m := lisp.NewModel()
	r := sexp.New(m, sexp.NewScanner("test", strings.NewReader(src)), cfg)
	return m, r
}

// readStrings reads all datums in src and renders each with the lisp
// model's printer.
func readStrings(t *testing.T, src string, cfg *sexp.Config) []string {
	t.Helper()
	_, r := newReader(src, cfg)
	vs, err := r.ReadAll()
	require.NoError(t, err)
	ss := make([]string, len(vs))
	for i := range vs {
		ss[i] = vs[i].(*lisp.LVal).String()
	}
	return ss
}

func TestRead(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"symbol", "foo", []string{"foo"}},
		{"symbol punctuation", "<*special*>!?", []string{"<*special*>!?"}},
		{"integer", "123", []string{"123"}},
		{"negative integer", "-42", []string{"-42"}},
		{"bare sign is a symbol", "+ -", []string{"+", "-"}},
		{"float text is a symbol", "1234.00", []string{"1234.00"}},
		{"list", "(a b c)", []string{"(a b c)"}},
		{"empty list", "()", []string{"()"}},
		{"nested list", "(a (b c) d)", []string{"(a (b c) d)"}},
		{"dotted pair", "(a . b)", []string{"(a . b)"}},
		{"dotted chain is a list", "(1 . (2 . (3 . ())))", []string{"(1 2 3)"}},
		{"dotted tail list", "(a b . c)", []string{"(a b . c)"}},
		{"quote", "'x", []string{"(quote x)"}},
		{"quasiquote", "`x", []string{"(quasiquote x)"}},
		{"unquote", ",x", []string{"(unquote x)"}},
		{"unquote-splicing", ",@x", []string{"(unquote-splicing x)"}},
		{"quoted list", "'(a b)", []string{"(quote (a b))"}},
		{"string", `"hello"`, []string{`"hello"`}},
		{"empty string", `""`, []string{`""`}},
		{"string escapes", `"a\"b\\c"`, []string{`"a\"b\\c"`}},
		{"boolean true", "#t #T", []string{"#t", "#t"}},
		{"boolean false", "#f #F", []string{"#f", "#f"}},
		{"unspecified", "#u", []string{"#u"}},
		{"logical eof", "##", []string{"#<end-of-file>"}},
		{"character", `#\a`, []string{`#\a`}},
		{"character space", `#\space`, []string{`#\space`}},
		{"character newline", `#\newline`, []string{`#\newline`}},
		{"character name case folds", `#\SPACE`, []string{`#\space`}},
		{"character punctuation", `#\(`, []string{`#\(`}},
		{"vector", "#(1 2 3)", []string{"#(1 2 3)"}},
		{"empty vector", "#()", []string{"#()"}},
		{"nested vector", "#(1 #(2) 3)", []string{"#(1 #(2) 3)"}},
		{"binary", "#b101", []string{"5"}},
		{"octal", "#o17", []string{"15"}},
		{"decimal", "#d42", []string{"42"}},
		{"hex", "#x1F", []string{"31"}},
		{"hex lower", "#xff", []string{"255"}},
		{"radix capital", "#X1f", []string{"31"}},
		{"exact prefix", "#ex10", []string{"16"}},
		{"inexact prefix", "#ib101", []string{"5"}},
		{"chained exactness prefixes", "#eix10", []string{"16"}},
		{"line comment", "; comment\n42", []string{"42"}},
		{"comment then comment", "; one\n; two\n7", []string{"7"}},
		{"block comment", "#| a #| b |# c |# 7", []string{"7"}},
		{"shebang", "#!/usr/bin/env prog\n9", []string{"9"}},
		{"datum comment", "#;(a b) c", []string{"c"}},
		{"datum comment in list", "(a #;b c)", []string{"(a c)"}},
		{"multiple datums", "1 2 3", []string{"1", "2", "3"}},
		{"utf-8 passthrough", "λx (λx)", []string{"λx", "(λx)"}},
		{"no space between datums", "(a)(b)", []string{"(a)", "(b)"}},
		{"hash terminates token", "abc#t", []string{"abc", "#t"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, readStrings(t, test.src, nil))
		})
	}
}

func TestReadBracketLists(t *testing.T) {
	cfg := &sexp.Config{BracketLists: true}
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"bracket list", "[a b]", []string{"(a b)"}},
		{"bracket dotted", "[a . b]", []string{"(a . b)"}},
		{"bracket terminates token", "a[b]", []string{"a", "(b)"}},
		{"bracket vector", "#(1 [2] 3)", []string{"#(1 (2) 3)"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, readStrings(t, test.src, cfg))
		})
	}

	// Without the capability a bracket is an ordinary token byte.
	assert.Equal(t, []string{"a[b]"}, readStrings(t, "a[b]", nil))
}

func TestReadNilSymbol(t *testing.T) {
	cfg := &sexp.Config{NilSymbol: "nil"}
	assert.Equal(t, []string{"()"}, readStrings(t, "nil", cfg))
	assert.Equal(t, []string{"(a)"}, readStrings(t, "(a . nil)", cfg))
	// Only the designated alias is special.
	assert.Equal(t, []string{"nil"}, readStrings(t, "nil", nil))
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code sexp.ErrorCode
	}{
		{"unterminated list", "(1 2", sexp.ErrUnexpectedEOF},
		{"unterminated nested list", "(1 (2)", sexp.ErrUnexpectedEOF},
		{"unterminated string", `"abc`, sexp.ErrUnexpectedEOF},
		{"string escape at eof", `"abc\`, sexp.ErrUnexpectedEOF},
		{"lone hash", "#", sexp.ErrUnexpectedEOF},
		{"char literal at eof", `#\`, sexp.ErrUnexpectedEOF},
		{"unterminated block comment", "#| x", sexp.ErrUnexpectedEOF},
		{"eof after dotted tail", "(1 . 2", sexp.ErrUnexpectedEOF},
		{"dot without element", "(. 1)", sexp.ErrMalformedDottedList},
		{"extra datum after dot", "(1 . 2 3)", sexp.ErrMalformedDottedList},
		{"bad hex", "#xZZ", sexp.ErrInvalidNumber},
		{"empty radix number", "#x()", sexp.ErrInvalidNumber},
		{"unknown char name", `#\foo`, sexp.ErrUnknownCharName},
		{"unsupported hash char", "#z", sexp.ErrUnsupportedHashChar},
		{"exactness prefix before bare digits", "#i10", sexp.ErrUnsupportedHashChar},
		{"stray close paren", ")", sexp.ErrUnexpectedChar},
		{"missing dotted tail", "(1 . )", sexp.ErrUnexpectedChar},
		{"stray brace", "{", sexp.ErrUnexpectedChar},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, r := newReader(test.src, nil)
			_, err := r.ReadAll()
			require.Error(t, err)
			assert.True(t, sexp.IsSyntaxError(err, test.code),
				"expected %v error (got %v)", test.code, err)
		})
	}
}

func TestReadErrorLocation(t *testing.T) {
	_, r := newReader("(a\nb", nil)
	_, err := r.ReadAll()
	require.Error(t, err)
	serr := err.(*sexp.SyntaxError)
	require.NotNil(t, serr.Loc)
	assert.Equal(t, "test", serr.Loc.File)
	assert.Equal(t, 2, serr.Loc.Line)
}

func TestReadEOS(t *testing.T) {
	m, r := newReader("  ; only a comment", nil)
	eos := m.EOS()
	for i := 0; i < 3; i++ {
		v, err := r.Read()
		require.NoError(t, err)
		assert.True(t, m.Eq(v, eos), "read %d did not return end-of-stream", i)
	}
}

func TestReadInterning(t *testing.T) {
	m, r := newReader("foo foo (foo)", nil)
	a, err := r.Read()
	require.NoError(t, err)
	b, err := r.Read()
	require.NoError(t, err)
	lis, err := r.Read()
	require.NoError(t, err)
	assert.True(t, m.Eq(a, b))
	assert.True(t, m.Eq(a, m.Symbol("foo")))
	assert.True(t, m.Eq(a, lis.(*lisp.LVal).CAR))
}

func TestReadSingletons(t *testing.T) {
	m, r := newReader("#t #t #f #f", nil)
	vs, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, vs, 4)
	assert.True(t, m.Eq(vs[0], vs[1]))
	assert.True(t, m.Eq(vs[2], vs[3]))
	assert.False(t, m.Eq(vs[0], vs[2]))
}

func TestReadDottedPairStructure(t *testing.T) {
	m, r := newReader("(a . b)", nil)
	v, err := r.Read()
	require.NoError(t, err)
	pair := v.(*lisp.LVal)
	require.Equal(t, lisp.LCons, pair.Type)
	assert.True(t, m.Eq(pair.CAR, m.Symbol("a")))
	assert.True(t, m.Eq(pair.CDR, m.Symbol("b")))
}

func TestReadQuoteStructure(t *testing.T) {
	m, r := newReader("'x", nil)
	v, err := r.Read()
	require.NoError(t, err)
	q := v.(*lisp.LVal)
	require.Equal(t, lisp.LCons, q.Type)
	assert.True(t, m.Eq(q.CAR, m.Symbol("quote")))
	require.Equal(t, lisp.LCons, q.CDR.Type)
	assert.True(t, m.Eq(q.CDR.CAR, m.Symbol("x")))
	assert.True(t, m.Eq(q.CDR.CDR, m.Nil()))
}

func TestReadDeepNesting(t *testing.T) {
	// List accumulation runs on a heap stack, so nesting depth far beyond
	// any reasonable goroutine stack must still read cleanly.
	const depth = 200000
	src := strings.Repeat("(", depth) + "x" + strings.Repeat(")", depth)
	m, r := newReader(src, nil)
	v, err := r.Read()
	require.NoError(t, err)
	lv := v.(*lisp.LVal)
	for i := 0; i < depth-1; i++ {
		if lv.Type != lisp.LCons {
			t.Fatalf("depth %d: not a pair: %v", i, lv.Type)
		}
		lv = lv.CAR
	}
	require.Equal(t, lisp.LCons, lv.Type)
	assert.True(t, m.Eq(lv.CAR, m.Symbol("x")))
}

func TestReadMacroChar(t *testing.T) {
	cfg := &sexp.Config{
		MacroChar: func(c byte) (sexp.Value, bool) {
			if c == 'z' {
				return lisp.Int(99), true
			}
			return nil, false
		},
	}
	assert.Equal(t, []string{"99"}, readStrings(t, "#z", cfg))
	// An unmatched dispatch character is skipped and reading continues.
	assert.Equal(t, []string{"5"}, readStrings(t, "#q 5", cfg))
}

// minimalModel exposes only the required Model operations, hiding the lisp
// model's optional capabilities.
type minimalModel struct {
	m *lisp.Model
}

func (m minimalModel) Cons(car, cdr sexp.Value) sexp.Value  { return m.m.Cons(car, cdr) }
func (m minimalModel) SetCDR(pair, cdr sexp.Value)          { m.m.SetCDR(pair, cdr) }
func (m minimalModel) String(text []byte) sexp.Value        { return m.m.String(text) }
func (m minimalModel) Symbol(name string) sexp.Value        { return m.m.Symbol(name) }
func (m minimalModel) Vector(list sexp.Value) sexp.Value    { return m.m.Vector(list) }
func (m minimalModel) Character(c byte) sexp.Value          { return m.m.Character(c) }
func (m minimalModel) Eq(a, b sexp.Value) bool              { return m.m.Eq(a, b) }
func (m minimalModel) Nil() sexp.Value                      { return m.m.Nil() }
func (m minimalModel) False() sexp.Value                    { return m.m.False() }
func (m minimalModel) EOS() sexp.Value                      { return m.m.EOS() }
func (m minimalModel) Number(text string, radix int) (sexp.Value, bool) {
	return m.m.Number(text, radix)
}

func TestReadMinimalModel(t *testing.T) {
	for _, src := range []string{"#t", "#u", "##"} {
		t.Run(src, func(t *testing.T) {
			m := minimalModel{lisp.NewModel()}
			r := sexp.New(m, sexp.NewScanner("test", strings.NewReader(src)), nil)
			_, err := r.Read()
			require.Error(t, err)
			assert.True(t, sexp.IsSyntaxError(err, sexp.ErrUnsupportedHashChar), "got %v", err)
		})
	}

	// #f requires no capability.
	m := minimalModel{lisp.NewModel()}
	r := sexp.New(m, sexp.NewScanner("test", strings.NewReader("#f")), nil)
	v, err := r.Read()
	require.NoError(t, err)
	assert.True(t, m.Eq(v, m.False()))

	// Without a StringProcessor the raw bytes pass through unmodified.
	m = minimalModel{lisp.NewModel()}
	r = sexp.New(m, sexp.NewScanner("test", strings.NewReader(`"a\"b"`)), nil)
	v, err = r.Read()
	require.NoError(t, err)
	assert.Equal(t, `a\"b`, v.(*lisp.LVal).Str)
}
