package lisp

import (
	"io"
	"strconv"
	"strings"

	"github.com/luthersystems/sexpread/sexp"
	"github.com/luthersystems/sexpread/symbol"
)

// Model is the default sexp.Model implementation.  It supports every
// optional reader capability: distinct #t, #u and ## sentinels, and
// backslash escape interpretation for strings.
//
// Symbols and sentinels produced by one Model are pointer-identical across
// reads.  A Model is not safe for concurrent readers.
type Model struct {
	symtab symbol.Table
	syms   map[symbol.ID]*LVal

	nilv   *LVal
	truev  *LVal
	falsev *LVal
	unspec *LVal
	eos    *LVal
	eof    *LVal
}

var (
	_ sexp.Model            = (*Model)(nil)
	_ sexp.TrueModel        = (*Model)(nil)
	_ sexp.UnspecifiedModel = (*Model)(nil)
	_ sexp.EOFModel         = (*Model)(nil)
	_ sexp.StringProcessor  = (*Model)(nil)
)

// NewModel initializes and returns a new Model with an empty symbol table.
func NewModel() *Model {
	return &Model{
		symtab: symbol.NewTable(),
		syms:   make(map[symbol.ID]*LVal),
		nilv:   &LVal{Type: LNil},
		truev:  &LVal{Type: LTrue},
		falsev: &LVal{Type: LFalse},
		unspec: &LVal{Type: LUnspecified},
		eos:    &LVal{Type: LEOS},
		eof:    &LVal{Type: LEOF},
	}
}

// Table exposes the model's symbol table.
func (m *Model) Table() symbol.Table {
	return m.symtab
}

// SymbolVal returns the canonical LVal for the named symbol, interning it
// if necessary.
func (m *Model) SymbolVal(name string) *LVal {
	id := m.symtab.Intern(name)
	if v, ok := m.syms[id]; ok {
		return v
	}
	v := &LVal{Type: LSymbol, Str: name, Sym: id}
	m.syms[id] = v
	return v
}

// Cons implements the sexp.Model interface.
func (m *Model) Cons(car, cdr sexp.Value) sexp.Value {
	return Cons(car.(*LVal), cdr.(*LVal))
}

// SetCDR implements the sexp.Model interface.
func (m *Model) SetCDR(pair, cdr sexp.Value) {
	pair.(*LVal).CDR = cdr.(*LVal)
}

// String implements the sexp.Model interface.
func (m *Model) String(text []byte) sexp.Value {
	return String(string(text))
}

// Symbol implements the sexp.Model interface.
func (m *Model) Symbol(name string) sexp.Value {
	return m.SymbolVal(name)
}

// Number implements the sexp.Model interface.
func (m *Model) Number(text string, radix int) (sexp.Value, bool) {
	n, err := strconv.ParseInt(text, radix, 0)
	if err != nil {
		return nil, false
	}
	return Int(int(n)), true
}

// Vector implements the sexp.Model interface.  A non-nil tail of an
// improper list is included as the final element.
func (m *Model) Vector(list sexp.Value) sexp.Value {
	v := list.(*LVal)
	cells, proper := v.Slice()
	if !proper {
		for v.Type == LCons {
			v = v.CDR
		}
		cells = append(cells, v)
	}
	return Vector(cells)
}

// Character implements the sexp.Model interface.
func (m *Model) Character(c byte) sexp.Value {
	return Char(c)
}

// Eq implements the sexp.Model interface.
func (m *Model) Eq(a, b sexp.Value) bool {
	return a.(*LVal) == b.(*LVal)
}

// Nil implements the sexp.Model interface.
func (m *Model) Nil() sexp.Value {
	return m.nilv
}

// False implements the sexp.Model interface.
func (m *Model) False() sexp.Value {
	return m.falsev
}

// EOS implements the sexp.Model interface.
func (m *Model) EOS() sexp.Value {
	return m.eos
}

// True implements the sexp.TrueModel interface.
func (m *Model) True() sexp.Value {
	return m.truev
}

// Unspecified implements the sexp.UnspecifiedModel interface.
func (m *Model) Unspecified() sexp.Value {
	return m.unspec
}

// EOF implements the sexp.EOFModel interface.
func (m *Model) EOF() sexp.Value {
	return m.eof
}

// ProcessString implements the sexp.StringProcessor interface.  Each
// backslash is removed and the byte following it kept verbatim, so \" and
// \\ collapse to their literal characters.
func (m *Model) ProcessString(s sexp.Value) sexp.Value {
	v := s.(*LVal)
	if !strings.ContainsRune(v.Str, '\\') {
		return v
	}
	buf := make([]byte, 0, len(v.Str))
	for i := 0; i < len(v.Str); i++ {
		if v.Str[i] == '\\' && i+1 < len(v.Str) {
			i++
		}
		buf = append(buf, v.Str[i])
	}
	return String(string(buf))
}

// DefaultConfig is the reader configuration used by Parse and the REPL.
// It matches the extended surface syntax: bracketed lists and a reserved
// nil symbol.
var DefaultConfig = sexp.Config{
	BracketLists: true,
	NilSymbol:    "nil",
}

// NewReader returns a reader over r that constructs values through m.
func (m *Model) NewReader(name string, r io.Reader) *sexp.Reader {
	return sexp.New(m, sexp.NewScanner(name, r), &DefaultConfig)
}

// Parse reads every datum in r.  The returned values come from a fresh
// Model, so symbols are canonical within one Parse call.
func Parse(name string, r io.Reader) ([]*LVal, error) {
	m := NewModel()
	vs, err := m.NewReader(name, r).ReadAll()
	lvs := make([]*LVal, len(vs))
	for i := range vs {
		lvs[i] = vs[i].(*LVal)
	}
	return lvs, err
}

// ParseString reads every datum in src.
func ParseString(name, src string) ([]*LVal, error) {
	return Parse(name, strings.NewReader(src))
}
