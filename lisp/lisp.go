package lisp

import "github.com/luthersystems/sexpread/symbol"

// LType is the type of an LVal
type LType uint

// Possible LType values
const (
	LInvalid LType = iota
	LNil
	LTrue
	LFalse
	LUnspecified
	LEOS
	LEOF
	LInt
	LChar
	LSymbol
	LString
	LCons
	LVector
)

var ltypeStrings = []string{
	LInvalid:     "INVALID",
	LNil:         "nil",
	LTrue:        "true",
	LFalse:       "false",
	LUnspecified: "unspecified",
	LEOS:         "end-of-stream",
	LEOF:         "end-of-file",
	LInt:         "int",
	LChar:        "char",
	LSymbol:      "symbol",
	LString:      "string",
	LCons:        "pair",
	LVector:      "vector",
}

func (t LType) String() string {
	if int(t) >= len(ltypeStrings) {
		return ltypeStrings[LInvalid]
	}
	return ltypeStrings[t]
}

// LVal is a lisp value.  Symbols and the singleton sentinels are canonical:
// they compare equal by pointer identity.
type LVal struct {
	Type LType
	Num  int       // LInt value, or LChar code
	Str  string    // LString bytes, or LSymbol spelling
	Sym  symbol.ID // canonical id of an LSymbol

	// Pair fields.  CDR is mutated in place while the reader accumulates a
	// list tail.
	CAR *LVal
	CDR *LVal

	Cells []*LVal // LVector elements
}

// Int returns an LVal representing the number x.
func Int(x int) *LVal {
	return &LVal{
		Type: LInt,
		Num:  x,
	}
}

// Char returns an LVal representing the character c.
func Char(c byte) *LVal {
	return &LVal{
		Type: LChar,
		Num:  int(c),
	}
}

// String returns an LVal representing the string s.
func String(s string) *LVal {
	return &LVal{
		Type: LString,
		Str:  s,
	}
}

// Cons returns a new pair of car and cdr.
func Cons(car, cdr *LVal) *LVal {
	return &LVal{
		Type: LCons,
		CAR:  car,
		CDR:  cdr,
	}
}

// Vector returns an LVal holding the given elements.
func Vector(cells []*LVal) *LVal {
	return &LVal{
		Type:  LVector,
		Cells: cells,
	}
}

// IsList reports whether v is a proper list: a chain of pairs whose final
// cdr is nil.
func (v *LVal) IsList() bool {
	for v.Type == LCons {
		v = v.CDR
	}
	return v.Type == LNil
}

// Slice collects the elements of the list starting at v.  Slice reports
// false if the chain ends in a non-nil tail; the tail is not included.
func (v *LVal) Slice() ([]*LVal, bool) {
	var s []*LVal
	for v.Type == LCons {
		s = append(s, v.CAR)
		v = v.CDR
	}
	return s, v.Type == LNil
}
