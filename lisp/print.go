package lisp

import (
	"fmt"
	"strconv"
	"strings"
)

func (v *LVal) String() string {
	switch v.Type {
	case LNil:
		return "()"
	case LTrue:
		return "#t"
	case LFalse:
		return "#f"
	case LUnspecified:
		return "#u"
	case LEOS:
		return "#<end-of-stream>"
	case LEOF:
		return "#<end-of-file>"
	case LInt:
		return strconv.Itoa(v.Num)
	case LChar:
		return charString(byte(v.Num))
	case LSymbol:
		return v.Str
	case LString:
		return strconv.Quote(v.Str)
	case LCons:
		var buf strings.Builder
		buf.WriteByte('(')
		v.writeInner(&buf)
		buf.WriteByte(')')
		return buf.String()
	case LVector:
		var buf strings.Builder
		buf.WriteString("#(")
		for i, cell := range v.Cells {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(cell.String())
		}
		buf.WriteByte(')')
		return buf.String()
	default:
		return fmt.Sprintf("%#v", v)
	}
}

// writeInner renders the elements of a cons chain, ending with a dotted
// tail when the chain is improper.
func (v *LVal) writeInner(buf *strings.Builder) {
	for {
		buf.WriteString(v.CAR.String())
		switch v.CDR.Type {
		case LNil:
			return
		case LCons:
			buf.WriteByte(' ')
			v = v.CDR
		default:
			buf.WriteString(" . ")
			buf.WriteString(v.CDR.String())
			return
		}
	}
}

func charString(c byte) string {
	switch c {
	case ' ':
		return "#\\space"
	case '\n':
		return "#\\newline"
	}
	return fmt.Sprintf("#\\%c", c)
}
