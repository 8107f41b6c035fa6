package symbol

import "sync"

// DefaultGlobalTable is the default symbol table.  It should be used by
// processes to initialize symbols during package init to create fixed
// handles to symbols.
var DefaultGlobalTable Table = NewTable()

// Intern uses DefaultGlobalTable to intern s and returns its ID.
func Intern(s string) ID {
	return DefaultGlobalTable.Intern(s)
}

// Table maps symbol IDs to strings.
type Table interface {
	// Len returns the number of symbols interned in the table.
	Len() int
	// Intern inserts the given symbol into the table if it is not present and
	// returns its ID.
	Intern(symbol string) ID
	// Peek retrieves the ID of a symbol without automatically interning it.
	// Peek returns true iff the symbol has been interned into the table.
	Peek(symbol string) (ID, bool)
	// Symbol returns the symbol associated with id.
	Symbol(id ID) (string, bool)
}

// BulkInterner is a table that can insert multiple symbols.
type BulkInterner interface {
	Table
	// InternAll performs a bulk Intern operation and returns a list of IDs
	// that matches the given symbols.
	InternAll(...string) []ID
}

// InternAll interns every symbol in symbols, using a single table lock when
// t supports bulk insertion.
func InternAll(t Table, symbols ...string) []ID {
	switch t := t.(type) {
	case BulkInterner:
		return t.InternAll(symbols...)
	default:
		ids := make([]ID, 0, len(symbols))
		for _, s := range symbols {
			ids = append(ids, t.Intern(s))
		}
		return ids
	}
}

// NewTable initializes and returns an empty Table.
func NewTable() Table {
	return newTable()
}

type table struct {
	sync sync.RWMutex
	g    IDGen
	i    map[ID]string
	s    map[string]ID
}

var (
	_ Table        = (*table)(nil)
	_ BulkInterner = (*table)(nil)
)

func newTable() *table {
	return &table{
		g: NewIDGen(0),
		i: make(map[ID]string),
		s: make(map[string]ID),
	}
}

// Len implements the Table interface
func (t *table) Len() int {
	t.sync.RLock()
	defer t.sync.RUnlock()
	return len(t.s)
}

// Intern implements the Table interface
func (t *table) Intern(s string) ID {
	t.sync.Lock()
	defer t.sync.Unlock()
	return t.intern(s)
}

// InternAll implements the BulkInterner interface
func (t *table) InternAll(s ...string) []ID {
	ids := make([]ID, 0, len(s))
	t.sync.Lock()
	defer t.sync.Unlock()
	for _, s := range s {
		ids = append(ids, t.intern(s))
	}
	return ids
}

func (t *table) intern(s string) ID {
	if id, ok := t.s[s]; ok {
		return id
	}
	id := t.g.NewID()
	t.s[s] = id
	t.i[id] = s
	return id
}

// Peek implements the Table interface
func (t *table) Peek(s string) (ID, bool) {
	t.sync.RLock()
	defer t.sync.RUnlock()
	id, ok := t.s[s]
	return id, ok
}

// Symbol implements the Table interface
func (t *table) Symbol(id ID) (string, bool) {
	t.sync.RLock()
	defer t.sync.RUnlock()
	s, ok := t.i[id]
	return s, ok
}
