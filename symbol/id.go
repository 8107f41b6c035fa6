package symbol

import "sync/atomic"

// An ID is the canonical handle of an interned symbol.  Two occurrences of
// the same spelling always map to the same ID.
type ID uint64

// MaxID is the largest ID that a Table will generate.
const MaxID = 0xFFFFFFFF

// IDGen is a function that generates unique IDs.
type IDGen interface {
	// NewID returns a unique ID.  It is not specified at the interface level
	// what IDs are returned, only that they are unique.
	NewID() ID
}

// NewIDGen returns a basic IDGen that will generate unique ids from min to
// MaxID.  The returned IDGen will not produce the value min.
func NewIDGen(min ID) IDGen {
	if min > MaxID {
		panic("invalid min ID")
	}
	return &gen{lastid: uint64(min)}
}

type gen struct {
	lastid uint64
}

var _ IDGen = (*gen)(nil)

func (g *gen) NewID() ID {
	id := atomic.AddUint64(&g.lastid, 1)
	if id > MaxID {
		panic("too many ids generated")
	}
	return ID(id)
}
