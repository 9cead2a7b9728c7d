package world

// Handle identifies a node in the arena. The generation counter detects
// references that outlive the node they pointed at: a freed slot bumps its
// generation, so stale handles fail lookup instead of addressing whatever
// node reused the slot.
type Handle struct {
	Index      uint32
	Generation uint32
}

// None is the invalid handle. Generation 0 is never assigned to a live node.
var None = Handle{}

func (h Handle) IsValid() bool { return h.Generation != 0 }

// Less orders handles by index, then generation. Used wherever map keys
// must be iterated deterministically.
func (h Handle) Less(o Handle) bool {
	if h.Index != o.Index {
		return h.Index < o.Index
	}
	return h.Generation < o.Generation
}

type slot struct {
	node Node
	gen  uint32
	live bool
}

// arena stores nodes in index-addressed slots with a free list. Iteration
// over live slots is always in ascending index order.
type arena struct {
	slots []slot
	free  []uint32
	count int
}

func (a *arena) alloc(n Node) Handle {
	a.count++
	if len(a.free) > 0 {
		idx := a.free[len(a.free)-1]
		a.free = a.free[:len(a.free)-1]
		s := &a.slots[idx]
		s.node = n
		s.live = true
		return Handle{Index: idx, Generation: s.gen}
	}
	a.slots = append(a.slots, slot{node: n, gen: 1, live: true})
	return Handle{Index: uint32(len(a.slots) - 1), Generation: 1}
}

func (a *arena) get(h Handle) *Node {
	if int(h.Index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[h.Index]
	if !s.live || s.gen != h.Generation {
		return nil
	}
	return &s.node
}

func (a *arena) release(h Handle) bool {
	if a.get(h) == nil {
		return false
	}
	s := &a.slots[h.Index]
	s.live = false
	s.gen++
	s.node = Node{}
	a.free = append(a.free, h.Index)
	a.count--
	return true
}

func (a *arena) handles() []Handle {
	out := make([]Handle, 0, a.count)
	for i := range a.slots {
		if a.slots[i].live {
			out = append(out, Handle{Index: uint32(i), Generation: a.slots[i].gen})
		}
	}
	return out
}
