package slicer

// interner assigns dense uint32 ids to strings so sets of folder or
// metadata ids can live in roaring bitmaps instead of hash maps.
type interner struct {
	ids map[string]uint32
	rev []string
}

func newInterner(sizeHint int) *interner {
	return &interner{
		ids: make(map[string]uint32, sizeHint),
		rev: make([]string, 0, sizeHint),
	}
}

func (in *interner) intern(s string) uint32 {
	if id, ok := in.ids[s]; ok {
		return id
	}
	id := uint32(len(in.rev))
	in.ids[s] = id
	in.rev = append(in.rev, s)
	return id
}

func (in *interner) lookup(id uint32) string {
	return in.rev[id]
}
