package packer

import "sort"

// freeSpaceIndex tracks the free rectangles of a single bin, indexed by
// area then by width so that "find a rect at least w x h" can skip buckets
// that are provably too small without a linear scan over every free rect.
//
// Both levels are ordered ascending. Buckets are pruned empty as soon as
// their last rect is removed, and outer entries are pruned once their last
// width bucket goes empty -- no key ever maps to an empty collection.
type freeSpaceIndex struct {
	areas  []int // ascending, unique
	widths map[int][]int // area -> ascending, unique widths
	rects  map[int]map[int][]Rect // area -> width -> rects, insertion order
}

// newFreeSpaceIndex creates an index containing the single free rect
// covering the whole bin.
func newFreeSpaceIndex(w, h int) *freeSpaceIndex {
	f := &freeSpaceIndex{
		widths: make(map[int][]int),
		rects:  make(map[int]map[int][]Rect),
	}
	f.insert(Rect{X: 0, Y: 0, W: w, H: h})
	return f
}

// find returns some indexed rect with W >= w and H >= h, enumerating outer
// keys in ascending area starting from area >= w*h and, within each
// bucket, inner keys in ascending width starting from width >= w. The
// first non-empty bucket whose (area, width) pair additionally satisfies
// area >= h*width yields its first rect.
//
// If that first rect doesn't actually satisfy the height constraint, find
// moves on to the next bucket rather than scanning deeper into this one --
// a deliberate simplification carried over from the reference packer this
// index is modeled on; Insert never produces heterogeneous-height buckets
// in practice, so the distinction is unobservable.
func (f *freeSpaceIndex) find(w, h int) (Rect, bool) {
	needArea := w * h

	areaStart := sort.SearchInts(f.areas, needArea)
	for _, area := range f.areas[areaStart:] {
		ws := f.widths[area]
		widthStart := sort.SearchInts(ws, w)
		for _, width := range ws[widthStart:] {
			if area < h*width {
				continue
			}

			bucket := f.rects[area][width]
			if len(bucket) == 0 {
				continue
			}

			r := bucket[0]
			if r.W >= w && r.H >= h {
				return r, true
			}
		}
	}

	return Rect{}, false
}

// insert adds r to the index unless an existing rect already contains it.
// Only rects with area >= r.Area() and width >= r.W are checked, since no
// smaller rect can contain r.
func (f *freeSpaceIndex) insert(r Rect) {
	areaStart := sort.SearchInts(f.areas, r.Area())
	for _, area := range f.areas[areaStart:] {
		ws := f.widths[area]
		widthStart := sort.SearchInts(ws, r.W)
		for _, width := range ws[widthStart:] {
			for _, existing := range f.rects[area][width] {
				if existing.Contains(r) {
					return
				}
			}
		}
	}

	f.append(r)
}

// append unconditionally adds r to its (area, width) bucket, creating
// outer/inner entries as needed.
func (f *freeSpaceIndex) append(r Rect) {
	area, width := r.Area(), r.W

	if _, ok := f.rects[area]; !ok {
		f.areas = insertSortedUnique(f.areas, area)
		f.widths[area] = nil
		f.rects[area] = make(map[int][]Rect)
	}

	if _, ok := f.rects[area][width]; !ok {
		f.widths[area] = insertSortedUnique(f.widths[area], width)
	}

	f.rects[area][width] = append(f.rects[area][width], r)
}

// removeIntersecting removes every indexed rect that intersects p,
// collects the strips of Subtract(p) for each, and re-inserts them sorted
// by area descending so that dominance pruning applies across the freshly
// generated strips in largest-first order.
func (f *freeSpaceIndex) removeIntersecting(p Rect) {
	var pending []Rect

	for _, area := range append([]int(nil), f.areas...) {
		for _, width := range append([]int(nil), f.widths[area]...) {
			bucket := f.rects[area][width]
			kept := bucket[:0:0]

			for _, r := range bucket {
				if r.Intersects(p) {
					pending = append(pending, r.Subtract(p)...)
					continue
				}
				kept = append(kept, r)
			}

			if len(kept) == 0 {
				f.removeBucket(area, width)
				continue
			}

			f.rects[area][width] = kept
		}
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].Area() > pending[j].Area()
	})

	for _, r := range pending {
		f.insert(r)
	}
}

// removeBucket drops the (area, width) bucket entirely and prunes the
// outer area entry once it no longer has any widths left.
func (f *freeSpaceIndex) removeBucket(area, width int) {
	delete(f.rects[area], width)
	f.widths[area] = removeSorted(f.widths[area], width)

	if len(f.widths[area]) == 0 {
		delete(f.widths, area)
		delete(f.rects, area)
		f.areas = removeSorted(f.areas, area)
	}
}

func insertSortedUnique(s []int, v int) []int {
	i := sort.SearchInts(s, v)
	if i < len(s) && s[i] == v {
		return s
	}

	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func removeSorted(s []int, v int) []int {
	i := sort.SearchInts(s, v)
	if i >= len(s) || s[i] != v {
		return s
	}

	return append(s[:i], s[i+1:]...)
}
