package packer

import "testing"

func TestFreeSpaceIndexNewSingleRect(t *testing.T) {
	t.Parallel()

	idx := newFreeSpaceIndex(100, 50)

	r, ok := idx.find(100, 50)
	if !ok || r != (Rect{X: 0, Y: 0, W: 100, H: 50}) {
		t.Fatalf("find(100,50) = %+v, %v", r, ok)
	}
}

func TestFreeSpaceIndexFindMissNoFit(t *testing.T) {
	t.Parallel()

	idx := newFreeSpaceIndex(10, 10)
	if _, ok := idx.find(20, 20); ok {
		t.Fatal("find(20,20) should miss in a 10x10 index")
	}
}

func TestFreeSpaceIndexInsertPrunesDominated(t *testing.T) {
	t.Parallel()

	idx := newFreeSpaceIndex(10, 10)

	// A smaller rect fully inside the existing 10x10 free rect must be
	// discarded on insert.
	idx.insert(Rect{X: 1, Y: 1, W: 2, H: 2})

	total := 0
	for _, byWidth := range idx.rects {
		for _, bucket := range byWidth {
			total += len(bucket)
		}
	}
	if total != 1 {
		t.Fatalf("index has %d rects after dominated insert, want 1", total)
	}
}

func TestFreeSpaceIndexInsertKeepsNonDominated(t *testing.T) {
	t.Parallel()

	idx := newFreeSpaceIndex(10, 10)
	idx.insert(Rect{X: 20, Y: 20, W: 5, H: 5})

	total := 0
	for _, byWidth := range idx.rects {
		for _, bucket := range byWidth {
			total += len(bucket)
		}
	}
	if total != 2 {
		t.Fatalf("index has %d rects after disjoint insert, want 2", total)
	}
}

func TestFreeSpaceIndexRemoveIntersectingSplitsAndPrunes(t *testing.T) {
	t.Parallel()

	idx := newFreeSpaceIndex(10, 10)
	idx.removeIntersecting(Rect{X: 3, Y: 3, W: 2, H: 2})

	// After carving a hole out of the middle of the bin, the remaining
	// free rects must cover the border and none may intersect the
	// placed rect.
	placed := Rect{X: 3, Y: 3, W: 2, H: 2}
	for area, byWidth := range idx.rects {
		for width, bucket := range byWidth {
			for _, r := range bucket {
				if r.Area() != area || r.W != width {
					t.Fatalf("rect %+v stored under wrong key (area=%d width=%d)", r, area, width)
				}
				if r.Intersects(placed) {
					t.Fatalf("rect %+v still intersects placed %+v after removeIntersecting", r, placed)
				}
				if r.X < 0 || r.Y < 0 || r.X+r.W > 10 || r.Y+r.H > 10 {
					t.Fatalf("rect %+v escapes bin bounds", r)
				}
			}
		}
	}

	if _, ok := idx.find(10, 10); ok {
		t.Fatal("find(10,10) should miss once the bin's center is occupied")
	}
	if _, ok := idx.find(3, 3); !ok {
		t.Fatal("find(3,3) should still hit a border strip")
	}
}

func TestFreeSpaceIndexNoEmptyBucketsLeftBehind(t *testing.T) {
	t.Parallel()

	idx := newFreeSpaceIndex(10, 10)
	idx.removeIntersecting(Rect{X: 0, Y: 0, W: 10, H: 10})

	if len(idx.areas) != 0 {
		t.Fatalf("areas = %v, want empty after fully covering removeIntersecting", idx.areas)
	}
	for area, ws := range idx.widths {
		if len(ws) == 0 {
			t.Fatalf("area %d has an empty width slice left behind", area)
		}
	}
	for area, byWidth := range idx.rects {
		for width, bucket := range byWidth {
			if len(bucket) == 0 {
				t.Fatalf("area=%d width=%d has an empty rect bucket left behind", area, width)
			}
		}
	}
}
