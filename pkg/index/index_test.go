package index

import (
	"math"
	"reflect"
	"testing"
)

// sumRanks recomputes the total the slow way for invariant checks.
func sumRanks(ix *Index) float64 {
	total := 0.0
	for _, e := range ix.Entries() {
		total += e.Rank
	}
	return total
}

func checkTotal(t *testing.T, ix *Index) {
	t.Helper()
	if got, want := ix.Total(), sumRanks(ix); math.Abs(got-want) > 1e-9 {
		t.Errorf("Total() = %v, sum of ranks = %v", got, want)
	}
}

func TestRecordVisit(t *testing.T) {
	ix := New(DefaultPolicy())

	e := ix.RecordVisit("/home/u/projects/alpha", 1000)
	if e.Rank != 1 || e.LastAccess != 1000 {
		t.Fatalf("first visit = %+v, want rank 1 last 1000", e)
	}

	e = ix.RecordVisit("/home/u/projects/alpha", 2000)
	if e.Rank != 2 || e.LastAccess != 2000 {
		t.Fatalf("second visit = %+v, want rank 2 last 2000", e)
	}

	if ix.Len() != 1 {
		t.Errorf("Len() = %d, want 1", ix.Len())
	}
	checkTotal(t, ix)
}

func TestRecordVisitAgesPastCeiling(t *testing.T) {
	ix := New(Policy{AgeCeiling: 10, AgeDecay: 0.5, PruneEpsilon: 0.1})

	ix.Put(Entry{Path: "/a", Rank: 6, LastAccess: 1})
	ix.Put(Entry{Path: "/b", Rank: 4, LastAccess: 1})

	// Total hits 11 > 10, so the visit triggers one decay pass.
	e := ix.RecordVisit("/c", 2)
	if e.Rank != 0.5 {
		t.Errorf("fresh entry rank after aging = %v, want 0.5", e.Rank)
	}
	if a, _ := ix.Get("/a"); a.Rank != 3 {
		t.Errorf("aged rank for /a = %v, want 3", a.Rank)
	}
	checkTotal(t, ix)
}

func TestPutReplaces(t *testing.T) {
	ix := New(DefaultPolicy())
	ix.Put(Entry{Path: "/a", Rank: 5, LastAccess: 10})
	ix.Put(Entry{Path: "/a", Rank: 2, LastAccess: 20})

	e, ok := ix.Get("/a")
	if !ok || e.Rank != 2 || e.LastAccess != 20 {
		t.Fatalf("Get(/a) = %+v, %v; want replaced entry", e, ok)
	}
	if ix.Total() != 2 {
		t.Errorf("Total() = %v, want 2", ix.Total())
	}
}

func TestRemove(t *testing.T) {
	ix := New(DefaultPolicy())
	ix.Put(Entry{Path: "/a", Rank: 3, LastAccess: 1})
	ix.Put(Entry{Path: "/b", Rank: 4, LastAccess: 1})

	if !ix.Remove("/a") {
		t.Fatal("Remove(/a) = false, want true")
	}
	if ix.Remove("/a") {
		t.Error("second Remove(/a) = true, want false")
	}
	if _, ok := ix.Get("/a"); ok {
		t.Error("entry /a still present after Remove")
	}
	if ix.Total() != 4 {
		t.Errorf("Total() = %v, want 4", ix.Total())
	}
}

func TestClean(t *testing.T) {
	ix := New(DefaultPolicy())
	ix.Put(Entry{Path: "/keep/one", Rank: 1, LastAccess: 1})
	ix.Put(Entry{Path: "/dead/two", Rank: 2, LastAccess: 1})
	ix.Put(Entry{Path: "/dead/one", Rank: 3, LastAccess: 1})

	removed := ix.Clean(func(path string) bool { return path == "/keep/one" })

	if want := []string{"/dead/one", "/dead/two"}; !reflect.DeepEqual(removed, want) {
		t.Errorf("Clean removed %v, want %v", removed, want)
	}
	if ix.Len() != 1 {
		t.Errorf("Len() = %d after clean, want 1", ix.Len())
	}
	if _, ok := ix.Get("/keep/one"); !ok {
		t.Error("surviving entry missing after clean")
	}
	checkTotal(t, ix)
}

func TestCleanRemovesOnlyDeadPaths(t *testing.T) {
	ix := New(DefaultPolicy())
	ix.Put(Entry{Path: "/exists", Rank: 1, LastAccess: 1})
	ix.Put(Entry{Path: "/gone", Rank: 1, LastAccess: 1})

	alive := map[string]bool{"/exists": true}
	removed := ix.Clean(func(path string) bool { return alive[path] })

	if len(removed) != 1 || removed[0] != "/gone" {
		t.Fatalf("Clean removed %v, want [/gone]", removed)
	}
	if _, ok := ix.Get("/exists"); !ok {
		t.Error("live entry was removed")
	}
}

func TestMerge(t *testing.T) {
	p := DefaultPolicy()

	a := New(p)
	a.Put(Entry{Path: "/shared", Rank: 2, LastAccess: 100})
	a.Put(Entry{Path: "/only-a", Rank: 1, LastAccess: 50})

	b := New(p)
	b.Put(Entry{Path: "/shared", Rank: 3, LastAccess: 400})
	b.Put(Entry{Path: "/only-b", Rank: 5, LastAccess: 60})

	a.Merge(b)

	shared, _ := a.Get("/shared")
	if shared.Rank != 5 {
		t.Errorf("merged rank = %v, want 5", shared.Rank)
	}
	if shared.LastAccess != 400 {
		t.Errorf("merged last-access = %v, want 400", shared.LastAccess)
	}
	if _, ok := a.Get("/only-a"); !ok {
		t.Error("path present only in the receiver was lost")
	}
	if _, ok := a.Get("/only-b"); !ok {
		t.Error("path present only in the delta was lost")
	}
	checkTotal(t, a)
}

func TestMergeKeepsNewerReceiverTimestamp(t *testing.T) {
	p := DefaultPolicy()
	a := New(p)
	a.Put(Entry{Path: "/x", Rank: 1, LastAccess: 900})
	b := New(p)
	b.Put(Entry{Path: "/x", Rank: 1, LastAccess: 100})

	a.Merge(b)
	e, _ := a.Get("/x")
	if e.LastAccess != 900 {
		t.Errorf("last-access = %v, want 900 (max of both sides)", e.LastAccess)
	}
}

// Ranks here are exactly representable in binary so float addition is
// order-independent and the algebraic properties hold exactly.
func mergeFixture(p Policy) (*Index, *Index, *Index) {
	a := New(p)
	a.Put(Entry{Path: "/x", Rank: 1, LastAccess: 10})
	a.Put(Entry{Path: "/y", Rank: 2.5, LastAccess: 20})

	b := New(p)
	b.Put(Entry{Path: "/x", Rank: 0.5, LastAccess: 30})
	b.Put(Entry{Path: "/z", Rank: 4, LastAccess: 5})

	c := New(p)
	c.Put(Entry{Path: "/y", Rank: 8, LastAccess: 15})
	c.Put(Entry{Path: "/z", Rank: 0.25, LastAccess: 50})
	return a, b, c
}

func TestMergeCommutative(t *testing.T) {
	p := DefaultPolicy()

	a1, b1, _ := mergeFixture(p)
	a1.Merge(b1)

	a2, b2, _ := mergeFixture(p)
	b2.Merge(a2)

	if !reflect.DeepEqual(a1.Entries(), b2.Entries()) {
		t.Errorf("merge(a,b) = %v, merge(b,a) = %v", a1.Entries(), b2.Entries())
	}
}

func TestMergeAssociative(t *testing.T) {
	p := DefaultPolicy()

	// (a+b)+c
	a1, b1, c1 := mergeFixture(p)
	a1.Merge(b1)
	a1.Merge(c1)

	// a+(b+c)
	a2, b2, c2 := mergeFixture(p)
	b2.Merge(c2)
	a2.Merge(b2)

	if !reflect.DeepEqual(a1.Entries(), a2.Entries()) {
		t.Errorf("merge(merge(a,b),c) = %v, merge(a,merge(b,c)) = %v", a1.Entries(), a2.Entries())
	}
}

func TestAgeBelowCeilingIsNoop(t *testing.T) {
	ix := New(Policy{AgeCeiling: 100, AgeDecay: 0.99, PruneEpsilon: 0.98})
	ix.Put(Entry{Path: "/a", Rank: 60, LastAccess: 1})
	ix.Put(Entry{Path: "/b", Rank: 40, LastAccess: 1})

	if ix.Age() {
		t.Fatal("Age() ran with total == ceiling, want no-op")
	}
	if e, _ := ix.Get("/a"); e.Rank != 60 {
		t.Errorf("rank changed without aging: %v", e.Rank)
	}
}

func TestAgeDecaysAllRanks(t *testing.T) {
	ix := New(Policy{AgeCeiling: 100, AgeDecay: 0.99, PruneEpsilon: 0.98})
	ix.Put(Entry{Path: "/a", Rank: 80, LastAccess: 1})
	ix.Put(Entry{Path: "/b", Rank: 30, LastAccess: 1})

	if !ix.Age() {
		t.Fatal("Age() did not run with total 110 > 100")
	}

	a, _ := ix.Get("/a")
	b, _ := ix.Get("/b")
	if a.Rank != 80*0.99 || b.Rank != 30*0.99 {
		t.Errorf("aged ranks = %v, %v; want %v, %v", a.Rank, b.Rank, 80*0.99, 30*0.99)
	}
	if a.Rank <= b.Rank {
		t.Error("aging reordered ranks")
	}
	if a.LastAccess != 1 {
		t.Error("aging modified last-access")
	}
	checkTotal(t, ix)
}

func TestEntriesSortedByPath(t *testing.T) {
	ix := New(DefaultPolicy())
	ix.Put(Entry{Path: "/c", Rank: 1})
	ix.Put(Entry{Path: "/a", Rank: 1})
	ix.Put(Entry{Path: "/b", Rank: 1})

	got := ix.Entries()
	for i := 1; i < len(got); i++ {
		if got[i-1].Path >= got[i].Path {
			t.Fatalf("Entries not sorted: %q before %q", got[i-1].Path, got[i].Path)
		}
	}
}
