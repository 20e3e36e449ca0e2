package route

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type view struct {
	name string
}

func stub(name string) LoadFunc[view] {
	return ValueFunc(view{name: name})
}

func TestBuildRejectsBadDefs(t *testing.T) {
	tests := []struct {
		name string
		defs []Def[view]
	}{
		{"nil loader", []Def[view]{{Path: "/a"}}},
		{"bad pattern", []Def[view]{{Path: "a", Load: Single(stub("A"))}}},
		{"end and prefix", []Def[view]{{Path: "/a", End: true, Prefix: true, Load: Single(stub("A"))}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build(tt.defs); err == nil {
				t.Fatal("Build succeeded, want error")
			}
		})
	}
}

func TestBuildPreservesOrder(t *testing.T) {
	table, err := Build([]Def[view]{
		{Path: "/a", Load: Single(stub("A"))},
		{Path: "/*", Load: Single(stub("B"))},
		{Path: "/c", Load: Single(stub("C"))},
	})
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}

	// The catch-all precedes /c, so it wins: first match, not best match.
	entry, _, ok := table.Match("/c")
	if !ok {
		t.Fatal("expected match for /c")
	}
	if got := entry.Pattern().String(); got != "/*" {
		t.Errorf("matched %q, want the earlier /*", got)
	}
}

func TestMatchFirstWins(t *testing.T) {
	table, err := Build([]Def[view]{
		{Path: "/a", Load: Single(stub("A"))},
		{Path: "/b", Load: Single(stub("B"))},
	})
	if err != nil {
		t.Fatal(err)
	}

	entry, m, ok := table.Match("/a/b/c")
	if !ok {
		t.Fatal("expected prefix match for /a/b/c")
	}
	if got := entry.Pattern().String(); got != "/a" {
		t.Errorf("matched %q, want /a", got)
	}
	if m.Remainder != "/b/c" {
		t.Errorf("Remainder = %q, want %q", m.Remainder, "/b/c")
	}

	if _, _, ok := table.Match("/"); ok {
		t.Error("/ should not match any entry")
	}
}

func TestMatchReorderingNonMatchesIsIrrelevant(t *testing.T) {
	a := Def[view]{Path: "/x/:id", Load: Single(stub("X"))}
	fillers := []Def[view]{
		{Path: "/aa", Load: Single(stub("AA"))},
		{Path: "/bb", Load: Single(stub("BB"))},
	}

	t1, _ := Build([]Def[view]{fillers[0], fillers[1], a})
	t2, _ := Build([]Def[view]{fillers[1], fillers[0], a})

	e1, m1, ok1 := t1.Match("/x/9")
	e2, m2, ok2 := t2.Match("/x/9")
	if !ok1 || !ok2 {
		t.Fatal("both tables should match /x/9")
	}
	if e1.Pattern().String() != e2.Pattern().String() || m1.Prefix != m2.Prefix {
		t.Error("reordering non-matching entries changed the result")
	}
}

func TestEntryParams(t *testing.T) {
	table, _ := Build([]Def[view]{
		{Path: "/:a/:b", Load: Single(stub("A"))},
	})
	entry, m, ok := table.Match("/4/2")
	if !ok {
		t.Fatal("expected match")
	}
	params := entry.Params(m)
	if params["a"] != "4" || params["b"] != "2" {
		t.Errorf("Params = %v, want a=4 b=2", params)
	}
}

func TestSingleNormalizesToDefault(t *testing.T) {
	table, _ := Build([]Def[view]{
		{Path: "/a", Load: Single(stub("A"))},
	})
	entry, _, _ := table.Match("/a")

	views, err := entry.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 1 {
		t.Fatalf("len(views) = %d, want 1", len(views))
	}
	if views[DefaultOutlet].name != "A" {
		t.Errorf("views[default] = %v, want A", views[DefaultOutlet])
	}
}

func TestNamedResolvesAllKeys(t *testing.T) {
	table, _ := Build([]Def[view]{
		{Path: "/ab", Load: Named(map[string]LoadFunc[view]{
			"one": stub("A"),
			"two": stub("B"),
		})},
	})
	entry, _, _ := table.Match("/ab")

	views, err := entry.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if views["one"].name != "A" || views["two"].name != "B" {
		t.Errorf("views = %v, want one=A two=B", views)
	}
}

func TestNamedJoinIsAllOrNothing(t *testing.T) {
	boom := errors.New("boom")
	table, _ := Build([]Def[view]{
		{Path: "/ab", Load: Named(map[string]LoadFunc[view]{
			"one": stub("A"),
			"two": func(context.Context) (view, error) {
				return view{}, boom
			},
		})},
	})
	entry, _, _ := table.Match("/ab")

	views, err := entry.Load(context.Background())
	if err == nil {
		t.Fatal("Load succeeded, want error")
	}
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}
	if !strings.Contains(err.Error(), `"two"`) {
		t.Errorf("err = %v, want failing outlet named", err)
	}
	if views != nil {
		t.Errorf("views = %v, want nil on failed join", views)
	}
}
