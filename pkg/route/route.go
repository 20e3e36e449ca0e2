package route

import (
	"context"
	"fmt"

	"github.com/wayfind-dev/wayfind/pkg/pattern"
)

// DefaultOutlet is the outlet name a single-view route resolves under.
// The consumer treats it as the implicit child content of its layout.
const DefaultOutlet = "default"

// Params are the extracted route parameters for one match.
type Params map[string]string

// Def is one user-supplied route definition.
// Order across a []Def is significant: the first matching definition wins.
type Def[V any] struct {
	// Path is the route pattern (see package pattern for syntax).
	Path string

	// End forces the pattern to consume the path exactly.
	// Prefix forces prefix matching. When neither is set the pattern
	// default applies (full for "/", prefix otherwise).
	End    bool
	Prefix bool

	// Load produces the route's views. Use Single for one unnamed view
	// or Named for a multi-outlet route.
	Load Loader[V]
}

// Entry pairs a compiled pattern with its loader.
type Entry[V any] struct {
	pattern *pattern.Pattern
	loader  Loader[V]
}

// Pattern returns the entry's compiled pattern.
func (e *Entry[V]) Pattern() *pattern.Pattern {
	return e.pattern
}

// Load resolves every outlet view for the entry. A single-view route
// resolves as {"default": view}; a named route resolves all of its keys
// concurrently and fails as a whole if any key fails.
func (e *Entry[V]) Load(ctx context.Context) (map[string]V, error) {
	return e.loader.load(ctx)
}

// Params zips a match's captured values with the pattern's parameter
// names. The returned map is freshly allocated per call.
func (e *Entry[V]) Params(m pattern.Match) Params {
	names := e.pattern.ParamNames()
	params := make(Params, len(names))
	for i, name := range names {
		params[name] = m.Values[i]
	}
	return params
}

// Table is an ordered, immutable route table.
type Table[V any] struct {
	entries []*Entry[V]
}

// Build compiles the definitions into a Table. It is called once per
// resolver; a malformed definition aborts construction rather than
// silently dropping the route.
func Build[V any](defs []Def[V]) (*Table[V], error) {
	t := &Table[V]{entries: make([]*Entry[V], 0, len(defs))}
	for i, def := range defs {
		if def.Load == nil {
			return nil, fmt.Errorf("route %d (%q): no loader", i, def.Path)
		}
		if def.End && def.Prefix {
			return nil, fmt.Errorf("route %d (%q): End and Prefix are mutually exclusive", i, def.Path)
		}

		var opts []pattern.Option
		if def.End {
			opts = append(opts, pattern.Full(true))
		} else if def.Prefix {
			opts = append(opts, pattern.Full(false))
		}

		p, err := pattern.Compile(def.Path, opts...)
		if err != nil {
			return nil, fmt.Errorf("route %d: %w", i, err)
		}
		t.entries = append(t.entries, &Entry[V]{pattern: p, loader: def.Load})
	}
	return t, nil
}

// Len returns the number of entries in the table.
func (t *Table[V]) Len() int {
	return len(t.entries)
}

// Match scans the table in order and returns the first entry whose
// pattern matches the path. There is no specificity ranking: a
// catch-all placed before a literal route shadows it, which is how
// callers position fallbacks deliberately.
func (t *Table[V]) Match(path string) (*Entry[V], pattern.Match, bool) {
	for _, e := range t.entries {
		if m, ok := e.pattern.Match(path); ok {
			return e, m, true
		}
	}
	return nil, pattern.Match{}, false
}
