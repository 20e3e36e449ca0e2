package pattern

import (
	"fmt"
	"strings"
)

// segKind is the segment type discriminator.
type segKind uint8

const (
	segLiteral  segKind = iota // exact text match
	segParam                   // named parameter (:id)
	segCatchAll                // trailing wildcard (* or *rest)
)

// segment is one compiled path segment.
type segment struct {
	kind segKind

	// value is the literal text for segLiteral, or the parameter name
	// for segParam and segCatchAll. A bare "*" has an empty name and
	// captures nothing.
	value string
}

// Pattern is the compiled form of a route path string.
// A Pattern is immutable after Compile and safe for concurrent use.
type Pattern struct {
	raw      string
	segments []segment
	params   []string
	full     bool
}

// Match describes a successful match of a Pattern against a path.
type Match struct {
	// Prefix is the portion of the path consumed by the pattern.
	Prefix string

	// Values are the captured parameter values, parallel to ParamNames.
	Values []string

	// Remainder is the unconsumed suffix of the path.
	// Prefix + Remainder equals the matched path exactly.
	Remainder string
}

// Error reports a malformed route pattern.
// It is returned only at compile time; matching never fails with an error.
type Error struct {
	Pattern string
	Reason  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("route pattern %q: %s", e.Pattern, e.Reason)
}

// Option configures pattern compilation.
type Option func(*compileOptions)

type compileOptions struct {
	full    bool
	fullSet bool
}

// Full controls whether the pattern must consume the path exactly.
// When not specified, only the root pattern "/" defaults to a full match;
// every other pattern is a prefix match so parents can hand the unmatched
// remainder to nested resolution.
func Full(full bool) Option {
	return func(o *compileOptions) {
		o.full = full
		o.fullSet = true
	}
}

// Compile parses a route path string into a Pattern.
//
// Segments are separated by "/". A segment starting with ":" declares a
// named parameter that captures exactly one path segment. A final segment
// of "*" or "*name" is a catch-all that consumes the rest of the path;
// the named form captures the consumed text (without its leading slash).
func Compile(raw string, opts ...Option) (*Pattern, error) {
	var o compileOptions
	for _, opt := range opts {
		opt(&o)
	}

	if raw == "" || raw[0] != '/' {
		return nil, &Error{Pattern: raw, Reason: "must start with /"}
	}

	p := &Pattern{raw: raw}
	if o.fullSet {
		p.full = o.full
	} else {
		p.full = raw == "/"
	}

	seen := make(map[string]bool)
	segs := splitPath(raw)
	for i, seg := range segs {
		switch {
		case strings.HasPrefix(seg, "*"):
			if i != len(segs)-1 {
				return nil, &Error{Pattern: raw, Reason: "catch-all must be the final segment"}
			}
			name := seg[1:]
			if strings.ContainsAny(name, ":*") {
				return nil, &Error{Pattern: raw, Reason: "invalid catch-all name " + name}
			}
			p.segments = append(p.segments, segment{kind: segCatchAll, value: name})
			if name != "" {
				if seen[name] {
					return nil, &Error{Pattern: raw, Reason: "duplicate parameter " + name}
				}
				seen[name] = true
				p.params = append(p.params, name)
			}

		case strings.HasPrefix(seg, ":"):
			name := seg[1:]
			if name == "" {
				return nil, &Error{Pattern: raw, Reason: "parameter segment has no name"}
			}
			if strings.ContainsAny(name, ":*") {
				return nil, &Error{Pattern: raw, Reason: "invalid parameter name " + name}
			}
			if seen[name] {
				return nil, &Error{Pattern: raw, Reason: "duplicate parameter " + name}
			}
			seen[name] = true
			p.segments = append(p.segments, segment{kind: segParam, value: name})
			p.params = append(p.params, name)

		case seg == "":
			return nil, &Error{Pattern: raw, Reason: "empty segment"}

		default:
			p.segments = append(p.segments, segment{kind: segLiteral, value: seg})
		}
	}

	return p, nil
}

// MustCompile is Compile for statically known patterns; it panics on error.
func MustCompile(raw string, opts ...Option) *Pattern {
	p, err := Compile(raw, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source pattern text.
func (p *Pattern) String() string {
	return p.raw
}

// ParamNames returns the parameter names in capture order.
// Callers must not modify the returned slice.
func (p *Pattern) ParamNames() []string {
	return p.params
}

// Full reports whether the pattern must consume the path exactly.
func (p *Pattern) Full() bool {
	return p.full
}

// Match tests the pattern against a path. On success it returns the
// consumed prefix, the captured values in ParamNames order, and the
// unconsumed remainder. Match is pure: it never mutates the pattern and
// may be called concurrently.
func (p *Pattern) Match(path string) (Match, bool) {
	if path == "" || path[0] != '/' {
		return Match{}, false
	}

	// Root pattern: no segments to consume. The full form matches only
	// "/" itself; the prefix form consumes nothing and delegates the
	// whole path, which is what a wrapping layout route wants.
	if len(p.segments) == 0 {
		if p.full {
			if path != "/" {
				return Match{}, false
			}
			return Match{Prefix: "/"}, true
		}
		return Match{Remainder: path}, true
	}

	var values []string
	if len(p.params) > 0 {
		values = make([]string, 0, len(p.params))
	}

	// rest is the unconsumed portion of the path, always either empty
	// or starting with "/". consumed tracks the byte length of the
	// matched prefix so Prefix+Remainder reconstructs path exactly.
	rest := path
	consumed := 0

	for _, seg := range p.segments {
		if seg.kind == segCatchAll {
			if seg.value != "" {
				values = append(values, strings.TrimPrefix(rest, "/"))
			}
			consumed = len(path)
			rest = ""
			break
		}

		if rest == "" || rest[0] != '/' {
			return Match{}, false
		}

		// Next path chunk: text between this "/" and the next.
		chunk := rest[1:]
		end := strings.IndexByte(chunk, '/')
		if end == -1 {
			end = len(chunk)
		}
		chunk = chunk[:end]

		switch seg.kind {
		case segLiteral:
			if chunk != seg.value {
				return Match{}, false
			}
		case segParam:
			if chunk == "" {
				return Match{}, false
			}
			values = append(values, chunk)
		}

		consumed += 1 + len(chunk)
		rest = path[consumed:]
	}

	if p.full && rest != "" {
		return Match{}, false
	}

	return Match{
		Prefix:    path[:consumed],
		Values:    values,
		Remainder: rest,
	}, true
}

// splitPath splits a pattern into segments, ignoring the leading slash
// and a single trailing slash.
func splitPath(raw string) []string {
	raw = strings.Trim(raw, "/")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "/")
}
