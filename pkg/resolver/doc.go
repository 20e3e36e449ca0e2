// Package resolver turns a path string into the set of outlet views a
// consumer should display, asynchronously and with last-write-wins
// semantics under rapid path changes.
//
// A Resolver owns an ordered, immutable route table. Resolve(path)
// selects the first matching entry, invokes its view loader, and
// publishes the resulting outlet map through a signal the consumer
// subscribes to. Each Resolve call supersedes the previous one: a
// slower, older load completes but its result is discarded, so the
// published state always reflects the newest requested path.
//
// Nesting is explicit. A matched route consumes only a prefix of the
// path; every outlet carries the unmatched remainder, and a view that
// embeds its own Resolver feeds that remainder to it:
//
//	parent.Subscribe(func(st resolver.State[View]) {
//		if out, ok := st.Outlets.Default(); ok {
//			child.Resolve(out.Remainder)
//		}
//	})
//
// Absence of a matching route is not an error: it publishes an empty
// state, which the consumer typically renders as its fallback content.
package resolver
