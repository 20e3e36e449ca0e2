// Package pattern compiles route path strings into matchers.
//
// A pattern is a "/"-delimited string whose segments are literal text,
// named parameters, or a trailing catch-all:
//
//	/projects            literal
//	/projects/:id        parameter ("id" captures one segment)
//	/files/*path         catch-all ("path" captures the rest)
//
// Patterns are prefix matchers by default: matching "/projects/:id"
// against "/projects/7/tasks" consumes "/projects/7" and leaves
// "/tasks" as the remainder for nested resolution. The root pattern
// "/" defaults to a full match instead, so an index route does not
// swallow every path. Use the Full option to override either default.
package pattern
