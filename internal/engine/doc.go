// Package engine compiles a threat catalog into an immutable matcher and
// scores content against it. Two strategies share the Engine contract: a
// leftmost-first Aho-Corasick automaton over literal patterns and a set of
// independently compiled regular expressions. This package is internal;
// external consumers should use the stable facade in pkg/core.
package engine
