// Package sanitizer provides the command-line interface for the sanitizer
// tool. It wires subcommands (scan, patterns, lint, config, completion,
// version), parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/redactyl/sanitizer/cmd/sanitizer"
//	func main() { sanitizer.Execute() }
package sanitizer
