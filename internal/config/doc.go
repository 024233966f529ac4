// Package config loads sanitizer configuration from local and global YAML
// files. CLI flags take precedence over the local file, which takes
// precedence over the global one; the CLI does the merging.
package config
