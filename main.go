package main

import "github.com/redactyl/sanitizer/cmd/sanitizer"

func main() { sanitizer.Execute() }
