// Package core provides a small, stable facade over the sanitizer's internal
// catalog, engine and codec packages for programs that embed it. Build a
// Sanitizer once from a pattern catalog and share it; every scan is a pure
// function of the content and trust multiplier.
//
// Example:
//
//	s, err := core.New(patternsJSON)
//	if err != nil { /* *core.CatalogParseError or *core.EngineBuildError */ }
//	res := s.Scan(userInput, 1.0)
//	if !res.Safe && res.RiskScore >= 50 { /* block */ }
package core
