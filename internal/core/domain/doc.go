// Package domain defines the core business entities for cvboard.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: The whole CV (header fields, ordered sections, theme)
//   - Section: One content block with a typed payload
//   - Content: The tagged union of section payloads
//   - Envelope: The versioned wrapper used for persisted and exported records
//
// Every Document operation in this package is a pure function: it returns a
// new Document value and never mutates the one it was given.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
