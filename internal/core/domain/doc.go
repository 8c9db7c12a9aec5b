// Package domain defines the core business entities for Veridoc.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: The normalised text under analysis
//   - RawDocument: Opaque bytes before normalisation
//   - PageHit: One retrieved web result
//   - Overlap: One matched chunk pair
//   - AnalysisResult: The complete output of one analysis
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
