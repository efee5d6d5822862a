// Package domain defines the core business entities for Pagelens.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Passage: One extracted unit of page text with a semantic tag
//   - Vector / PageEmbedding / QueryAnchor: Embedding artifacts of a run
//   - SimilarityScore: One cosine similarity measurement
//   - VersionedArtifact: One persisted, versioned output file
//   - Config: Tool configuration and its validation
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
