// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for an analysis run to function:
//
//   - PageFetcher: Downloads raw page markup
//   - EmbeddingService: Converts text into vectors
//   - ArtifactStore: Versioned output file persistence
//
// # Optional Interfaces
//
// These can be nil - the run degrades gracefully:
//
//   - Renderer: Produces the visualization artifact. Without it (or on
//     render failure) the run still writes extracted JSON and scores.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
