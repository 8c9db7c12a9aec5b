// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the overlap pipeline to function:
//
//   - PageFetcher: Retrieves raw page bytes for a URL
//   - Normaliser: Transforms raw documents into plain text
//   - NormaliserRegistry behaviour lives in internal/normalisers
//   - EmbeddingService: Generates vector embeddings (fatal when it fails mid-scan)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the analysis degrades gracefully:
//
//   - WebSearchProvider: Without it, retrieval returns an empty hit set.
//   - GenerativeService: Without it, query generation falls back to
//     keyword frequencies and AI detection returns its neutral default.
//   - ReportWriter: Without it, no report artifact is rendered.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
