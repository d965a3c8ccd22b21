// Package chunking splits voice-note transcripts into overlapping segments
// sized for language-model context windows.
//
// Sizes are denominated in tokens and converted to characters with a fixed
// four-characters-per-token ratio. Splitting prefers paragraph and sentence
// boundaries over mid-word cuts, and adjacent chunks overlap so context is
// not lost at the seams. Splitting is deterministic: the same transcript
// always produces the same chunks.
package chunking
