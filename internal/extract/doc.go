// Package extract converts raw page markup into ordered, typed passages.
//
// The extractor always emits the default tag set (title, meta description,
// h1-h6) with empty placeholders for absent tags, and optionally paragraphs,
// image alt text, figure captions, definition lists and article blocks when
// enabled by configuration. Passage order is document order and is preserved
// through the rest of the pipeline.
package extract
