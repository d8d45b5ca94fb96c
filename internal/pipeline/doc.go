// Package pipeline implements the HTML stages behind report rendering.
//
// This package handles the parts of rendering that go beyond plain markup:
//   - Markdown to HTML fragments via Goldmark (GFM, footnotes, ==highlight==)
//   - Source code highlighting via Chroma with inline styles
//   - Deterministic heading anchors shared by report headers and Markdown
//   - CSS injection into the rendered document
//   - Table of contents generation and injection
//   - Relative figure path rewriting and raw table fragment checks
//
// Every stage is a pure function of its input, so rendering the same report
// twice yields the same bytes.
package pipeline
