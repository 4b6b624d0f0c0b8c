// Package sanitizer normalizes user-supplied text before validation and
// storage.
//
// All functions are idempotent: applying them twice gives the same result as
// applying them once. They never fail; input that cannot be salvaged becomes
// an empty string.
//
// Normalization includes:
//   - Notes: drop control characters, keep line breaks, collapse spaces
//   - Display names: single line, collapsed whitespace
//   - Truncation on rune boundaries
package sanitizer
