// Package source normalizes clipboard-paste and file payloads into a single
// decoded image handle.
//
// A handle records the natural pixel dimensions, the original byte size, and
// the sniffed MIME type of the payload it was decoded from. Handles are
// immutable once created and exclusively owned by one editor session; the
// session releases the handle on reset, after which it refuses further use.
package source
