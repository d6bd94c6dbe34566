// Package partial implements partial page updates: regions of rendered HTML
// delimited by marker comments, and the patch that merges the regions of a
// response document into a live document.
//
// # Markers
//
// A region is opened and closed by comments carrying the region name, a
// replacement mode and a key:
//
//	<!--frsh-partial:main:0:-->
//	<section>...</section>
//	<!--/frsh-partial:main:0:-->
//
// The mode field is 0 (replace), 1 (append) or 2 (prepend). Markers are
// produced with Encode or by rendering a component through Wrap.
//
// # Patching
//
// Extract pairs markers into boundaries; Apply, ApplyHTML and ApplyResponse
// merge response boundaries into the live boundaries with the same name and
// key, leaving everything outside them untouched:
//
//	n, err := partial.ApplyResponse(doc.Root(), resp)
//
// Both markers of a region must share a parent. A response that starts with
// a bare marker comment parses it outside the body, so regions are rendered
// inside a container element.
//
// Malformed marker text is a programming error and panics.
package partial
