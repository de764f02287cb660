// Package alto parses ALTO layout annotation files into an immutable element
// tree and exposes the queries the triage engine needs.
//
// Parsing keeps every element with its namespace-resolved name and attributes;
// character data is dropped because classification only looks at structure.
// Descendants performs a pure pre-order traversal, so callers pass the ALTO
// namespace explicitly instead of relying on prefix bindings in the file.
// Documents declaring a non-UTF-8 encoding are transcoded on the fly.
package alto
