// Package triage sorts a folder of ALTO annotation files into categorized
// sibling folders.
//
// A run lists the input folder once, parses every annotation, and classifies
// it: documents without TextLines are skipped, documents with TextLines but no
// Polygons are copied (with their page image, when present) to the
// no-polygon destination, and documents whose every Polygon carries the
// expected number of POINTS tokens are copied to the valid destination. A
// single malformed polygon excludes the whole file.
//
// Destinations are derived from the input path at the start of a run and
// passed explicitly to every copy. Copies go through a temp file and rename,
// so re-running over the same input rewrites identical bytes and an
// interrupted run never leaves a truncated file behind. Parse failures either
// skip the file or abort the run depending on Options.AbortOnParseError.
package triage
