// Package preflight provides readiness checks for the filesystem paths a
// triage run depends on.
//
// These checks run in two contexts:
//   - The triage engine calls ForTriage before touching any file. If a check
//     fails, the run stops before destinations are created.
//   - The CLI "altotriage doctor" command calls RunAll to display the state of
//     every configured directory.
package preflight
