// Package main hosts the altotriage CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once per invocation, builds
// the structured logger, and hands work to the internal packages: triage runs
// the folder classification, ledger serves run history, and preflight backs
// the doctor report. Commands here stay thin and focus on terminal output.
package main
