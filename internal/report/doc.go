// Package report accumulates per-file errors and warnings across a single
// lint or validation run and renders the end-of-run summary.
//
// Errors decide the process exit code; warnings are advisory.
package report
