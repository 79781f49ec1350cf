// Package version exposes build metadata for the project.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags and default to sensible values for local builds. BuildLabel
// derives the version label stamped onto uploaded documentation packages.
package version
