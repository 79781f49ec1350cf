// Package validator checks YAML configuration files against lightweight
// per-file-type schemas: MkDocs site configs, GitHub Actions workflows and
// Docker Compose files; everything else only has to parse.
//
// Findings accumulate per file into a shared report; errors fail the run,
// warnings do not, and no finding stops processing of subsequent files.
package validator
