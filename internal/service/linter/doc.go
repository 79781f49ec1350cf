// Package linter validates Markdown documentation files: heading structure,
// code fences, link targets and text, trailing newlines, bullet markers and
// frontmatter syntax.
//
// Findings accumulate per file into a shared report; errors fail the run,
// warnings do not, and no finding stops processing of subsequent files.
package linter
