// Package config defines deployment settings used by the docsflow binaries
// and provides helpers to load and validate them.
//
// Non-secret knobs (collection, package name, polling budget) may come from
// an optional YAML settings file; the portal URL and Basic auth credentials
// come exclusively from the FLUID_URL, FLUID_USER and FLUID_PASS environment
// variables and are validated once, before any network activity.
package config
