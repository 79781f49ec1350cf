package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// asMapping coerces a decoded YAML document into a string-keyed mapping.
// The decoder falls back to interface{} keys when any key is not a string;
// a bare "on"/"off" key resolved to a YAML 1.1 boolean is normalized back.
func asMapping(doc any) map[string]any {
	switch m := doc.(type) {
	case map[string]any:
		return m
	case map[any]any:
		out := make(map[string]any, len(m))

		for k, value := range m {
			switch key := k.(type) {
			case string:
				out[key] = value
			case bool:
				if key {
					out["on"] = value
				} else {
					out["off"] = value
				}
			default:
				out[fmt.Sprint(key)] = value
			}
		}

		return out
	default:
		return nil
	}
}

// validateMkdocs checks an MkDocs site configuration.
func (v *validator) validateMkdocs(file string, doc any) {
	m := asMapping(doc)
	if m == nil {
		v.report.AddError(file, "mkdocs configuration must be a mapping")
		return
	}

	for _, field := range []string{"site_name", "docs_dir"} {
		if _, ok := m[field]; !ok {
			v.report.AddError(file, fmt.Sprintf("missing required field: %s", field))
		}
	}

	if raw, ok := m["site_name"]; ok {
		if name, isString := raw.(string); !isString || strings.TrimSpace(name) == "" {
			v.report.AddError(file, "site_name must be a non-empty string")
		}
	}

	docsDir := "docs"

	if raw, ok := m["docs_dir"]; ok {
		if dir, isString := raw.(string); isString {
			docsDir = dir

			if _, err := os.Stat(filepath.Join(v.rootDir, filepath.FromSlash(dir))); err != nil {
				v.report.AddError(file, fmt.Sprintf("docs_dir %q does not exist", dir))
			}
		} else {
			v.report.AddError(file, "docs_dir must be a string")
		}
	}

	if nav, ok := m["nav"].([]any); ok {
		v.validateNavigation(file, nav, docsDir)
	}

	if theme, ok := m["theme"]; ok {
		v.validateTheme(file, theme)
	}
}

// validateNavigation checks that nav entries referencing Markdown files
// point at files that exist under the docs directory.
func (v *validator) validateNavigation(file string, nav []any, docsDir string) {
	for _, item := range nav {
		entry := asMapping(item)
		if entry == nil {
			continue
		}

		for _, target := range entry {
			switch typed := target.(type) {
			case string:
				if !strings.HasSuffix(typed, ".md") {
					continue
				}

				path := filepath.Join(v.rootDir, filepath.FromSlash(docsDir), filepath.FromSlash(typed))
				if _, err := os.Stat(path); err != nil {
					v.report.AddError(file, fmt.Sprintf("navigation references non-existent file: %s", typed))
				}
			case []any:
				// Nested sections carry their own entries.
				v.validateNavigation(file, typed, docsDir)
			}
		}
	}
}

// validateTheme checks the theme field shape.
func (v *validator) validateTheme(file string, theme any) {
	switch typed := theme.(type) {
	case string:
		// A bare theme name is valid.
	case map[string]any, map[any]any:
		if _, ok := asMapping(typed)["name"]; !ok {
			v.report.AddWarning(file, "theme configuration missing 'name' field")
		}
	default:
		v.report.AddError(file, "theme must be a string or a mapping")
	}
}

// validateWorkflow checks a GitHub Actions workflow definition.
func (v *validator) validateWorkflow(file string, doc any) {
	m := asMapping(doc)
	if m == nil {
		v.report.AddError(file, "workflow must be a mapping")
		return
	}

	for _, field := range []string{"name", "on", "jobs"} {
		if _, ok := m[field]; !ok {
			v.report.AddError(file, fmt.Sprintf("missing required field: %s", field))
		}
	}

	raw, ok := m["jobs"]
	if !ok {
		return
	}

	jobs := asMapping(raw)
	if jobs == nil {
		v.report.AddError(file, "jobs must be a mapping")
		return
	}

	for name, rawJob := range jobs {
		job := asMapping(rawJob)
		if job == nil {
			v.report.AddError(file, fmt.Sprintf("job %q must be a mapping", name))
			continue
		}

		if _, ok := job["runs-on"]; !ok {
			v.report.AddError(file, fmt.Sprintf("job %q missing 'runs-on' field", name))
		}

		if _, ok := job["steps"]; !ok {
			v.report.AddError(file, fmt.Sprintf("job %q missing 'steps' field", name))
		}
	}
}

// validateCompose checks a Docker Compose configuration.
func (v *validator) validateCompose(file string, doc any) {
	m := asMapping(doc)
	if m == nil {
		v.report.AddError(file, "compose configuration must be a mapping")
		return
	}

	if _, ok := m["version"]; !ok {
		v.report.AddWarning(file, "consider specifying a version field")
	}

	raw, ok := m["services"]
	if !ok {
		v.report.AddError(file, "missing required 'services' field")
		return
	}

	services := asMapping(raw)
	if services == nil {
		v.report.AddError(file, "services must be a mapping")
		return
	}

	for name, rawService := range services {
		service := asMapping(rawService)
		if service == nil {
			v.report.AddError(file, fmt.Sprintf("service %q must be a mapping", name))
			continue
		}

		_, hasImage := service["image"]
		_, hasBuild := service["build"]

		if !hasImage && !hasBuild {
			v.report.AddError(file, fmt.Sprintf("service %q must have either 'image' or 'build'", name))
		}
	}
}
