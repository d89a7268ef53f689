package templates

import (
	"fmt"
	"strings"
)

// DefaultTemplateName is the template used when --template is not specified.
const DefaultTemplateName = "classes"

// EntryModule is the entry module every template generates.
const EntryModule = "main"

var templates = map[string]Template{
	"script": {
		Name:        "script",
		Description: "Script modules only - dependency graphs without classes",
	},
	"classes": {
		Name:        "classes",
		Description: "YAML manifests - abstract base class, interface and subclass",
		Default:     true,
	},
	"cue": {
		Name:        "cue",
		Description: "CUE manifests - abstract base class and subclass",
	},
}

// Get returns a template by name.
func Get(name string) (Template, error) {
	t, ok := templates[name]
	if !ok {
		return Template{}, fmt.Errorf("unknown template %q; valid templates: %s", name, strings.Join(Names(), ", "))
	}
	return t, nil
}

// List returns all available templates.
func List() []Template {
	out := make([]Template, 0, len(templates))
	for _, name := range Names() {
		out = append(out, templates[name])
	}
	return out
}

// GetDefault returns the default template.
func GetDefault() Template {
	return templates[DefaultTemplateName]
}

// Names returns all template names.
func Names() []string {
	return []string{"script", "classes", "cue"}
}
