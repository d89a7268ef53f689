package templates

import (
	"fmt"
	"regexp"
	"strings"
)

var projectNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidateProjectName checks that name can be used as a project name.
// Project names start with a letter and contain letters, digits, hyphens
// and underscores.
func ValidateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if !projectNameRegex.MatchString(name) {
		return fmt.Errorf("invalid project name %q: must start with a letter and contain only letters, digits, '-' and '_'", name)
	}
	return nil
}

// NativePrefix derives the native reference prefix from a project name:
// lower case, with hyphens replaced by underscores.
func NativePrefix(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "-", "_"))
}
