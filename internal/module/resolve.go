package module

import (
	"regexp"
	"strings"
)

var (
	hasExtension = regexp.MustCompile(`\.[A-Za-z0-9\-_]+$`)
	lastSegment  = regexp.MustCompile(`[^/]+$`)
	lastDir      = regexp.MustCompile(`[^/]+/$`)
	parentRefs   = regexp.MustCompile(`^(\.\./)+`)
)

// Resolve canonicalizes a module reference. "./x" and "../../x" are
// rewritten relative to the directory of relativeTo. ext is appended when
// the name has no extension and carries no query-like characters.
// Resolving a canonical name returns it unchanged.
func Resolve(ref, relativeTo, ext string) string {
	name := strings.ReplaceAll(ref, `\`, "/")

	switch {
	case strings.HasPrefix(name, "./"):
		name = dir(relativeTo) + name[2:]
	case strings.HasPrefix(name, "../"):
		base := dir(relativeTo)
		prefix := parentRefs.FindString(name)
		for range len(prefix) / 3 {
			base = lastDir.ReplaceAllString(base, "")
		}
		name = base + name[len(prefix):]
	}

	if ext != "" && !hasExtension.MatchString(name) && !strings.ContainsAny(name, "#?&") {
		name += ext
	}
	return name
}

// dir strips the final path segment, keeping the trailing slash.
func dir(name string) string {
	return lastSegment.ReplaceAllString(strings.ReplaceAll(name, `\`, "/"), "")
}
