package namespace

import (
	"regexp"
	"strings"
)

// Qualified ids have the form "module:<module name>#<dotted path>". Plain
// dotted paths are ids of definitions made outside any module.

const modulePrefix = "module:"

var (
	idPattern    = regexp.MustCompile(`[^#.]*$`)
	moduleNameRe = regexp.MustCompile(`^module[:]([^#]+)`)
)

// QualifiedID is a parsed qualified id.
type QualifiedID struct {
	// Leaf is the final path segment ("Car").
	Leaf string
	// Parent is the dotted path of the enclosing namespace ("fleet.vehicles").
	Parent string
	// Module is the owning module name, or "" for global definitions.
	Module string
}

// Split parses a qualified id into its parts.
func Split(qid string) QualifiedID {
	return QualifiedID{
		Leaf:   ID(qid),
		Parent: BaseName(qid),
		Module: ModuleName(qid),
	}
}

// String reassembles the qualified id.
func (q QualifiedID) String() string {
	path := q.Leaf
	if q.Parent != "" {
		path = q.Parent + "." + q.Leaf
	}
	return Qualify(q.Module, path)
}

// ID returns the last dotted segment of a qualified id. It returns "" when
// the id names a bare module ("module:my/module").
func ID(qid string) string {
	m := idPattern.FindString(qid)
	if strings.Contains(m, modulePrefix) {
		return ""
	}
	return m
}

// BaseName returns the dotted path preceding the last segment, without the
// module part: BaseName("module:a#x.y.Z") == "x.y".
func BaseName(qid string) string {
	path := qid
	if i := strings.LastIndex(qid, "#"); i >= 0 {
		path = qid[i+1:]
	} else if strings.HasPrefix(qid, modulePrefix) {
		return ""
	}
	i := strings.LastIndex(path, ".")
	if i < 0 {
		return ""
	}
	return path[:i]
}

// ModuleName returns the module part of a qualified id, or "" for a plain
// dotted path.
func ModuleName(qid string) string {
	m := moduleNameRe.FindStringSubmatch(qid)
	if m == nil {
		return ""
	}
	return m[1]
}

// Qualify builds the qualified id of path inside module.
func Qualify(module, path string) string {
	if module == "" {
		return path
	}
	return modulePrefix + module + "#" + path
}
