package oop

import (
	"regexp"
	"sort"
	"strings"

	"github.com/rotorz/capri/internal/namespace"
)

// Requirement is the kind of member an interface demands.
type Requirement int

const (
	// RequirePresent only demands that the member exists.
	RequirePresent Requirement = iota
	// RequireFunction demands a callable member.
	RequireFunction
	// RequireGetter demands an accessor with a getter.
	RequireGetter
	// RequireSetter demands an accessor with a setter.
	RequireSetter
	// RequireGetterAndSetter demands an accessor with both halves.
	RequireGetterAndSetter
)

var (
	getTag = regexp.MustCompile(`(^|\s)get(\s|$)`)
	setTag = regexp.MustCompile(`(^|\s)set(\s|$)`)
)

// ParseRequirement maps an interface member tag to a Requirement.
func ParseRequirement(tag string) Requirement {
	if tag == "function" {
		return RequireFunction
	}
	get, set := getTag.MatchString(tag), setTag.MatchString(tag)
	switch {
	case get && set:
		return RequireGetterAndSetter
	case get:
		return RequireGetter
	case set:
		return RequireSetter
	}
	return RequirePresent
}

func (r Requirement) String() string {
	switch r {
	case RequireFunction:
		return "function"
	case RequireGetter:
		return "property (get)"
	case RequireSetter:
		return "property (set)"
	case RequireGetterAndSetter:
		return "property (get set)"
	default:
		return "member"
	}
}

const contractSuffix = "$abstract$"

// Interface is an immutable interface descriptor.
type Interface struct {
	name     string
	qid      string
	contract bool
	extends  []*Interface
	members  map[string]requirement
	static   map[string]requirement
}

// requirement keeps the declared tag for messages alongside its kind.
type requirement struct {
	kind Requirement
	tag  string
}

func newInterface(name, qid string, body InterfaceBody, extends []*Interface) *Interface {
	conv := func(in map[string]string) map[string]requirement {
		out := make(map[string]requirement, len(in))
		for k, tag := range in {
			out[k] = requirement{kind: ParseRequirement(tag), tag: tag}
		}
		return out
	}
	return &Interface{
		name:    name,
		qid:     qid,
		extends: extends,
		members: conv(body.Members),
		static:  conv(body.Static),
	}
}

// Name returns the leaf name.
func (i *Interface) Name() string { return i.name }

// FullName returns the qualified id.
func (i *Interface) FullName() string { return i.qid }

// Namespace returns the dotted path enclosing the interface.
func (i *Interface) Namespace() string { return namespace.BaseName(i.qid) }

// ModuleName returns the defining module, or "".
func (i *Interface) ModuleName() string { return namespace.ModuleName(i.qid) }

// IsContract reports whether the interface was generated from an abstract
// class contract.
func (i *Interface) IsContract() bool { return i.contract }

// Interfaces returns the interfaces this one extends.
func (i *Interface) Interfaces() []*Interface {
	return append([]*Interface(nil), i.extends...)
}

// Members returns the instance member requirements.
func (i *Interface) Members() map[string]Requirement {
	return flatten(i.members)
}

// Static returns the static member requirements.
func (i *Interface) Static() map[string]Requirement {
	return flatten(i.static)
}

// Is reports whether i is kind or extends it.
func (i *Interface) Is(kind *Interface) bool {
	for _, x := range i.closure() {
		if x == kind {
			return true
		}
	}
	return false
}

func (i *Interface) String() string { return i.qid }

// contractOwner returns the qualified id of the abstract class a contract
// interface was generated for.
func (i *Interface) contractOwner() string {
	return strings.TrimSuffix(i.qid, contractSuffix)
}

// closure returns i followed by every interface it transitively extends,
// without duplicates.
func (i *Interface) closure() []*Interface {
	var out []*Interface
	seen := map[*Interface]bool{}
	var visit func(*Interface)
	visit = func(x *Interface) {
		if x == nil || seen[x] {
			return
		}
		seen[x] = true
		out = append(out, x)
		for _, e := range x.extends {
			visit(e)
		}
	}
	visit(i)
	return out
}

func flatten(in map[string]requirement) map[string]Requirement {
	out := make(map[string]Requirement, len(in))
	for k, r := range in {
		out[k] = r.kind
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
