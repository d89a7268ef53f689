package cmdutil

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rotorz/capri/internal/module"
	"github.com/rotorz/capri/internal/oop"
	"github.com/rotorz/capri/internal/output"
	"github.com/rotorz/capri/pkg/capri"
)

// ModuleInfo describes one module record.
type ModuleInfo struct {
	Name   string   `json:"name"`
	State  string   `json:"state"`
	Status string   `json:"status"`
	Deps   []string `json:"deps,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// DepsReport is the dependency graph reachable from an entry module.
type DepsReport struct {
	Entry   string       `json:"entry"`
	Order   []string     `json:"order"`
	Modules []ModuleInfo `json:"modules"`
}

// Status derives the display status of a record after loading settled.
func Status(rec *module.Record) string {
	switch {
	case rec.Err() != nil:
		return output.StatusFailed
	case rec.State() == module.Loaded:
		return output.StatusLoaded
	case rec.State() == module.Pending:
		return output.StatusPending
	default:
		return output.StatusStalled
	}
}

// BuildDepsReport collects every record of rt.
func BuildDepsReport(rt *capri.Runtime, entry string) *DepsReport {
	reg := rt.Registry()
	report := &DepsReport{
		Entry: module.Resolve(entry, "", reg.Extension()),
		Order: reg.Order(),
	}
	if report.Order == nil {
		report.Order = []string{}
	}
	for _, rec := range reg.Records() {
		info := ModuleInfo{
			Name:   rec.Name(),
			State:  rec.State().String(),
			Status: Status(rec),
			Deps:   rec.Deps(),
		}
		if err := rec.Err(); err != nil {
			info.Error = err.Error()
		}
		report.Modules = append(report.Modules, info)
	}
	return report
}

func (r *DepsReport) module(name string) (ModuleInfo, bool) {
	for _, m := range r.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return ModuleInfo{}, false
}

// Tree renders the dependency tree below the entry. A module already shown
// on the current branch is marked as a cycle and not expanded again.
func (r *DepsReport) Tree() *output.TreeNode {
	var build func(name string, path map[string]bool) *output.TreeNode
	build = func(name string, path map[string]bool) *output.TreeNode {
		m, ok := r.module(name)
		label := output.StyleNoun.Render(name)
		if ok && m.Status != output.StatusLoaded {
			label += " " + output.StyleDim.Render("("+m.Status+")")
		}
		node := &output.TreeNode{Label: label}
		if path[name] {
			node.Label += " " + output.StyleDim.Render("(cycle)")
			return node
		}
		path[name] = true
		for _, dep := range m.Deps {
			node.Children = append(node.Children, build(dep, path))
		}
		delete(path, name)
		return node
	}
	return build(r.Entry, map[string]bool{})
}

// Text renders the tree followed by the load order and any unloaded modules.
func (r *DepsReport) Text() string {
	var b strings.Builder
	b.WriteString(output.RenderTree(r.Tree()))
	b.WriteString("\n\n")
	b.WriteString(output.StyleSummary.Render("Load order"))
	b.WriteString("\n")
	for i, name := range r.Order {
		fmt.Fprintf(&b, "%3d. %s\n", i+1, output.FormatModuleLine(name, output.StatusLoaded))
	}
	for _, m := range r.Modules {
		if m.Status != output.StatusLoaded {
			fmt.Fprintf(&b, "     %s\n", output.FormatModuleLine(m.Name, m.Status))
		}
	}
	return b.String()
}

// ClassInfo describes one class.
type ClassInfo struct {
	ID         string   `json:"id"`
	Super      string   `json:"super,omitempty"`
	Module     string   `json:"module,omitempty"`
	Abstract   bool     `json:"abstract"`
	Interfaces []string `json:"interfaces,omitempty"`
	Members    []string `json:"members,omitempty"`
	Static     []string `json:"static,omitempty"`
}

// InterfaceInfo describes one interface.
type InterfaceInfo struct {
	ID      string            `json:"id"`
	Module  string            `json:"module,omitempty"`
	Extends []string          `json:"extends,omitempty"`
	Members map[string]string `json:"members,omitempty"`
	Static  map[string]string `json:"static,omitempty"`
}

// ClassReport lists the class table.
type ClassReport struct {
	Classes    []ClassInfo     `json:"classes"`
	Interfaces []InterfaceInfo `json:"interfaces"`

	root *oop.Class
}

// BuildClassReport collects the classes and declared interfaces of rt.
// Generated abstract contracts are left out.
func BuildClassReport(rt *capri.Runtime) *ClassReport {
	t := rt.Table()
	report := &ClassReport{
		Classes:    []ClassInfo{},
		Interfaces: []InterfaceInfo{},
		root:       t.Root(),
	}
	for _, c := range t.Classes() {
		info := ClassInfo{
			ID:       c.FullName(),
			Module:   c.ModuleName(),
			Abstract: c.IsAbstract(),
			Members:  c.MemberKeys(),
			Static:   c.StaticKeys(),
		}
		if c.Super() != nil {
			info.Super = c.Super().FullName()
		}
		for _, i := range c.Interfaces() {
			info.Interfaces = append(info.Interfaces, i.FullName())
		}
		report.Classes = append(report.Classes, info)
	}
	for _, i := range t.Interfaces() {
		if i.IsContract() {
			continue
		}
		info := InterfaceInfo{
			ID:      i.FullName(),
			Module:  i.ModuleName(),
			Members: requirementNames(i.Members()),
			Static:  requirementNames(i.Static()),
		}
		for _, e := range i.Interfaces() {
			info.Extends = append(info.Extends, e.FullName())
		}
		report.Interfaces = append(report.Interfaces, info)
	}
	return report
}

func requirementNames(in map[string]oop.Requirement) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, r := range in {
		out[k] = r.String()
	}
	return out
}

// Tree renders the class hierarchy from the root class.
func (r *ClassReport) Tree() *output.TreeNode {
	var build func(c *oop.Class) *output.TreeNode
	build = func(c *oop.Class) *output.TreeNode {
		label := output.StyleNoun.Render(c.FullName())
		if c.IsAbstract() {
			label += " " + output.StyleInterface.Render("abstract")
		}
		node := &output.TreeNode{Label: label}
		for _, sub := range c.SubClasses() {
			node.Children = append(node.Children, build(sub))
		}
		return node
	}
	root := build(r.root)
	root.Sort()
	return root
}

// Table renders one row per class, the root class excluded.
func (r *ClassReport) Table() *output.Table {
	tbl := output.NewTable("CLASS", "EXTENDS", "ABSTRACT", "INTERFACES")
	for _, c := range r.Classes {
		if c.ID == oop.RootID {
			continue
		}
		abstract := ""
		if c.Abstract {
			abstract = "yes"
		}
		tbl.Row(c.ID, c.Super, abstract, strings.Join(c.Interfaces, ", "))
	}
	return tbl
}

// Text renders the hierarchy tree, the class table and declared interfaces.
func (r *ClassReport) Text() string {
	var b strings.Builder
	b.WriteString(output.RenderTree(r.Tree()))
	b.WriteString("\n\n")
	if tbl := r.Table(); tbl.Len() > 0 {
		b.WriteString(tbl.String())
		b.WriteString("\n")
	}
	if len(r.Interfaces) > 0 {
		b.WriteString("\n")
		b.WriteString(output.StyleSummary.Render("Interfaces"))
		b.WriteString("\n")
		for _, i := range r.Interfaces {
			b.WriteString("  ")
			b.WriteString(output.StyleInterface.Render(i.ID))
			if keys := sortedKeys(i.Members); len(keys) > 0 {
				b.WriteString(output.StyleDim.Render(" { " + strings.Join(keys, ", ") + " }"))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
