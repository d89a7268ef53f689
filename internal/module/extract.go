package module

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

var (
	aliasPattern   = regexp2.MustCompile(`function\s*\(\s*([^),]+)`, regexp2.ECMAScript)
	literalPattern = regexp2.MustCompile(`"([^"]|\\.)*"|'([^']|\\.)*'|\/\*(.|\s)*?\*\/|\/\/[^\n\r]+`, regexp2.ECMAScript)
	encodedPattern = regexp2.MustCompile(`REQ#([^#]*)#`, regexp2.ECMAScript)

	defaultRequire = requirePattern("require")
)

func requirePattern(alias string) *regexp2.Regexp {
	return regexp2.MustCompile(`\b`+regexp2.Escape(alias)+`\b\s*\(\s*("([^"]|\\.)*"|'([^']|\\.)*')\s*\)`, regexp2.ECMAScript)
}

// ExtractRequires scans script text for calls of the factory's require
// alias applied to a single string literal. The alias is the first
// parameter of the first function in text, "require" when there is none.
// Calls inside comments or other string literals are ignored.
func ExtractRequires(text string) ([]string, error) {
	re := defaultRequire
	m, err := aliasPattern.FindStringMatch(text)
	if err != nil {
		return nil, fmt.Errorf("scanning require alias: %w", err)
	}
	if m != nil {
		if alias := strings.TrimSpace(m.GroupByNumber(1).String()); alias != "" && alias != "require" {
			re = requirePattern(alias)
		}
	}

	// Encode require calls so they survive the literal strip below.
	encoded, err := re.ReplaceFunc(text, func(m regexp2.Match) string {
		lit := m.GroupByNumber(1).String()
		name := lit[1 : len(lit)-1]
		return "REQ#" + strings.ReplaceAll(name, "/", `\`) + "#"
	}, -1, -1)
	if err != nil {
		return nil, fmt.Errorf("encoding require calls: %w", err)
	}

	stripped, err := literalPattern.Replace(encoded, "", -1, -1)
	if err != nil {
		return nil, fmt.Errorf("stripping literals: %w", err)
	}

	var requires []string
	m, err = encodedPattern.FindStringMatch(stripped)
	for m != nil && err == nil {
		requires = append(requires, strings.ReplaceAll(m.GroupByNumber(1).String(), `\`, "/"))
		m, err = encodedPattern.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("collecting requires: %w", err)
	}
	return requires, nil
}
