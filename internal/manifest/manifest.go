// Package manifest compiles declarative module files (YAML, TOML, CUE or
// JSON) into module sources that define interfaces and classes.
package manifest

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	oerrors "github.com/rotorz/capri/internal/errors"
)

//go:embed schema.cue
var schemaCUE []byte

// Extensions lists the file extensions a Loader understands.
var Extensions = []string{".yaml", ".yml", ".toml", ".cue", ".json"}

// Manifest is a decoded module file.
type Manifest struct {
	// Requires maps local aliases to module references.
	Requires map[string]string `json:"requires,omitempty"`

	// Exports names the definition returned as the module's exports.
	Exports string `json:"exports,omitempty"`

	// Define lists definitions in the order they are made.
	Define []Definition `json:"define,omitempty"`
}

// Definition is one "kind Name" entry.
type Definition struct {
	Kind      string `json:"kind"`
	Namespace string `json:"namespace,omitempty"`
	Body      Body   `json:"body"`
}

// Name returns the definition's name without its kind.
func (d Definition) Name() string {
	if _, name, ok := strings.Cut(strings.TrimSpace(d.Kind), " "); ok {
		return strings.TrimSpace(name)
	}
	return ""
}

// IsInterface reports whether the definition is an interface.
func (d Definition) IsInterface() bool {
	return strings.HasPrefix(strings.TrimSpace(d.Kind), "interface ")
}

// Body is the loosely-typed body of a definition. Extends and Implements
// hold a reference or a list of references; Abstract holds a bool or a
// contract map.
type Body struct {
	Extends    any            `json:"extends,omitempty"`
	Implements any            `json:"implements,omitempty"`
	Abstract   any            `json:"abstract,omitempty"`
	Members    map[string]any `json:"members,omitempty"`
	Static     map[string]any `json:"static,omitempty"`
}

// Loader parses manifests and validates them against the embedded schema.
type Loader struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewLoader compiles the embedded schema.
func NewLoader() (*Loader, error) {
	ctx := cuecontext.New()
	compiled := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if compiled.Err() != nil {
		return nil, fmt.Errorf("compiling manifest schema: %w", compiled.Err())
	}
	schema := compiled.LookupPath(cue.ParsePath("#Manifest"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("looking up #Manifest: %w", schema.Err())
	}
	return &Loader{ctx: ctx, schema: schema}, nil
}

// Supports reports whether name has a manifest extension.
func Supports(name string) bool {
	ext := extension(name)
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Parse decodes data according to the extension of name, validates it and
// returns the manifest.
func (l *Loader) Parse(name string, data []byte) (*Manifest, error) {
	value, err := l.value(name, data)
	if err != nil {
		return nil, err
	}

	unified := l.schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, oerrors.NewValidationError(
			strings.TrimSpace(cueerrors.Details(err, nil)),
			name,
			"",
			"Manifests accept the keys requires, exports and define",
		)
	}

	raw, err := unified.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("exporting manifest %q: %w", name, err)
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest %q: %w", name, err)
	}
	return &m, nil
}

func (l *Loader) value(name string, data []byte) (cue.Value, error) {
	switch ext := extension(name); ext {
	case ".cue":
		v := l.ctx.CompileBytes(data, cue.Filename(name))
		if v.Err() != nil {
			return cue.Value{}, oerrors.NewValidationError(
				strings.TrimSpace(cueerrors.Details(v.Err(), nil)), name, "", "")
		}
		return v, nil

	case ".yaml", ".yml":
		var parsed any
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return cue.Value{}, fmt.Errorf("parsing YAML manifest %q: %w", name, err)
		}
		return l.encode(name, normalize(parsed))

	case ".toml":
		parsed := map[string]any{}
		if err := toml.Unmarshal(data, &parsed); err != nil {
			return cue.Value{}, fmt.Errorf("parsing TOML manifest %q: %w", name, err)
		}
		return l.encode(name, parsed)

	case ".json":
		v := l.ctx.CompileBytes(data, cue.Filename(name))
		if v.Err() != nil {
			return cue.Value{}, fmt.Errorf("parsing JSON manifest %q: %w", name, v.Err())
		}
		return v, nil

	default:
		return cue.Value{}, oerrors.Wrapf(oerrors.ErrInvalidArgument, "unsupported manifest format %q", ext)
	}
}

func (l *Loader) encode(name string, parsed any) (cue.Value, error) {
	if parsed == nil {
		parsed = map[string]any{}
	}
	v := l.ctx.Encode(parsed)
	if v.Err() != nil {
		return cue.Value{}, fmt.Errorf("converting manifest %q: %w", name, v.Err())
	}
	return v, nil
}

// normalize converts map[any]any nodes into map[string]any.
func normalize(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	}
	return v
}

func extension(name string) string {
	if i := strings.IndexAny(name, "#?&"); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(path.Ext(name))
}
