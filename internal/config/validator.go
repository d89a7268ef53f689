package config

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	oerrors "github.com/rotorz/capri/internal/errors"
)

//go:embed schema.cue
var schemaCUE []byte

// Issue is one schema violation.
type Issue struct {
	// Path is the dotted key the violation was found at.
	Path string

	// Message describes the violation.
	Message string
}

func (i Issue) String() string {
	return i.Path + ": " + i.Message
}

// SchemaError lists the schema violations of a configuration. It matches
// ErrValidation.
type SchemaError struct {
	File   string
	Issues []Issue
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	msg := "config validation failed: " + strings.Join(parts, "; ")
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	return msg
}

func (e *SchemaError) Unwrap() error { return oerrors.ErrValidation }

// Validator checks configuration against the #Config schema. The schema is
// closed, so unknown keys in a config file are reported.
type Validator struct {
	fs     afero.Fs
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator(opts ...Option) (*Validator, error) {
	ctx := cuecontext.New()
	compiled := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if compiled.Err() != nil {
		return nil, fmt.Errorf("compiling config schema: %w", compiled.Err())
	}
	schema := compiled.LookupPath(cue.ParsePath("#Config"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("looking up #Config: %w", schema.Err())
	}
	return &Validator{fs: newOptions(opts).fs, ctx: ctx, schema: schema}, nil
}

// Validate checks a decoded configuration. A nil config is valid.
func (v *Validator) Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}
	return v.check(v.ctx.Encode(cfg), "")
}

// ValidateFile checks the raw contents of the config file at path.
func (v *Validator) ValidateFile(path string) error {
	data, err := afero.ReadFile(v.fs, path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return oerrors.NewValidationError("config file is not valid YAML: "+err.Error(), path, "", "")
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return v.check(v.ctx.Encode(raw), path)
}

func (v *Validator) check(value cue.Value, file string) error {
	if value.Err() != nil {
		return fmt.Errorf("encoding config: %w", value.Err())
	}
	err := v.schema.Unify(value).Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	schemaErr := &SchemaError{File: file}
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		path := strings.Join(e.Path(), ".")
		if path == "" {
			path = "config"
		}
		schemaErr.Issues = append(schemaErr.Issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
	}
	return schemaErr
}
