package templates

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/rotorz/capri/internal/output"
)

// Generator writes projects from templates.
type Generator struct {
	fs   afero.Fs
	opts Options
}

// NewGenerator creates a generator writing to fsys.
func NewGenerator(fsys afero.Fs, opts Options) *Generator {
	if opts.Template == "" {
		opts.Template = DefaultTemplateName
	}
	return &Generator{fs: fsys, opts: opts}
}

// Generate renders the template into the target directory.
func (g *Generator) Generate() (*Result, error) {
	tmpl, err := Get(g.opts.Template)
	if err != nil {
		return nil, err
	}

	name := g.opts.Name
	if name == "" {
		abs, err := filepath.Abs(g.opts.TargetDir)
		if err != nil {
			return nil, fmt.Errorf("resolving target directory: %w", err)
		}
		name = filepath.Base(abs)
	}
	if err := ValidateProjectName(name); err != nil {
		return nil, err
	}

	if err := g.checkTargetDir(); err != nil {
		return nil, err
	}

	data := Data{
		ProjectName: name,
		Native:      NativePrefix(name),
		Template:    tmpl.Name,
	}

	output.Debug("generating project",
		"template", tmpl.Name,
		"name", name,
		"target", g.opts.TargetDir)

	files, err := NewRenderer(data).RenderTemplate(tmpl.Name)
	if err != nil {
		return nil, err
	}

	created := make([]string, 0, len(files))
	for _, f := range files {
		target := filepath.Join(g.opts.TargetDir, filepath.FromSlash(f.Path))

		if !g.opts.Force {
			exists, err := afero.Exists(g.fs, target)
			if err != nil {
				return nil, fmt.Errorf("checking %s: %w", target, err)
			}
			if exists {
				return nil, fmt.Errorf("file %s already exists; use --force to overwrite", target)
			}
		}

		if err := g.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", filepath.Dir(target), err)
		}
		if err := afero.WriteFile(g.fs, target, f.Content, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", target, err)
		}

		output.Debug("created file", "path", f.Path)
		created = append(created, path.Clean(f.Path))
	}

	return &Result{
		Files:     created,
		Template:  tmpl.Name,
		TargetDir: g.opts.TargetDir,
		Entry:     EntryModule,
	}, nil
}

// checkTargetDir rejects a target that is a file, or a non-empty directory
// without Force.
func (g *Generator) checkTargetDir() error {
	exists, err := afero.Exists(g.fs, g.opts.TargetDir)
	if err != nil {
		return fmt.Errorf("checking target directory: %w", err)
	}
	if !exists {
		return nil
	}

	isDir, err := afero.IsDir(g.fs, g.opts.TargetDir)
	if err != nil {
		return fmt.Errorf("checking target directory: %w", err)
	}
	if !isDir {
		return fmt.Errorf("%s is not a directory", g.opts.TargetDir)
	}

	empty, err := afero.IsEmpty(g.fs, g.opts.TargetDir)
	if err != nil {
		return fmt.Errorf("reading target directory: %w", err)
	}
	if !empty && !g.opts.Force {
		return fmt.Errorf("directory %s is not empty; use --force to overwrite existing files", g.opts.TargetDir)
	}
	return nil
}
