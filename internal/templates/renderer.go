package templates

import (
	"bytes"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"text/template"
)

const templateSuffix = ".tmpl"

// Renderer renders template files with data substitution.
type Renderer struct {
	data Data
}

// NewRenderer creates a renderer for data.
func NewRenderer(data Data) *Renderer {
	return &Renderer{data: data}
}

// RenderFile renders a single template.
func (r *Renderer) RenderFile(name string, content []byte) ([]byte, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r.data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// RenderTemplate renders every file of the named template, sorted by path.
func (r *Renderer) RenderTemplate(name string) ([]File, error) {
	fsys, err := templateFS(name)
	if err != nil {
		return nil, err
	}

	var files []File
	err = walkTemplates(fsys, func(path string) error {
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		rendered, err := r.RenderFile(path, content)
		if err != nil {
			return err
		}
		files = append(files, File{Path: strings.TrimSuffix(path, templateSuffix), Content: rendered})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rendering template %s: %w", name, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// ListTemplateFiles returns the output paths of the named template without
// rendering it.
func ListTemplateFiles(name string) ([]string, error) {
	if _, err := Get(name); err != nil {
		return nil, err
	}
	fsys, err := templateFS(name)
	if err != nil {
		return nil, err
	}

	var paths []string
	err = walkTemplates(fsys, func(path string) error {
		paths = append(paths, strings.TrimSuffix(path, templateSuffix))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing template %s: %w", name, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// walkTemplates calls fn for every .tmpl file of fsys.
func walkTemplates(fsys fs.FS, fn func(path string) error) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, templateSuffix) {
			return nil
		}
		return fn(path)
	})
}
