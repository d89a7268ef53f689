// Package templates provides the project templates for capri init.
package templates

// Template describes one project template.
type Template struct {
	// Name is the template identifier (script, classes, cue).
	Name string

	// Description explains what the generated project contains.
	Description string

	// Default indicates if this is the default template when --template is omitted.
	Default bool
}

// Data holds the values passed to template rendering.
type Data struct {
	// ProjectName is the project name (from --name or the directory name).
	ProjectName string

	// Native is the prefix of native method references, derived from ProjectName.
	Native string

	// Template is the name of the template being rendered.
	Template string
}

// Options configures project generation.
type Options struct {
	// TargetDir is the directory to generate the project in.
	TargetDir string

	// Template is the template to use. Empty selects the default.
	Template string

	// Name overrides the project name.
	Name string

	// Force allows writing into a non-empty directory and overwriting files.
	Force bool
}

// File is one rendered template file.
type File struct {
	// Path is the slash-separated output path with the .tmpl suffix removed.
	Path string

	// Content is the rendered content.
	Content []byte
}

// Result describes a generated project.
type Result struct {
	// Files lists the created files, relative to TargetDir.
	Files []string

	// Template is the template that was used.
	Template string

	// TargetDir is the directory the project was written to.
	TargetDir string

	// Entry is the module reference of the project's entry module.
	Entry string
}
