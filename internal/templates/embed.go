package templates

import (
	"embed"
	"io/fs"
)

//go:embed scaffold
var scaffoldFS embed.FS

// templateFS returns the files of the named template, rooted at the
// template directory.
func templateFS(name string) (fs.FS, error) {
	return fs.Sub(scaffoldFS, "scaffold/"+name)
}
