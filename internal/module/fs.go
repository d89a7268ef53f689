package module

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	oerrors "github.com/rotorz/capri/internal/errors"
	"github.com/rotorz/capri/internal/output"
)

// FSHost reads module files below a root directory and compiles them with
// the compiler registered for their extension.
type FSHost struct {
	fs        afero.Fs
	root      string
	compilers map[string]Compiler
}

// NewFSHost creates a host reading from fsys below root.
func NewFSHost(fsys afero.Fs, root string) *FSHost {
	return &FSHost{
		fs:        fsys,
		root:      root,
		compilers: map[string]Compiler{},
	}
}

// Register associates a compiler with a file extension such as ".js".
func (h *FSHost) Register(ext string, c Compiler) {
	h.compilers[ext] = c
}

// Fetch implements SyncHost.
func (h *FSHost) Fetch(name string) (*Source, error) {
	clean := name
	if i := strings.IndexAny(clean, "#?&"); i >= 0 {
		clean = clean[:i]
	}
	file := filepath.Join(h.root, filepath.FromSlash(clean))

	data, err := afero.ReadFile(h.fs, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, oerrors.NewNotFoundError(
				fmt.Sprintf("module %q not found", name),
				file,
				"Check the module root (--root) and the default extension (--ext)",
			)
		}
		return nil, fmt.Errorf("reading module %q: %w", name, err)
	}

	ext := path.Ext(clean)
	c, ok := h.compilers[ext]
	if !ok {
		return nil, oerrors.Wrapf(oerrors.ErrInvalidArgument, "no compiler for %q files (module %q)", ext, name)
	}

	output.Debug("read module file", "module", name, "file", file, "bytes", len(data))
	src, err := c.Compile(name, data)
	if err != nil {
		return nil, fmt.Errorf("compiling module %q: %w", name, err)
	}
	src.Name = name
	return src, nil
}
