package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotorz/capri/pkg/capri"
)

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"script", "classes", "cue"}, Names())
	assert.Len(t, List(), 3)
	assert.Equal(t, "classes", GetDefault().Name)
	assert.True(t, GetDefault().Default)

	_, err := Get("unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid templates: script, classes, cue")
}

func TestValidateProjectName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"shapes", false},
		{"my-shapes_2", false},
		{"", true},
		{"2shapes", true},
		{"-shapes", true},
		{"my shapes", true},
		{"a.b", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectName(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNativePrefix(t *testing.T) {
	assert.Equal(t, "my_shapes", NativePrefix("My-Shapes"))
	assert.Equal(t, "geo", NativePrefix("geo"))
}

func TestListTemplateFiles(t *testing.T) {
	files, err := ListTemplateFiles("classes")
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "main.js", "shapes/shape.yaml", "shapes/square.yaml"}, files)

	_, err = ListTemplateFiles("nope")
	assert.Error(t, err)
}

func TestRenderTemplateSubstitutes(t *testing.T) {
	files, err := NewRenderer(Data{ProjectName: "geo", Native: "geo", Template: "classes"}).RenderTemplate("classes")
	require.NoError(t, err)

	byPath := map[string]string{}
	for _, f := range files {
		byPath[f.Path] = string(f.Content)
	}
	assert.Contains(t, byPath["shapes/square.yaml"], "native: geo.square.area")
	assert.Contains(t, byPath["README.md"], "capri init --template classes")
	for path, content := range byPath {
		assert.NotContains(t, content, "{{", path)
	}
}

func TestRenderFileMissingKey(t *testing.T) {
	_, err := NewRenderer(Data{}).RenderFile("bad", []byte("{{.Missing}}"))
	assert.Error(t, err)
}

func TestGenerateLoads(t *testing.T) {
	tests := []struct {
		template  string
		wantOrder []string
		wantClass string
		unbound   []string
	}{
		{
			template:  "script",
			wantOrder: []string{"lib/util.js", "main.js"},
		},
		{
			template:  "classes",
			wantOrder: []string{"shapes/shape.yaml", "shapes/square.yaml", "main.js"},
			wantClass: "module:shapes/square.yaml#Square",
			unbound:   []string{"shapes.square.area", "shapes.square.scale"},
		},
		{
			template:  "cue",
			wantOrder: []string{"shapes/shape.cue", "shapes/circle.cue", "main.js"},
			wantClass: "module:shapes/circle.cue#Circle",
			unbound:   []string{"shapes.circle.area"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			res, err := NewGenerator(fs, Options{TargetDir: "/work/shapes", Template: tt.template}).Generate()
			require.NoError(t, err)
			assert.Equal(t, tt.template, res.Template)
			assert.Contains(t, res.Files, "main.js")

			rt, err := capri.NewRuntime(capri.WithFS(fs, res.TargetDir))
			require.NoError(t, err)
			_, err = rt.Load(context.Background(), res.Entry)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOrder, rt.Registry().Order())

			if tt.wantClass != "" {
				c, ok := rt.Class(tt.wantClass)
				require.True(t, ok)
				assert.False(t, c.IsAbstract())
			}
			assert.ElementsMatch(t, tt.unbound, rt.Natives().Unbound())
		})
	}
}

func TestGenerateDefaultsAndName(t *testing.T) {
	fs := afero.NewMemMapFs()
	res, err := NewGenerator(fs, Options{TargetDir: "/work/dir", Name: "Geo-Kit"}).Generate()
	require.NoError(t, err)
	assert.Equal(t, DefaultTemplateName, res.Template)

	data, err := afero.ReadFile(fs, "/work/dir/shapes/square.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "geo_kit.square.area")
}

func TestGenerateRefusesExisting(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/app/notes.txt", []byte("x"), 0o644))

	_, err := NewGenerator(fs, Options{TargetDir: "/work/app"}).Generate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not empty")

	_, err = NewGenerator(fs, Options{TargetDir: "/work/app", Force: true}).Generate()
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "/work/file", []byte("x"), 0o644))
	_, err = NewGenerator(fs, Options{TargetDir: "/work/file", Name: "app"}).Generate()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not a directory"))

	_, err = NewGenerator(fs, Options{TargetDir: "/work/9lives"}).Generate()
	assert.Error(t, err)
}
