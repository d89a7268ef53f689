package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/rotorz/capri/internal/errors"
)

func newLoader(t *testing.T) *Loader {
	t.Helper()
	l, err := NewLoader()
	require.NoError(t, err)
	return l
}

func TestParseYAML(t *testing.T) {
	m, err := newLoader(t).Parse("fleet/car.yaml", []byte(`
requires:
  vehicle: ./vehicle
exports: Car
define:
  - kind: interface IWatchable
    body:
      members:
        watch: function
  - kind: class Car
    namespace: fleet
    body:
      extends: vehicle
      implements: [IWatchable]
      members:
        color: red
        watch: { native: car.watch }
        speed: { get: car.speed, set: car.setSpeed }
      static:
        create: { native: car.create }
`))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"vehicle": "./vehicle"}, m.Requires)
	assert.Equal(t, "Car", m.Exports)
	require.Len(t, m.Define, 2)

	iface := m.Define[0]
	assert.True(t, iface.IsInterface())
	assert.Equal(t, "IWatchable", iface.Name())
	assert.Equal(t, "function", iface.Body.Members["watch"])

	car := m.Define[1]
	assert.False(t, car.IsInterface())
	assert.Equal(t, "Car", car.Name())
	assert.Equal(t, "fleet", car.Namespace)
	assert.Equal(t, "vehicle", car.Body.Extends)
	assert.Equal(t, []any{"IWatchable"}, car.Body.Implements)
	assert.Equal(t, "red", car.Body.Members["color"])
	assert.Equal(t, map[string]any{"native": "car.watch"}, car.Body.Members["watch"])
	assert.Equal(t, map[string]any{"get": "car.speed", "set": "car.setSpeed"}, car.Body.Members["speed"])
	assert.Equal(t, map[string]any{"native": "car.create"}, car.Body.Static["create"])
}

func TestParseTOML(t *testing.T) {
	m, err := newLoader(t).Parse("geo/point.toml", []byte(`
exports = "Point"

[requires]
base = "./base"

[[define]]
kind = "class Point"
namespace = "geo"

[define.body]
extends = "base#Shape"

[define.body.members]
label = "point"
area = { native = "point.area" }
`))
	require.NoError(t, err)

	assert.Equal(t, "./base", m.Requires["base"])
	require.Len(t, m.Define, 1)
	assert.Equal(t, "class Point", m.Define[0].Kind)
	assert.Equal(t, "geo", m.Define[0].Namespace)
	assert.Equal(t, "base#Shape", m.Define[0].Body.Extends)
	assert.Equal(t, "point", m.Define[0].Body.Members["label"])
	assert.Equal(t, map[string]any{"native": "point.area"}, m.Define[0].Body.Members["area"])
}

func TestParseCUE(t *testing.T) {
	m, err := newLoader(t).Parse("shape.cue", []byte(`
exports: "Shape"
define: [{
	kind: "class Shape"
	body: abstract: members: area: "function"
}]
`))
	require.NoError(t, err)

	require.Len(t, m.Define, 1)
	assert.Equal(t, map[string]any{
		"members": map[string]any{"area": "function"},
	}, m.Define[0].Body.Abstract)
}

func TestParseJSON(t *testing.T) {
	m, err := newLoader(t).Parse("a.json", []byte(`{"define": [{"kind": "class A", "body": {"abstract": true}}]}`))
	require.NoError(t, err)
	require.Len(t, m.Define, 1)
	assert.Equal(t, true, m.Define[0].Body.Abstract)
}

func TestParseEmpty(t *testing.T) {
	m, err := newLoader(t).Parse("empty.yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, m.Define)
}

func TestParseRejectsInvalidManifests(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
		is   error
	}{
		{
			name: "unknown top-level key",
			file: "bad.yaml",
			data: "defines: []\n",
			is:   oerrors.ErrValidation,
		},
		{
			name: "unsupported kind",
			file: "bad.yaml",
			data: "define:\n  - kind: struct Point\n",
			is:   oerrors.ErrValidation,
		},
		{
			name: "kind without a name",
			file: "bad.yaml",
			data: "define:\n  - kind: class\n",
			is:   oerrors.ErrValidation,
		},
		{
			name: "abstract of the wrong type",
			file: "bad.yaml",
			data: "define:\n  - kind: class A\n    body:\n      abstract: 3\n",
			is:   oerrors.ErrValidation,
		},
		{
			name: "empty require reference",
			file: "bad.toml",
			data: "[requires]\nbase = \"\"\n",
			is:   oerrors.ErrValidation,
		},
		{
			name: "unsupported format",
			file: "bad.ini",
			data: "x=1",
			is:   oerrors.ErrInvalidArgument,
		},
	}

	l := newLoader(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Parse(tt.file, []byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestParseValidationDetail(t *testing.T) {
	_, err := newLoader(t).Parse("mods/bad.yaml", []byte("defines: []\n"))
	var detail *oerrors.DetailError
	require.ErrorAs(t, err, &detail)
	assert.Equal(t, "mods/bad.yaml", detail.Location)
	assert.NotEmpty(t, detail.Message)
	assert.NotEmpty(t, detail.Hint)
}

func TestParseSyntaxErrors(t *testing.T) {
	l := newLoader(t)
	for file, data := range map[string]string{
		"a.yaml": "define: [\n",
		"a.toml": "define = [",
		"a.cue":  "define: [",
		"a.json": "{",
	} {
		_, err := l.Parse(file, []byte(data))
		assert.Error(t, err, file)
	}
}

func TestSupports(t *testing.T) {
	assert.True(t, Supports("a/b.yaml"))
	assert.True(t, Supports("a/b.YML"))
	assert.True(t, Supports("a/b.toml?v=1"))
	assert.True(t, Supports("b.cue"))
	assert.False(t, Supports("b.js"))
	assert.False(t, Supports("b"))
}
