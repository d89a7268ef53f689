package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		ref        string
		relativeTo string
		ext        string
		want       string
	}{
		{"appends default extension", "my/math", "", ".js", "my/math.js"},
		{"keeps existing extension", "style.css", "", ".js", "style.css"},
		{"sibling reference", "./Vehicle", "fleet/Car.js", ".js", "fleet/Vehicle.js"},
		{"parent reference", "../../Cool", "a/b/c/d.js", ".js", "a/Cool.js"},
		{"parent past the root", "../x", "d.js", ".js", "x.js"},
		{"sibling of the main module", "./app", "", ".js", "app.js"},
		{"backslashes become slashes", `lib\util`, "", ".js", "lib/util.js"},
		{"query string is left alone", "api/load?id=3", "", ".js", "api/load?id=3"},
		{"fragment is left alone", "page#top", "", ".js", "page#top"},
		{"no extension configured", "my/math", "", "", "my/math"},
		{"dotted directory without extension", "v1.2/util", "", ".js", "v1.2/util.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.ref, tt.relativeTo, tt.ext))
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	for _, name := range []string{"a.js", "my/math/Vector.js", "x?y", "style.css", "deep/er/path.yaml"} {
		once := Resolve(name, "", ".js")
		require.Equal(t, name, once)
		assert.Equal(t, once, Resolve(once, "some/other.js", ".js"))
	}
}

func TestRecordModuleName(t *testing.T) {
	rec := newRecord("my/math/Vector.js", ".js")
	assert.Equal(t, "my/math/Vector", rec.ModuleName())
	assert.Equal(t, "my/math/Vector.js", rec.Name())
	assert.Equal(t, Pending, rec.State())
	assert.Same(t, rec.Exports(), rec.Value())

	assert.Equal(t, "app.yaml", newRecord("app.yaml", ".js").ModuleName())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "loaded", Loaded.String())
	assert.Equal(t, "unknown", State(9).String())
}
