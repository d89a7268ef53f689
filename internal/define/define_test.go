package define

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/rotorz/capri/internal/errors"
	"github.com/rotorz/capri/internal/namespace"
)

type call struct {
	ctx  *Context
	ns   *namespace.Node
	name string
	body any
}

func recorder(calls *[]call, result any) Handler {
	return func(ctx *Context, ns *namespace.Node, name string, body any) (any, error) {
		*calls = append(*calls, call{ctx, ns, name, body})
		return result, nil
	}
}

type fakeScope struct {
	name    string
	exports *namespace.Node
}

func (s *fakeScope) ModuleName() string { return s.name }
func (s *fakeScope) Exports() *namespace.Node { return s.exports }

func TestDefineShapes(t *testing.T) {
	root := namespace.New("")
	d := New(root)
	var calls []call
	d.Register("class", recorder(&calls, "built"))

	t.Run("kind and body", func(t *testing.T) {
		calls = nil
		v, err := d.Define("class Car", map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, "built", v)
		require.Len(t, calls, 1)
		assert.Equal(t, "Car", calls[0].name)
		assert.Same(t, root, calls[0].ns)
	})

	t.Run("string namespace is created under the root", func(t *testing.T) {
		calls = nil
		_, err := d.Define("fleet.vehicles", "class Truck", map[string]any{})
		require.NoError(t, err)
		want, ok := root.Resolve("fleet.vehicles", false)
		require.True(t, ok)
		assert.Same(t, want, calls[0].ns)
	})

	t.Run("node namespace is used as given", func(t *testing.T) {
		calls = nil
		node := namespace.New("custom")
		_, err := d.Define(node, "class Bus", map[string]any{})
		require.NoError(t, err)
		assert.Same(t, node, calls[0].ns)
	})

	t.Run("whitespace around kind and name", func(t *testing.T) {
		calls = nil
		_, err := d.Define("  class   Van ", map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, "Van", calls[0].name)
	})

	t.Run("tokens after the name are ignored", func(t *testing.T) {
		calls = nil
		_, err := d.Define("class Truck extends Van", map[string]any{})
		require.NoError(t, err)
		require.Len(t, calls, 1)
		assert.Equal(t, "Truck", calls[0].name)
	})
}

func TestDefineErrors(t *testing.T) {
	d := New(namespace.New(""))
	d.Register("class", recorder(new([]call), nil))

	tests := []struct {
		name     string
		args     []any
		sentinel error
		message  string
	}{
		{"no arguments", nil, oerrors.ErrInvalidArgument, "expected definition string"},
		{"non-string kind", []any{42, map[string]any{}}, oerrors.ErrInvalidArgument, "expected definition string"},
		{"missing body", []any{"class Car"}, oerrors.ErrInvalidArgument, "missing body of definition"},
		{"nil body", []any{"class Car", nil}, oerrors.ErrInvalidArgument, "missing body of definition"},
		{"kind without name", []any{"class", map[string]any{}}, oerrors.ErrInvalidArgument, "must be"},
		{"bad namespace type", []any{3.5, "class Car", map[string]any{}}, oerrors.ErrInvalidArgument, "namespace must be"},
		{"unknown kind", []any{"widget Foo", map[string]any{}}, oerrors.ErrUnknownDefinitionKind, `unknown definition type "widget"`},
		{"too many arguments", []any{"a", "b", "c", "d"}, oerrors.ErrInvalidArgument, "expected definition string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Define(tt.args...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestRegisterCustomKind(t *testing.T) {
	d := New(namespace.New(""))
	var classCalls, widgetCalls []call
	d.Register("class", recorder(&classCalls, "class"))
	d.Register("widget", recorder(&widgetCalls, "widget"))

	v, err := d.Define("widget MyWidget", map[string]any{"size": 3})
	require.NoError(t, err)
	assert.Equal(t, "widget", v)
	assert.Empty(t, classCalls)
	require.Len(t, widgetCalls, 1)
	assert.Equal(t, "MyWidget", widgetCalls[0].name)
	assert.Equal(t, []string{"class", "widget"}, d.Kinds())
}

func TestRegisterLastWins(t *testing.T) {
	d := New(namespace.New(""))
	var first, second []call
	d.Register("class", recorder(&first, 1))
	d.Register("class", recorder(&second, 2))

	v, err := d.Define("class A", struct{}{})
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Empty(t, first)
	assert.Len(t, second, 1)
}

func TestDefineUsesModuleScope(t *testing.T) {
	root := namespace.New("")
	d := New(root)
	var calls []call
	d.Register("class", recorder(&calls, nil))

	exports := namespace.New("exports")
	var current Scope
	d.SetScope(func() Scope { return current })

	current = &fakeScope{name: "app/main", exports: exports}
	_, err := d.Define("class Car", struct{}{})
	require.NoError(t, err)
	assert.Same(t, exports, calls[0].ns)
	assert.Equal(t, "app/main", calls[0].ctx.Module)
	assert.Equal(t, "module:app/main#Car", calls[0].ctx.Qualify("Car"))

	current = nil
	_, err = d.Define("class Bus", struct{}{})
	require.NoError(t, err)
	assert.Same(t, root, calls[1].ns)
	assert.Equal(t, "", calls[1].ctx.Module)
	assert.Equal(t, "Bus", calls[1].ctx.Qualify("Bus"))
}

func TestContextLookup(t *testing.T) {
	root := namespace.New("")
	root.Set("Shared", "global")
	root.Set("Only", "global-only")
	exports := namespace.New("exports")
	exports.Set("Shared", "local")

	ctx := &Context{Exports: exports, Root: root}

	v, ok := ctx.Lookup("Shared")
	require.True(t, ok)
	assert.Equal(t, "local", v)

	v, ok = ctx.Lookup("Only")
	require.True(t, ok)
	assert.Equal(t, "global-only", v)

	_, ok = ctx.Lookup("Missing")
	assert.False(t, ok)
}
