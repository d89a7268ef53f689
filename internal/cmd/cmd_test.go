package cmd

import (
	"bytes"
	"testing"

	"github.com/rotorz/capri/internal/output"
	"github.com/rotorz/capri/internal/testutil"
)

// result captures one CLI invocation.
type result struct {
	stdout string
	stderr string
	log    string
	err    error
}

// execute runs the root command with args in an isolated home directory.
func execute(t *testing.T, args ...string) result {
	t.Helper()
	testutil.IsolateHome(t)
	return executeHere(t, args...)
}

// executeHere runs the root command without resetting the environment.
func executeHere(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr, logs bytes.Buffer
	output.SetLogWriter(&logs)
	t.Cleanup(func() { output.SetLogWriter(&bytes.Buffer{}) })

	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()

	return result{stdout: stdout.String(), stderr: stderr.String(), log: logs.String(), err: err}
}

const (
	shapeYAML = `
exports: Shape
define:
  - kind: class Shape
    body:
      abstract:
        members:
          area: function
      members:
        sides: 0
`
	squareYAML = `
requires:
  shape: ./shape.yaml
exports: Square
define:
  - kind: interface IDrawable
    body:
      members:
        draw: function
  - kind: class Square
    body:
      extends: shape
      implements: [IDrawable]
      members:
        sides: 4
        area: { native: square.area }
        draw: { native: square.draw }
`
	blobYAML = `
define:
  - kind: interface IDrawable
    body:
      members:
        draw: function
  - kind: class Blob
    body:
      implements: [IDrawable]
`
)

// project writes a module tree and returns its root.
func project(t *testing.T) string {
	t.Helper()
	return testutil.WriteTree(t, map[string]string{
		"app/main.js":        `var util = require("./util"); var sq = require("../shapes/square.yaml");`,
		"app/util.js":        "// no dependencies\n",
		"shapes/shape.yaml":  shapeYAML,
		"shapes/square.yaml": squareYAML,
		"bad/blob.yaml":      blobYAML,
		"cycle/a.js":         `require("./b")`,
		"cycle/b.js":         `require("./a")`,
		"broken/main.js":     `require("./gone")`,
	})
}
