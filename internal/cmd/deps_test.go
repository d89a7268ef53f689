package cmd

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotorz/capri/internal/cmdutil"
	"github.com/rotorz/capri/internal/output"
)

func TestDepsText(t *testing.T) {
	root := project(t)
	res := execute(t, "deps", "app/main", "--root", root)
	require.NoError(t, res.err)

	out := output.StripANSI(res.stdout)
	assert.Contains(t, out, "app/main.js")
	assert.Contains(t, out, "shapes/square.yaml")
	assert.Contains(t, out, "Load order")
	assert.Contains(t, out, "m:shapes/shape.yaml")
}

func TestDepsJSON(t *testing.T) {
	for _, async := range []bool{false, true} {
		name := "sync"
		args := []string{"deps", "app/main", "-o", "json"}
		if async {
			name = "async"
			args = append(args, "--async", "--max-fetches", "2")
		}
		t.Run(name, func(t *testing.T) {
			root := project(t)
			res := execute(t, append(args, "--root", root)...)
			require.NoError(t, res.err)

			var report cmdutil.DepsReport
			require.NoError(t, json.Unmarshal([]byte(res.stdout), &report))
			assert.Equal(t, "app/main.js", report.Entry)
			if async {
				// util and square are fetched concurrently.
				assert.ElementsMatch(t, []string{"app/util.js", "shapes/shape.yaml", "shapes/square.yaml", "app/main.js"}, report.Order)
				assert.Less(t, indexOf(report.Order, "shapes/shape.yaml"), indexOf(report.Order, "shapes/square.yaml"))
				assert.Equal(t, "app/main.js", report.Order[len(report.Order)-1])
			} else {
				assert.Equal(t, []string{"app/util.js", "shapes/shape.yaml", "shapes/square.yaml", "app/main.js"}, report.Order)
			}
			for _, m := range report.Modules {
				assert.Equal(t, output.StatusLoaded, m.Status, m.Name)
			}
		})
	}
}

func TestDepsFailures(t *testing.T) {
	root := project(t)

	res := execute(t, "deps", "broken/main", "--root", root)
	require.Error(t, res.err)
	assert.Equal(t, ExitNotFound, ExitCodeFromError(res.err))
	var exitErr *ExitError
	require.True(t, errors.As(res.err, &exitErr))
	assert.True(t, exitErr.Printed)
	assert.Contains(t, res.log, "loading failed")
	assert.Contains(t, output.StripANSI(res.stdout), "broken/gone.js (failed)")

	res = execute(t, "deps", "cycle/a", "--root", root)
	require.Error(t, res.err)
	assert.Equal(t, ExitStalled, ExitCodeFromError(res.err))
	out := output.StripANSI(res.stdout)
	assert.Contains(t, out, "(cycle)")
	assert.Contains(t, out, "m:cycle/b.js")
}

func TestInvalidOutputFormat(t *testing.T) {
	res := execute(t, "deps", "app/main", "-o", "xml")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "unknown output format")
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
