package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotorz/capri/internal/output"
)

func TestVet(t *testing.T) {
	root := project(t)

	tests := []struct {
		name     string
		entry    string
		wantCode int
		wantOut  []string
		wantLog  string
	}{
		{
			name:     "valid graph",
			entry:    "app/main",
			wantCode: ExitSuccess,
			wantOut:  []string{"m:app/util.js", "loaded", "4 modules loaded, 2 classes and 1 interfaces defined"},
			wantLog:  "square.area",
		},
		{
			name:     "missing interface member",
			entry:    "bad/blob.yaml",
			wantCode: ExitValidationError,
			wantOut:  []string{"m:bad/blob.yaml", "failed"},
			wantLog:  "vet failed",
		},
		{
			name:     "missing module",
			entry:    "broken/main",
			wantCode: ExitNotFound,
			wantOut:  []string{"m:broken/gone.js"},
		},
		{
			name:     "cycle",
			entry:    "cycle/a",
			wantCode: ExitStalled,
			wantOut:  []string{"m:cycle/a.js", "stalled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, "vet", tt.entry, "--root", root)
			assert.Equal(t, tt.wantCode, ExitCodeFromError(res.err), "error: %v", res.err)

			out := output.StripANSI(res.stdout)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
			if tt.wantLog != "" {
				assert.Contains(t, res.log, tt.wantLog)
			}
		})
	}
}

func TestVetRequiresEntry(t *testing.T) {
	res := execute(t, "vet")
	require.Error(t, res.err)
}
