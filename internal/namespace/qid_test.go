package namespace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualifiedIDParts(t *testing.T) {
	tests := []struct {
		qid    string
		id     string
		base   string
		module string
	}{
		{"module:my/module#special.namespace", "namespace", "special", "my/module"},
		{"my.special.namespace", "namespace", "my.special", ""},
		{"module:my/module#Car", "Car", "", "my/module"},
		{"Car", "Car", "", ""},
		{"module:my/module", "", "", "my/module"},
	}

	for _, tt := range tests {
		t.Run(tt.qid, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.qid))
			assert.Equal(t, tt.base, BaseName(tt.qid))
			assert.Equal(t, tt.module, ModuleName(tt.qid))
		})
	}
}

func TestSplitAndQualify(t *testing.T) {
	q := Split("module:app/fleet#vehicles.Car")
	assert.Equal(t, QualifiedID{Leaf: "Car", Parent: "vehicles", Module: "app/fleet"}, q)
	assert.Equal(t, "module:app/fleet#vehicles.Car", q.String())

	assert.Equal(t, "module:m#A", Qualify("m", "A"))
	assert.Equal(t, "a.B", Qualify("", "a.B"))
	assert.Equal(t, "a.B", Split("a.B").String())
}
