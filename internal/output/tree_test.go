package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTree(t *testing.T) {
	root := &TreeNode{Label: "app/main"}
	util := root.Add("app/util")
	util.Add("config")
	root.Add("app/a")
	root.Sort()

	assert.Equal(t, "app/a", root.Children[0].Label)

	out := StripANSI(RenderTree(root))
	lines := strings.Split(out, "\n")
	assert.Equal(t, "app/main", lines[0])
	assert.Contains(t, out, "app/util")
	assert.Contains(t, out, "config")
	assert.Less(t, strings.Index(out, "app/a"), strings.Index(out, "app/util"))
}

func TestTable(t *testing.T) {
	tbl := NewTable("CLASS", "KIND").Row("module:shapes/Circle#Circle", "class").Row("IShape", "interface")
	assert.Equal(t, 2, tbl.Len())

	out := StripANSI(tbl.String())
	assert.Contains(t, out, "CLASS")
	assert.Contains(t, out, "module:shapes/Circle#Circle")
	assert.Contains(t, out, "interface")
}

func TestTableFillsBlankCells(t *testing.T) {
	tbl := NewTable("CLASS", "EXTENDS", "ABSTRACT").Row("Shape").Row("Square", "Shape", "")

	out := StripANSI(tbl.String())
	lines := strings.Split(out, "\n")
	var shapeLine string
	for _, l := range lines {
		if strings.Contains(l, "Shape") && !strings.Contains(l, "Square") {
			shapeLine = l
		}
	}
	assert.Equal(t, 2, strings.Count(shapeLine, emptyCell))
}
