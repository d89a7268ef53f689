package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRequires(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single and double quoted",
			text: `function(require, define, exports) {
				var a = require('./A');
				var b = require( "lib/B" );
			}`,
			want: []string{"./A", "lib/B"},
		},
		{
			name: "comments and strings are ignored",
			text: `function(require) {
				// require('./C')
				/* require("./D")
				   spans lines */
				var s = "require('./E')";
				return require('./F');
			}`,
			want: []string{"./F"},
		},
		{
			name: "aliased require",
			text: `function(req, define) { req('./X'); require('./Y'); }`,
			want: []string{"./X"},
		},
		{
			name: "alias is matched as a whole word",
			text: `function(r) { r('./A'); bar('./B'); }`,
			want: []string{"./A"},
		},
		{
			name: "no function header defaults to require",
			text: `require('app/main')`,
			want: []string{"app/main"},
		},
		{
			name: "non-literal arguments are skipped",
			text: `function(require) { require(name); require('./' + x); }`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractRequires(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSourceDependencies(t *testing.T) {
	explicit := &Source{Text: `function(require) { require('./scanned') }`, Requires: []string{"./declared"}}
	deps, err := explicit.Dependencies()
	require.NoError(t, err)
	assert.Equal(t, []string{"./declared"}, deps, "explicit lists win over the text scan")

	scanned := &Source{Text: `function(require) { require('./scanned') }`}
	deps, err = scanned.Dependencies()
	require.NoError(t, err)
	assert.Equal(t, []string{"./scanned"}, deps)

	empty := &Source{}
	deps, err = empty.Dependencies()
	require.NoError(t, err)
	assert.Empty(t, deps)
}
