package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/agentflare-ai/go-cdoc/internal/errors"
)

func TestIsIgnored(t *testing.T) {
	cases := []struct {
		name     string
		rel      string
		patterns []string
		want     bool
	}{
		{"empty set excludes nothing", "a/b.js", nil, false},
		{"empty pattern skipped", "a/b.js", []string{""}, false},
		{"segment name", "a/ignored/c.js", []string{"ignored"}, true},
		{"segment name on dir itself", "a/ignored", []string{"ignored"}, true},
		{"segment anchored", "a/ignored-not/c.js", []string{"ignored"}, false},
		{"star within segment", "src/app.min.js", []string{"*.min.js"}, true},
		{"star does not match plain", "src/app.js", []string{"*.min.js"}, false},
		{"question mark", "lib/v1/x.js", []string{"v?"}, true},
		{"question mark single char", "lib/v10/x.js", []string{"v?"}, false},
		{"case sensitive", "Vendor/x.js", []string{"vendor"}, false},
		{"path pattern prefix", "src/gen/deep/x.go", []string{"src/gen"}, true},
		{"path pattern star stays in segment", "src/gen/deep/x.go", []string{"src/*/x.go"}, false},
		{"path pattern star", "src/gen/x.go", []string{"src/*/x.go"}, true},
		{"double star crosses segments", "src/gen/deep/x.go", []string{"src/**.go"}, true},
		{"leading slash stripped", "build/out.js", []string{"/build"}, true},
		{"leading slash anchors to root", "a/build/out.js", []string{"/build"}, false},
		{"trailing slash floats", "a/build/out.js", []string{"build/"}, true},
		{"dot slash stripped", "build/out.js", []string{"./build/"}, true},
		{"path pattern not floating", "x/src/gen/a.go", []string{"src/gen"}, false},
		{"double star prefix at top level", "gen/x.js", []string{"**/gen"}, true},
		{"double star prefix nested", "a/gen/x.js", []string{"**/gen"}, true},
		{"double star prefix whole name", "a/generated/x.js", []string{"**/gen"}, false},
		{"double star middle zero depth", "a/b/x.js", []string{"a/**/b"}, true},
		{"double star middle deep", "a/c/d/b/x.js", []string{"a/**/b"}, true},
		{"double star middle anchored", "c/a/b/x.js", []string{"a/**/b"}, false},
		{"two double stars", "x/y.js", []string{"**/x/**/y.js"}, true},
		{"alternatives", "a/node_modules/b.js", []string{"{vendor,node_modules}"}, true},
		{"any of several", "docs/x.md", []string{"vendor", "docs"}, true},
		{"root is never ignored", ".", []string{"*"}, false},
		{"invalid pattern skipped", "a/b.js", []string{"[abc"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsIgnored(tc.rel, tc.patterns))
		})
	}
}

func TestNewRejectsInvalidPattern(t *testing.T) {
	_, err := New([]string{"ok", "[abc"})
	require.Error(t, err)
	assert.True(t, derrors.IsKind(err, derrors.KindConfiguration))
	assert.ErrorIs(t, err, derrors.ErrInvalidPattern)
}

func TestMatchPatternReportsRule(t *testing.T) {
	m, err := New([]string{"vendor", "*.gen.go"})
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())

	p, ok := m.MatchPattern("pkg/api.gen.go")
	require.True(t, ok)
	assert.Equal(t, "*.gen.go", p)

	_, ok = m.MatchPattern("pkg/api.go")
	assert.False(t, ok)
}

func TestZeroDepthForms(t *testing.T) {
	assert.Equal(t, []string{"vendor"}, zeroDepthForms("vendor"))
	assert.Equal(t, []string{"**/gen", "gen"}, zeroDepthForms("**/gen"))
	assert.Equal(t, []string{"a/**/b", "a/b"}, zeroDepthForms("a/**/b"))
	assert.Equal(t, []string{"**/a/**/b", "a/**/b", "**/a/b", "a/b"}, zeroDepthForms("**/a/**/b"))
	assert.Equal(t, []string{"a**/b"}, zeroDepthForms("a**/b"))
}

func TestNilMatcher(t *testing.T) {
	var m *Matcher
	assert.False(t, m.Match("a"))
	assert.Equal(t, 0, m.Len())
}
