package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		want string
	}{
		{"op and path", Traversal("read dir", "a/b", fs.ErrPermission), "read dir a/b: permission denied"},
		{"path only", New(KindWrite, "", "x.md", ErrTargetCollision), "x.md: " + ErrTargetCollision.Error()},
		{"line", Extraction("a.js", 12, ErrUnterminatedComment), "extract a.js:12: unterminated comment block"},
		{"bare", New(KindConfiguration, "", "", ErrInvalidFormat), "configuration error: invalid output format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	base := Configuration("stat source", "/nope", ErrSourceNotFound)
	wrapped := fmt.Errorf("process: %w", base)

	require.True(t, IsKind(wrapped, KindConfiguration))
	assert.False(t, IsKind(wrapped, KindWrite))
	assert.True(t, errors.Is(wrapped, ErrSourceNotFound))
	assert.True(t, base.Fatal())
	assert.False(t, Write("rename", "x", fs.ErrExist).Fatal())
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.False(t, IsKind(nil, KindWrite))
}
