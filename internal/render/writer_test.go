package render

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/agentflare-ai/go-cdoc/internal/errors"
)

func listFiles(t *testing.T, fs afero.Fs, root string) []string {
	t.Helper()
	var out []string
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			rel, _ := filepath.Rel(root, path)
			out = append(out, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestWriterCreatesDirectoriesAndReplaces(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs, "/out")

	require.NoError(t, w.Write(Artifact{Source: "a/b/c.js", Rel: "a/b/c.md", Content: []byte("one")}))
	require.NoError(t, w.Write(Artifact{Source: "a/b/c.js", Rel: "a/b/c.md", Content: []byte("two")}))

	data, err := afero.ReadFile(fs, "/out/a/b/c.md")
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
	assert.Equal(t, []string{"a/b/c.md"}, listFiles(t, fs, "/out"))

	info, err := fs.Stat("/out/a/b/c.md")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriterCollisionFirstClaimWins(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs, "/out")

	require.NoError(t, w.Write(Artifact{Source: "x.js", Rel: "x.md", Content: []byte("js")}))
	err := w.Write(Artifact{Source: "x.coffee", Rel: "x.md", Content: []byte("coffee")})

	require.Error(t, err)
	assert.ErrorIs(t, err, derrors.ErrTargetCollision)
	assert.True(t, derrors.IsKind(err, derrors.KindWrite))
	data, err := afero.ReadFile(fs, "/out/x.md")
	require.NoError(t, err)
	assert.Equal(t, "js", string(data))
}

func TestWriterRejectsEscapingPaths(t *testing.T) {
	w := NewWriter(afero.NewMemMapFs(), "/out")
	err := w.Write(Artifact{Source: "x", Rel: "../x.md"})
	assert.ErrorIs(t, err, derrors.ErrOutsideTarget)
}

func TestWriterFailureLeavesNothingBehind(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/out/a/b.md", 0o755))
	w := NewWriter(base, "/out")

	err := w.Write(Artifact{Source: "a/b.js", Rel: "a/b.md", Content: []byte("data")})

	require.Error(t, err)
	assert.True(t, derrors.IsKind(err, derrors.KindWrite))
	assert.Empty(t, listFiles(t, base, "/out"), "temporary file must be removed")
}

func TestWriterReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	w := NewWriter(fs, "/out")

	err := w.Write(Artifact{Source: "a.js", Rel: "a.md", Content: []byte("x")})

	require.Error(t, err)
	assert.True(t, derrors.IsKind(err, derrors.KindWrite))
	_, statErr := fs.Stat("/out/a.md")
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriterConcurrentSharedDirectories(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(afero.NewOsFs(), root)

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := "deep/shared/dir/f" + strings.Repeat("x", i+1)
			errs <- w.Write(Artifact{Source: name + ".js", Rel: name + ".md", Content: []byte(name)})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(filepath.Join(root, "deep", "shared", "dir"))
	require.NoError(t, err)
	assert.Len(t, entries, 32)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), e.Name())
	}
}
