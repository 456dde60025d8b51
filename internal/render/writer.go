package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	derrors "github.com/agentflare-ai/go-cdoc/internal/errors"
)

// Writer commits artifacts below a target directory. Each write lands atomically:
// content goes to a temporary file next to the destination which is then renamed
// over it, so a failed write leaves no partial file behind. Writer is safe for
// concurrent use.
type Writer struct {
	fs   afero.Fs
	root string

	mu      sync.Mutex
	claimed map[string]string
}

// NewWriter returns a Writer rooted at targetDir.
func NewWriter(fs afero.Fs, targetDir string) *Writer {
	return &Writer{
		fs:      fs,
		root:    filepath.Clean(targetDir),
		claimed: make(map[string]string),
	}
}

// Root returns the target directory.
func (w *Writer) Root() string {
	return w.root
}

// Path returns the filesystem path of a target relative path.
func (w *Writer) Path(rel string) string {
	return filepath.Join(w.root, filepath.FromSlash(rel))
}

// Claim reserves target for source. The first claim wins; a later claim by a
// different source fails with ErrTargetCollision.
func (w *Writer) Claim(source, target string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if owner, ok := w.claimed[target]; ok && owner != source {
		return derrors.Write("claim target", source, fmt.Errorf("%w: %s (from %s)", derrors.ErrTargetCollision, target, owner))
	}
	w.claimed[target] = source
	return nil
}

// Write claims the artifact's target and commits its content.
func (w *Writer) Write(a Artifact) error {
	if !filepath.IsLocal(filepath.FromSlash(a.Rel)) {
		return derrors.Write("write", a.Rel, derrors.ErrOutsideTarget)
	}
	if err := w.Claim(a.Source, a.Rel); err != nil {
		return err
	}
	return w.commit(w.Path(a.Rel), a.Content)
}

func (w *Writer) commit(dest string, content []byte) error {
	dir := filepath.Dir(dest)
	if err := w.fs.MkdirAll(dir, 0o755); err != nil {
		return derrors.Write("create directory", dir, err)
	}
	tmp, err := afero.TempFile(w.fs, dir, "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return derrors.Write("create temp file", dest, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = w.fs.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return derrors.Write("write", dest, err)
	}
	if err := tmp.Sync(); err != nil {
		return derrors.Write("sync", dest, err)
	}
	if err := tmp.Close(); err != nil {
		return derrors.Write("close", dest, err)
	}
	if err := w.fs.Chmod(tmp.Name(), 0o644); err != nil {
		return derrors.Write("chmod", dest, err)
	}
	if info, err := w.fs.Stat(dest); err == nil && info.IsDir() {
		return derrors.Write("replace", dest, fmt.Errorf("destination is a directory: %w", os.ErrExist))
	}
	if err := w.fs.Rename(tmp.Name(), dest); err != nil {
		return derrors.Write("replace", dest, err)
	}
	committed = true
	return nil
}
