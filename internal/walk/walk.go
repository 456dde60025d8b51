// Package walk enumerates a source tree for documentation extraction.
package walk

import (
	"iter"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/afero"

	derrors "github.com/agentflare-ai/go-cdoc/internal/errors"
	"github.com/agentflare-ai/go-cdoc/internal/ignore"
)

// Kind distinguishes files from directories.
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

func (k Kind) String() string {
	if k == KindDir {
		return "dir"
	}
	return "file"
}

// Entry is one file or directory met during the walk.
type Entry struct {
	// Path is the entry's path on the walked filesystem.
	Path string
	// Rel is the slash-separated path relative to the walk root.
	Rel  string
	Kind Kind
	// Ignored is set when Rel matched an ignore pattern. Ignored directories are
	// never descended into.
	Ignored bool
	// Pattern is the ignore pattern that matched, if any.
	Pattern string
}

// Walker produces entries in depth-first pre-order, sorted by name within each
// directory.
type Walker struct {
	fs      afero.Fs
	root    string
	matcher *ignore.Matcher
	exclude map[string]struct{}
}

// New returns a Walker over root. A nil matcher ignores nothing.
func New(fs afero.Fs, root string, m *ignore.Matcher) *Walker {
	return &Walker{
		fs:      fs,
		root:    filepath.Clean(root),
		matcher: m,
		exclude: make(map[string]struct{}),
	}
}

// Exclude skips the given paths silently. They are neither yielded nor descended.
func (w *Walker) Exclude(paths ...string) {
	for _, p := range paths {
		w.exclude[filepath.Clean(p)] = struct{}{}
	}
}

// Entries returns the single-pass sequence of entries below the root. Per-entry
// failures are yielded with a traversal error and the walk moves on to the next
// sibling.
func (w *Walker) Entries() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		info, err := w.fs.Stat(w.root)
		if err != nil {
			yield(Entry{Path: w.root, Rel: ".", Kind: KindDir}, derrors.Traversal("stat", w.root, err))
			return
		}
		w.walkDir(w.root, "", []os.FileInfo{info}, yield)
	}
}

func (w *Walker) walkDir(dir, rel string, ancestors []os.FileInfo, yield func(Entry, error) bool) bool {
	infos, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		display := rel
		if display == "" {
			display = "."
		}
		return yield(Entry{Path: dir, Rel: display, Kind: KindDir}, derrors.Traversal("read directory", display, err))
	}
	for _, info := range infos {
		entry := Entry{
			Path: filepath.Join(dir, info.Name()),
			Rel:  path.Join(rel, info.Name()),
		}
		if _, skip := w.exclude[entry.Path]; skip {
			continue
		}
		if info.IsDir() {
			entry.Kind = KindDir
		}
		if p, ok := w.matcher.MatchPattern(entry.Rel); ok {
			entry.Ignored = true
			entry.Pattern = p
			if !yield(entry, nil) {
				return false
			}
			continue
		}

		isLink := info.Mode()&os.ModeSymlink != 0
		if isLink {
			resolved, err := w.fs.Stat(entry.Path)
			if err != nil {
				if !yield(entry, derrors.Traversal("resolve symlink", entry.Rel, err)) {
					return false
				}
				continue
			}
			info = resolved
			if info.IsDir() {
				entry.Kind = KindDir
			}
		}

		switch {
		case info.IsDir():
			if isLink && cyclic(info, ancestors) {
				if !yield(entry, derrors.Traversal("follow symlink", entry.Rel, derrors.ErrSymlinkCycle)) {
					return false
				}
				continue
			}
			if !yield(entry, nil) {
				return false
			}
			chain := append(ancestors[:len(ancestors):len(ancestors)], info)
			if !w.walkDir(entry.Path, entry.Rel, chain, yield) {
				return false
			}
		case info.Mode().IsRegular():
			if !yield(entry, nil) {
				return false
			}
		default:
			// devices, sockets and pipes carry no documentation
		}
	}
	return true
}

func cyclic(info os.FileInfo, ancestors []os.FileInfo) bool {
	for _, a := range ancestors {
		if os.SameFile(info, a) {
			return true
		}
	}
	return false
}
