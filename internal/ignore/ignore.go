// Package ignore decides which source paths are excluded from documentation.
//
// Patterns use glob syntax: `*` matches within one path segment, `**` crosses segments
// and `?` matches a single character. A pattern without a slash is tested against
// every segment of a path, so "vendor" excludes any directory or file named vendor.
// A pattern with a slash is tested against the whole relative path and each of its
// ancestors, so "src/gen" excludes everything below src/gen and "/build" only
// excludes the top-level build directory. A trailing slash is ignored. A `**/` segment
// also matches zero directories, so "**/gen" excludes a top-level gen and "a/**/b"
// excludes a/b.
package ignore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	derrors "github.com/agentflare-ai/go-cdoc/internal/errors"
)

const separator = '/'

type rule struct {
	pattern  string
	anchored bool
	globs    []glob.Glob
}

func (r rule) match(s string) bool {
	for _, g := range r.globs {
		if g.Match(s) {
			return true
		}
	}
	return false
}

// Matcher is a compiled, read-only set of ignore patterns. The zero value and a nil
// *Matcher match nothing. It is safe for concurrent use.
type Matcher struct {
	rules []rule
}

// New compiles patterns into a Matcher. Empty patterns are skipped.
func New(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range patterns {
		r, ok, err := compile(p)
		if err != nil {
			return nil, derrors.Configuration("compile pattern", p, fmt.Errorf("%w: %w", derrors.ErrInvalidPattern, err))
		}
		if ok {
			m.rules = append(m.rules, r)
		}
	}
	return m, nil
}

func compile(pattern string) (rule, bool, error) {
	p := strings.TrimSpace(filepath.ToSlash(pattern))
	p = strings.TrimRight(p, "/")
	anchored := strings.ContainsRune(p, separator)
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return rule{}, false, nil
	}
	var globs []glob.Glob
	for _, v := range zeroDepthForms(p) {
		g, err := glob.Compile(v, separator)
		if err != nil {
			return rule{}, false, err
		}
		globs = append(globs, g)
	}
	return rule{
		pattern:  pattern,
		anchored: anchored,
		globs:    globs,
	}, true, nil
}

// zeroDepthForms returns p followed by every form of p with one or more of its
// `**/` segments removed.
func zeroDepthForms(p string) []string {
	forms := []string{p}
	seen := map[string]struct{}{p: {}}
	for i := 0; i < len(forms); i++ {
		cur := forms[i]
		for j := 0; j+3 <= len(cur); j++ {
			if cur[j:j+3] != "**/" || (j > 0 && cur[j-1] != separator) {
				continue
			}
			next := cur[:j] + cur[j+3:]
			if _, ok := seen[next]; ok || next == "" {
				continue
			}
			seen[next] = struct{}{}
			forms = append(forms, next)
		}
	}
	return forms
}

// Len returns the number of active patterns.
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.rules)
}

// Match reports whether rel, a path relative to the traversal root, is ignored.
func (m *Matcher) Match(rel string) bool {
	_, ok := m.MatchPattern(rel)
	return ok
}

// MatchPattern is Match that also returns the first pattern that matched.
func (m *Matcher) MatchPattern(rel string) (string, bool) {
	if m == nil || len(m.rules) == 0 {
		return "", false
	}
	segments := splitPath(rel)
	if len(segments) == 0 {
		return "", false
	}
	for _, r := range m.rules {
		if r.anchored {
			for i := 1; i <= len(segments); i++ {
				if r.match(strings.Join(segments[:i], "/")) {
					return r.pattern, true
				}
			}
			continue
		}
		for _, seg := range segments {
			if r.match(seg) {
				return r.pattern, true
			}
		}
	}
	return "", false
}

// IsIgnored reports whether rel matches any of patterns. Patterns that fail to
// compile are skipped; use New to surface them as errors.
func IsIgnored(rel string, patterns []string) bool {
	m := &Matcher{}
	for _, p := range patterns {
		if r, ok, err := compile(p); err == nil && ok {
			m.rules = append(m.rules, r)
		}
	}
	return m.Match(rel)
}

func splitPath(rel string) []string {
	rel = filepath.ToSlash(rel)
	parts := strings.Split(rel, "/")
	segments := parts[:0]
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}
