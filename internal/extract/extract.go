// Package extract finds documentation comments in source files.
//
// A file's comment syntax is picked from its extension (see SyntaxFor). Documentation
// comments are either block comments opened with the syntax's doc marker (`/**` for
// C-like languages) or runs of line comments carrying the line marker (`///`, `##`).
// Each comment becomes a Block: the first line, or its first sentence, is the summary;
// lines of the form `@name value` are tags; everything else is body text.
//
// Go comments only count when they start at column zero directly above a line of
// code. Indented comments, such as those on struct fields or inside grouped
// `var (...)` and `const (...)` declarations, are not extracted.
//
// Extraction never fails. Malformed input, such as a block comment still open at end
// of file, is closed at EOF and recorded on Node.Problems.
package extract

import (
	"bytes"
	"strings"

	derrors "github.com/agentflare-ai/go-cdoc/internal/errors"
)

// Tag is one `@name value` annotation.
type Tag struct {
	Name  string
	Value string
}

// Block is one documentation comment.
type Block struct {
	Summary string
	Body    string
	// Tags are kept in source order; names may repeat.
	Tags []Tag
	// Line is the 1-based line the comment starts on.
	Line int
	// Decl is the line of code that follows the comment, if any.
	Decl         string
	Unterminated bool
}

// Values returns every value recorded for tag name, in source order.
func (b Block) Values(name string) []string {
	var out []string
	for _, t := range b.Tags {
		if t.Name == name {
			out = append(out, t.Value)
		}
	}
	return out
}

// Node is the documentation extracted from one source file. A file without
// documentation yields a Node with no blocks.
type Node struct {
	Path     string
	Syntax   string
	Fence    string
	Blocks   []Block
	Problems []error
}

// Empty reports whether no documentation was found.
func (n *Node) Empty() bool {
	return len(n.Blocks) == 0
}

// Extractor extracts documentation using the built-in syntax table plus
// per-extension overrides.
type Extractor struct {
	overrides map[string]string
}

// NewExtractor returns an Extractor. overrides maps file extensions to syntax
// names (see Syntaxes); an unknown syntax name is a configuration error.
func NewExtractor(overrides map[string]string) (*Extractor, error) {
	norm, err := normalizeOverrides(overrides)
	if err != nil {
		return nil, err
	}
	return &Extractor{overrides: norm}, nil
}

// SyntaxFor returns the syntax used for path.
func (x *Extractor) SyntaxFor(path string) Syntax {
	if x == nil {
		return syntaxFor(path, nil)
	}
	return syntaxFor(path, x.overrides)
}

// Extract parses contents of the file at path.
func (x *Extractor) Extract(path string, contents []byte) *Node {
	syn := x.SyntaxFor(path)
	node := &Node{Path: path, Syntax: syn.Name, Fence: syn.Fence}
	if isBinary(contents) {
		node.Syntax = SyntaxNone.Name
		return node
	}
	s := &scanner{syn: syn, path: path, lines: splitLines(contents), node: node}
	s.run()
	return node
}

// Extract parses contents using the built-in syntax table.
func Extract(path string, contents []byte) *Node {
	var x *Extractor
	return x.Extract(path, contents)
}

const sniffLen = 8000

func isBinary(b []byte) bool {
	if len(b) > sniffLen {
		b = b[:sniffLen]
	}
	return bytes.IndexByte(b, 0) >= 0
}

func splitLines(b []byte) []string {
	b = bytes.TrimPrefix(b, []byte("\xef\xbb\xbf"))
	text := strings.ReplaceAll(string(b), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

type scanner struct {
	syn   Syntax
	path  string
	lines []string
	node  *Node
}

func (s *scanner) run() {
	for i := 0; i < len(s.lines); {
		line := s.lines[i]
		trimmed := strings.TrimSpace(line)
		if s.syn.Attached && indent(line) > 0 {
			i++
			continue
		}
		switch {
		case s.isBlockOpen(trimmed):
			i = s.readBlock(i)
		case s.isLineDoc(trimmed):
			i = s.readLines(i)
		default:
			i++
		}
	}
}

func (s *scanner) isBlockOpen(trimmed string) bool {
	open := s.syn.BlockOpen
	if open == "" || !strings.HasPrefix(trimmed, open) {
		return false
	}
	rest := trimmed[len(open):]
	if rest == "" {
		return true
	}
	// `/**/` is an empty comment and `/***` or `####` are banners.
	if strings.HasPrefix(rest, "/") || rest[0] == open[len(open)-1] {
		return false
	}
	return true
}

func (s *scanner) isLineDoc(trimmed string) bool {
	marker := s.syn.Line
	if marker == "" || !strings.HasPrefix(trimmed, marker) {
		return false
	}
	if s.isDirective(trimmed) {
		return false
	}
	rest := trimmed[len(marker):]
	return rest == "" || rest[0] != marker[len(marker)-1]
}

func (s *scanner) isDirective(trimmed string) bool {
	for _, d := range s.syn.Directives {
		if strings.HasPrefix(trimmed, d) {
			return true
		}
	}
	return false
}

func (s *scanner) isComment(trimmed string) bool {
	for _, c := range s.syn.Comments {
		if strings.HasPrefix(trimmed, c) {
			return true
		}
	}
	return false
}

// readBlock consumes a block comment starting at line i and returns the index of
// the first line after it.
func (s *scanner) readBlock(i int) int {
	return s.readBlockAt(i, strings.TrimSpace(s.lines[i]))
}

// readBlockAt reads a block comment whose opener starts text, the remainder of
// line i. A block opened on the same line as the previous close is read too.
func (s *scanner) readBlockAt(i int, text string) int {
	start := i
	open, closeMarker := s.syn.BlockOpen, s.syn.BlockClose
	first := text[len(open):]

	var content []string
	var trailing string
	closed := false
	if idx := strings.Index(first, closeMarker); idx >= 0 {
		content = append(content, first[:idx])
		trailing = strings.TrimSpace(first[idx+len(closeMarker):])
		closed = true
		i++
	} else {
		content = append(content, first)
		for i++; i < len(s.lines); i++ {
			line := s.lines[i]
			if idx := strings.Index(line, closeMarker); idx >= 0 {
				content = append(content, line[:idx])
				trailing = strings.TrimSpace(line[idx+len(closeMarker):])
				closed = true
				i++
				break
			}
			content = append(content, line)
		}
	}

	block := parseBlock(s.undecorate(content))
	block.Line = start + 1
	if !closed {
		block.Unterminated = true
		s.node.Problems = append(s.node.Problems, derrors.Extraction(s.path, block.Line, derrors.ErrUnterminatedComment))
	}

	if trailing != "" && s.isBlockOpen(trailing) {
		// The code follows the last block on the line.
		s.add(block)
		return s.readBlockAt(i-1, trailing)
	}

	decl, ok := s.declAfter(i)
	if trailing != "" && !s.isComment(trailing) {
		decl, ok = trailing, true
	}
	if s.syn.Attached && !ok {
		return i
	}
	block.Decl = decl
	s.add(block)
	return i
}

// readLines consumes a run of documentation line comments starting at line i.
func (s *scanner) readLines(i int) int {
	start := i
	var content []string
	for ; i < len(s.lines); i++ {
		line := s.lines[i]
		trimmed := strings.TrimSpace(line)
		if s.syn.Attached && indent(line) > 0 {
			break
		}
		if s.isDirective(trimmed) {
			continue
		}
		if !s.isLineDoc(trimmed) {
			break
		}
		text := strings.TrimPrefix(trimmed, s.syn.Line)
		content = append(content, strings.TrimPrefix(text, " "))
	}

	decl, ok := s.declAfter(i)
	if s.syn.Attached && !ok {
		return i
	}
	block := parseBlock(content)
	block.Line = start + 1
	block.Decl = decl
	s.add(block)
	return i
}

// declAfter returns the line of code following a comment that ends before line i.
// For attached syntaxes the code must start on line i itself.
func (s *scanner) declAfter(i int) (string, bool) {
	for ; i < len(s.lines); i++ {
		trimmed := strings.TrimSpace(s.lines[i])
		if trimmed == "" {
			if s.syn.Attached {
				return "", false
			}
			continue
		}
		if s.isComment(trimmed) || s.isBlockOpen(trimmed) {
			return "", false
		}
		return cleanDecl(trimmed), true
	}
	return "", false
}

func cleanDecl(line string) string {
	return strings.TrimSpace(strings.TrimSuffix(line, "{"))
}

func (s *scanner) undecorate(content []string) []string {
	deco := s.syn.Decoration
	if deco == "" {
		return content
	}
	out := make([]string, len(content))
	for i, line := range content {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, deco) {
			trimmed = strings.TrimPrefix(trimmed, deco)
			out[i] = strings.TrimPrefix(trimmed, " ")
			continue
		}
		out[i] = line
	}
	return out
}

func (s *scanner) add(b Block) {
	if b.Summary == "" && b.Body == "" && len(b.Tags) == 0 {
		return
	}
	s.node.Blocks = append(s.node.Blocks, b)
}
