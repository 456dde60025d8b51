// Package render turns extracted documentation into files under the target tree.
package render

import (
	"bytes"
	"fmt"
	"html"
	"path"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"

	derrors "github.com/agentflare-ai/go-cdoc/internal/errors"
	"github.com/agentflare-ai/go-cdoc/internal/extract"
)

// Format is an output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat accepts "markdown", "md", "html" or "htm". Empty means Markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	default:
		return "", derrors.Configuration("parse format", "", fmt.Errorf("%w: %q", derrors.ErrInvalidFormat, s))
	}
}

// Ext is the file extension of documents in this format.
func (f Format) Ext() string {
	if f == FormatHTML {
		return ".html"
	}
	return ".md"
}

// Placeholder is rendered for files without documentation.
const Placeholder = "_No documentation found._"

// Artifact is a rendered document and where it goes.
type Artifact struct {
	// Source is the slash-separated source path relative to the source root.
	Source string
	// Rel is the slash-separated output path relative to the target root.
	Rel     string
	Content []byte
	// Summary is the first block summary, used by the index.
	Summary string
}

// IndexEntry is one line of the index document.
type IndexEntry struct {
	Title   string
	Link    string
	Summary string
}

// Renderer renders Nodes in one format.
type Renderer interface {
	Format() Format
	Render(node *extract.Node) (Artifact, error)
	Index(entries []IndexEntry) Artifact
}

// New returns the renderer for f.
func New(f Format) (Renderer, error) {
	switch f {
	case FormatMarkdown, "":
		return markdownRenderer{}, nil
	case FormatHTML:
		return &htmlRenderer{md: goldmark.New()}, nil
	default:
		return nil, derrors.Configuration("new renderer", "", fmt.Errorf("%w: %q", derrors.ErrInvalidFormat, string(f)))
	}
}

// TargetRel maps a source relative path to its output path: the extension is
// replaced by the format's. The result must stay inside the target root.
func TargetRel(source string, f Format) (string, error) {
	clean := path.Clean(filepath.ToSlash(source))
	if clean == "." || !filepath.IsLocal(filepath.FromSlash(clean)) {
		return "", derrors.Write("map target", source, derrors.ErrOutsideTarget)
	}
	dir, base := path.Split(clean)
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem = base
	}
	return dir + stem + f.Ext(), nil
}

type markdownRenderer struct{}

func (markdownRenderer) Format() Format { return FormatMarkdown }

func (r markdownRenderer) Render(node *extract.Node) (Artifact, error) {
	rel, err := TargetRel(node.Path, FormatMarkdown)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Source:  node.Path,
		Rel:     rel,
		Content: r.document(node),
		Summary: firstSummary(node),
	}, nil
}

func (markdownRenderer) document(node *extract.Node) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", node.Path)
	if node.Empty() {
		fmt.Fprintln(&buf, Placeholder)
		return buf.Bytes()
	}
	for i, b := range node.Blocks {
		if i > 0 {
			buf.WriteString("\n")
		}
		renderBlock(&buf, b, node.Fence)
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	return append(out, '\n')
}

func renderBlock(buf *bytes.Buffer, b extract.Block, fence string) {
	var sections []string
	if title := heading(b); title != "" {
		sections = append(sections, "## "+title)
	}
	if b.Decl != "" && b.Summary != "" {
		sections = append(sections, codeBlock(fence, b.Decl))
	}
	if b.Body != "" {
		sections = append(sections, b.Body)
	}
	if len(b.Tags) > 0 {
		lines := make([]string, 0, len(b.Tags))
		for _, t := range b.Tags {
			lines = append(lines, tagLine(t))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	buf.WriteString(strings.Join(sections, "\n\n"))
	buf.WriteString("\n")
}

func heading(b extract.Block) string {
	if b.Summary != "" {
		return b.Summary
	}
	return b.Decl
}

func tagLine(t extract.Tag) string {
	if t.Value == "" {
		return "- " + t.Name
	}
	return fmt.Sprintf("- %s: %s", t.Name, t.Value)
}

func codeBlock(lang, code string) string {
	return fmt.Sprintf("```%s\n%s\n```", lang, strings.TrimSpace(code))
}

func firstSummary(node *extract.Node) string {
	for _, b := range node.Blocks {
		if b.Summary != "" {
			return b.Summary
		}
	}
	return ""
}

func (markdownRenderer) Index(entries []IndexEntry) Artifact {
	return Artifact{
		Rel:     IndexName(FormatMarkdown),
		Content: buildIndex(entries),
	}
}

type htmlRenderer struct {
	md    goldmark.Markdown
	inner markdownRenderer
}

func (*htmlRenderer) Format() Format { return FormatHTML }

func (r *htmlRenderer) Render(node *extract.Node) (Artifact, error) {
	rel, err := TargetRel(node.Path, FormatHTML)
	if err != nil {
		return Artifact{}, err
	}
	content, err := r.page(node.Path, r.inner.document(node))
	if err != nil {
		return Artifact{}, derrors.Write("render html", node.Path, err)
	}
	return Artifact{
		Source:  node.Path,
		Rel:     rel,
		Content: content,
		Summary: firstSummary(node),
	}, nil
}

func (r *htmlRenderer) Index(entries []IndexEntry) Artifact {
	content, err := r.page("Documentation index", buildIndex(entries))
	if err != nil {
		content = []byte(html.EscapeString(string(buildIndex(entries))))
	}
	return Artifact{Rel: IndexName(FormatHTML), Content: content}
}

func (r *htmlRenderer) page(title string, markdown []byte) ([]byte, error) {
	var body bytes.Buffer
	if err := r.md.Convert(markdown, &body); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(title))
	buf.WriteString("</head>\n<body>\n")
	buf.Write(body.Bytes())
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}
