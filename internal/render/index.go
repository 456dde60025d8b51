package render

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// IndexName is the index document's path relative to the target root.
func IndexName(f Format) string {
	if f == FormatHTML {
		return "index.html"
	}
	return "INDEX.md"
}

// IndexEntryFor describes a written artifact in the index.
func IndexEntryFor(a Artifact) IndexEntry {
	return IndexEntry{
		Title:   a.Source,
		Link:    a.Rel,
		Summary: strings.TrimSpace(a.Summary),
	}
}

func buildIndex(entries []IndexEntry) []byte {
	sorted := append([]IndexEntry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Title < sorted[j].Title
	})
	var buf bytes.Buffer
	buf.WriteString("# Documentation index\n\n")
	if len(sorted) == 0 {
		buf.WriteString(Placeholder + "\n")
		return buf.Bytes()
	}
	for _, entry := range sorted {
		if entry.Summary != "" {
			fmt.Fprintf(&buf, "- [%s](%s): %s\n", entry.Title, entry.Link, entry.Summary)
		} else {
			fmt.Fprintf(&buf, "- [%s](%s)\n", entry.Title, entry.Link)
		}
	}
	return buf.Bytes()
}
