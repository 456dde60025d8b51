package extract

import (
	"regexp"
	"strings"
)

var tagLine = regexp.MustCompile(`^@([A-Za-z][A-Za-z0-9_.-]*)(?:\s*:\s*|\s+|$)(.*)$`)

// parseTag parses a `@name value` line. Lines starting with @ that do not carry a
// valid tag name are reported as not a tag so they stay in the body.
func parseTag(line string) (Tag, bool) {
	m := tagLine.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Tag{}, false
	}
	return Tag{Name: m[1], Value: strings.TrimSpace(m[2])}, true
}

func parseBlock(content []string) Block {
	lines := strings.Split(dedent(strings.Join(content, "\n")), "\n")

	var (
		b          Block
		body       []string
		haveLead   bool
		lastTag    = -1
		lastIndent int
	)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			lastTag = -1
			if haveLead {
				body = append(body, "")
			}
			continue
		}
		if tag, ok := parseTag(trimmed); ok {
			b.Tags = append(b.Tags, tag)
			lastTag = len(b.Tags) - 1
			lastIndent = indent(line)
			haveLead = true
			continue
		}
		if lastTag >= 0 && indent(line) > lastIndent {
			t := &b.Tags[lastTag]
			if t.Value == "" {
				t.Value = trimmed
			} else {
				t.Value += " " + trimmed
			}
			continue
		}
		lastTag = -1
		if !haveLead {
			haveLead = true
			if !strings.HasPrefix(trimmed, "@") {
				summary, rest := splitSummary(trimmed)
				b.Summary = summary
				if rest != "" {
					body = append(body, rest)
				}
				continue
			}
		}
		body = append(body, line)
	}
	b.Body = trimBlankLines(body)
	return b
}

// splitSummary returns the first sentence of line and whatever follows it.
func splitSummary(line string) (string, string) {
	if idx := strings.Index(line, ". "); idx >= 0 {
		return strings.TrimSpace(line[:idx+1]), strings.TrimSpace(line[idx+2:])
	}
	return line, ""
}

func trimBlankLines(lines []string) string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	out := make([]string, 0, end-start)
	for _, l := range lines[start:end] {
		out = append(out, strings.TrimRight(l, " \t"))
	}
	return dedent(strings.Join(out, "\n"))
}

func dedent(src string) string {
	lines := strings.Split(src, "\n")
	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := indent(line)
		if minIndent == -1 || n < minIndent {
			minIndent = n
		}
	}
	if minIndent <= 0 {
		return src
	}
	for i, line := range lines {
		if len(line) >= minIndent {
			lines[i] = line[minIndent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}

func indent(line string) int {
	count := 0
	for _, r := range line {
		if r == ' ' || r == '\t' {
			count++
			continue
		}
		break
	}
	return count
}
