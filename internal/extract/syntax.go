package extract

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	derrors "github.com/agentflare-ai/go-cdoc/internal/errors"
)

// Syntax describes how documentation comments look in one family of languages.
type Syntax struct {
	Name string
	// Fence is the code fence language used when rendering declarations.
	Fence string
	// BlockOpen and BlockClose delimit documentation block comments.
	BlockOpen  string
	BlockClose string
	// Line marks a documentation line comment. Contiguous lines merge into one block.
	Line string
	// Comments lists prefixes of ordinary comments, used to tell code from comments.
	Comments []string
	// Directives are comment lines dropped from documentation (e.g. //go:generate).
	Directives []string
	// Attached requires a block to sit at column zero directly above a line of code.
	Attached bool
	// Decoration is stripped from the start of block continuation lines.
	Decoration string
}

var (
	SyntaxC = Syntax{
		Name:       "c",
		BlockOpen:  "/**",
		BlockClose: "*/",
		Line:       "///",
		Comments:   []string{"//", "/*"},
		Decoration: "*",
	}
	SyntaxGo = Syntax{
		Name:       "go",
		Fence:      "go",
		Line:       "//",
		Comments:   []string{"//", "/*"},
		Directives: []string{"//go:", "//line ", "// +build", "//nolint", "//export "},
		Attached:   true,
	}
	SyntaxCoffee = Syntax{
		Name:       "coffee",
		Fence:      "coffeescript",
		BlockOpen:  "###",
		BlockClose: "###",
		Line:       "##",
		Comments:   []string{"#"},
	}
	SyntaxHash = Syntax{
		Name:     "hash",
		Line:     "##",
		Comments: []string{"#"},
	}
	SyntaxLua = Syntax{
		Name:       "lua",
		BlockOpen:  "--[[",
		BlockClose: "]]",
		Line:       "---",
		Comments:   []string{"--"},
	}
	SyntaxNone = Syntax{Name: "none"}
)

var syntaxes = map[string]Syntax{
	SyntaxC.Name:      SyntaxC,
	SyntaxGo.Name:     SyntaxGo,
	SyntaxCoffee.Name: SyntaxCoffee,
	SyntaxHash.Name:   SyntaxHash,
	SyntaxLua.Name:    SyntaxLua,
	SyntaxNone.Name:   SyntaxNone,
}

type extension struct {
	syntax string
	fence  string
}

var extensions = map[string]extension{
	".js":        {"c", "javascript"},
	".mjs":       {"c", "javascript"},
	".cjs":       {"c", "javascript"},
	".jsx":       {"c", "jsx"},
	".ts":        {"c", "typescript"},
	".tsx":       {"c", "tsx"},
	".java":      {"c", "java"},
	".c":         {"c", "c"},
	".h":         {"c", "c"},
	".cc":        {"c", "cpp"},
	".cpp":       {"c", "cpp"},
	".hpp":       {"c", "cpp"},
	".cs":        {"c", "csharp"},
	".css":       {"c", "css"},
	".scss":      {"c", "scss"},
	".less":      {"c", "less"},
	".swift":     {"c", "swift"},
	".kt":        {"c", "kotlin"},
	".php":       {"c", "php"},
	".rs":        {"c", "rust"},
	".scala":     {"c", "scala"},
	".dart":      {"c", "dart"},
	".go":        {"go", "go"},
	".coffee":    {"coffee", "coffeescript"},
	".litcoffee": {"coffee", "coffeescript"},
	".py":        {"hash", "python"},
	".rb":        {"hash", "ruby"},
	".sh":        {"hash", "bash"},
	".bash":      {"hash", "bash"},
	".pl":        {"hash", "perl"},
	".r":         {"hash", "r"},
	".yaml":      {"hash", "yaml"},
	".yml":       {"hash", "yaml"},
	".toml":      {"hash", "toml"},
	".cmake":     {"hash", "cmake"},
	".lua":       {"lua", "lua"},
	".sql":       {"lua", "sql"},
}

// Syntaxes returns the names of the built-in syntaxes, sorted.
func Syntaxes() []string {
	names := make([]string, 0, len(syntaxes))
	for name := range syntaxes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the built-in syntax with the given name.
func Lookup(name string) (Syntax, bool) {
	s, ok := syntaxes[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// SyntaxFor maps a file name to its comment syntax using the built-in table.
func SyntaxFor(path string) Syntax {
	return syntaxFor(path, nil)
}

func syntaxFor(path string, overrides map[string]string) Syntax {
	ext := strings.ToLower(filepath.Ext(path))
	e, known := extensions[ext]
	if name, ok := overrides[ext]; ok {
		e.syntax = name
		if !known {
			e.fence = strings.TrimPrefix(ext, ".")
		}
		known = true
	}
	if !known {
		return SyntaxNone
	}
	s := syntaxes[e.syntax]
	s.Fence = e.fence
	return s
}

func normalizeOverrides(in map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(in))
	for ext, name := range in {
		key := strings.ToLower(strings.TrimSpace(ext))
		if key == "" {
			continue
		}
		if !strings.HasPrefix(key, ".") {
			key = "." + key
		}
		s, ok := Lookup(name)
		if !ok {
			return nil, derrors.Configuration("syntax override", ext,
				fmt.Errorf("unknown syntax %q (known: %s)", name, strings.Join(Syntaxes(), ", ")))
		}
		out[key] = s.Name
	}
	return out, nil
}
