// # go-cdoc
//
// `go-cdoc` generates browsable documentation straight from source comments.
// It walks a source directory, extracts the documentation blocks of every file
// and writes one Markdown page per source file into a target directory that
// mirrors the source layout.
//
// Key capabilities:
//
//   - recognise block and line documentation comments for C-family languages,
//     Go, CoffeeScript, hash-comment languages and Lua/SQL.
//   - split every block into a summary, a body, `@tag value` entries and the
//     declaration that follows it.
//   - skip files and directories matching glob ignore patterns; ignored
//     directories are never read.
//   - write every page atomically so an interrupted run never leaves a partial file.
//   - optionally render HTML, write an index page, process files in parallel
//     and export run metrics for the node_exporter textfile collector.
//   - ship a Cobra-powered CLI with rich `--help`, `--version`, shell completion,
//     and a `gen-docs` helper for publishing the CLI reference itself.
//
// ## Usage
//
//	go-cdoc [-q] [-i IGNORE ...] SOURCE_DIR DOCS_DIR
//
// Examples:
//
//   - Document a project, skipping dependencies and build output:
//
//     go-cdoc -i node_modules -i dist ./src ./docs
//
//   - Quiet HTML build with an index page:
//
//     go-cdoc -q -f html --index ./src ./site
//
// ## Supported Flags
//
//   - `-i`, `--ignore PATTERN`: skip paths matching PATTERN. Patterns without a
//     slash match any path segment (`node_modules`, `*.min.js`); patterns with a
//     slash match from the source root (`lib/vendor`, `**/generated`).
//   - `-q`, `--quiet`: do not print progress lines.
//   - `-c`, `--config FILE`: read settings from a YAML or TOML file.
//   - `-f`, `--format markdown|html`: output format.
//   - `-j`, `--jobs N`: process N files at once.
//   - `--index`: write `INDEX.md` (or `index.html`) linking every page.
//   - `--strict`: exit with status 3 when any file could not be documented.
//   - `--metrics-file FILE`: write run metrics in Prometheus text format.
//   - `--log-level LEVEL`: diagnostic logging on stderr (default `warn`).
//
// Single-dash long flags (`-quiet`, `-ignore=dist`) are accepted too.
//
// ## Configuration File
//
// Without `--config`, `.cdoc.yaml`, `.cdoc.yml` or `.cdoc.toml` is read from the
// working directory when present. `${VAR}` references are expanded, and a
// `.env` file next to the config is loaded first:
//
//	ignore: [node_modules, "*.min.js"]
//	format: markdown
//	jobs: 4
//	syntaxes:
//	  .gradle: c
//
// Flags override file values; ignore patterns from both are combined.
//
// ## Exit Status
//
// 0 on success (individual file failures are reported but tolerated), 1 when
// the directories are missing or on unexpected errors, 2 for configuration
// errors, 3 for file failures under `--strict`.
//
// ## Shell Completion
//
//	go-cdoc completion bash        # bash
//	go-cdoc completion zsh         # zsh
//	go-cdoc completion fish | source
//	go-cdoc completion powershell | Out-String | Invoke-Expression
//
// ## CLI Docs
//
//	go-cdoc gen-docs ./docs/cli
//
// Every command becomes its own Markdown file under the provided directory.
package main
