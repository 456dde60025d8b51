package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"
)

const rootLongDesc = `
go-cdoc walks SOURCE_DIR, pulls the documentation comments out of every source file and
writes them to DOCS_DIR as a mirrored tree of Markdown documents: src/a/b.js becomes
docs/a/b.md. Files without documentation still get a page so the tree stays complete.

Recognised comment styles:

  • /** ... */ blocks and /// lines (JavaScript, TypeScript, Java, C, C++, C#, Rust, ...)
  • // comments attached to the next declaration (Go)
  • ### ... ### blocks and ## lines (CoffeeScript), ## lines (Python, Ruby, shell, YAML)
  • --[[ ... ]] blocks and --- lines (Lua, SQL)

Settings can also come from .cdoc.yaml, .cdoc.yml or .cdoc.toml in the working directory
(or --config); flags win over the file and ignore patterns from both are combined.
`

func newRootCmd(stdout io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout, stderr: os.Stderr}
	cmd := &cobra.Command{
		Use:           "go-cdoc [-q] [-i IGNORE ...] SOURCE_DIR DOCS_DIR",
		Short:         "Generate a documentation tree from source comments",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.StringArrayVarP(&app.opts.ignore, "ignore", "i", nil, "ignore paths matching IGNORE; repeatable, glob patterns allowed")
	flags.BoolVarP(&app.opts.quiet, "quiet", "q", false, "do not log progress messages to stdout")
	flags.StringVarP(&app.opts.configPath, "config", "c", "", "read settings from FILE (.yaml, .yml or .toml)")
	flags.StringVarP(&app.opts.format, "format", "f", "", "output format: markdown or html (default markdown)")
	flags.IntVarP(&app.opts.jobs, "jobs", "j", 1, "number of files processed in parallel")
	flags.BoolVar(&app.opts.index, "index", false, "also write an index document linking every page")
	flags.BoolVar(&app.opts.strict, "strict", false, "exit with status 3 when any file fails")
	flags.StringVar(&app.opts.metricsFile, "metrics-file", "", "write run metrics to FILE in Prometheus text format")
	flags.StringVar(&app.opts.logLevel, "log-level", "", "diagnostic log level on stderr: debug, info, warn or error (default warn)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return app.execute(ctx, cmd, args)
	}

	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const (
		longDesc = `Generate a shell completion script for go-cdoc.

Completion covers the subcommands and flags such as --format and --log-level.
Load it in the current shell, or save it where your shell looks for completions:

  source <(go-cdoc completion bash)
  go-cdoc completion zsh > "${fpath[1]}/_go-cdoc"
  go-cdoc completion fish > ~/.config/fish/completions/go-cdoc.fish
  go-cdoc completion powershell | Out-String | Invoke-Expression
`
	)
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.ExactValidArgs(1),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs DIRECTORY",
		Short: "Write the go-cdoc command reference as Markdown",
		Long: strings.TrimSpace(`
Write one Markdown page per go-cdoc command into DIRECTORY. Pointing it at a
folder inside the generated docs tree publishes the CLI reference next to the
pages extracted from source:

  go-cdoc -i node_modules ./src ./docs
  go-cdoc gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("gen-docs: directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		return cobradoc.GenMarkdownTree(root, target)
	}
	return cmd
}
