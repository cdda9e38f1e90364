// Package cmd implements the mdextract command line.
package cmd

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/ezerfernandes/mdextract/internal/config"
	"github.com/ezerfernandes/mdextract/internal/document"
	"github.com/ezerfernandes/mdextract/internal/mdcode"
	"github.com/spf13/cobra"
)

//go:embed help/root.md
var rootHelp string

const (
	appname = "mdextract"
	usage   = "Usage: mdextract <markdown_file>"

	metaFile = "file"

	fileMode = 0o644
	dirMode  = 0o755
)

type statusFunc func(format string, args ...interface{})

type options struct {
	lang       []string
	untagged   bool
	file       string
	meta       map[string]string
	width      int
	commonmark bool
	quiet      bool
	config     string
	dir        string
	keep       bool

	filter mdcode.Filter
	status statusFunc
}

func (opts *options) createStatus(out io.Writer) {
	if opts.quiet {
		opts.status = func(string, ...interface{}) {}

		return
	}

	opts.status = func(format string, args ...interface{}) {
		fmt.Fprintf(out, format, args...)
	}
}

// prepare merges the configuration file into the flags not given on the
// command line and builds the block filter.
func (opts *options) prepare(cmd *cobra.Command) error {
	opts.createStatus(cmd.ErrOrStderr())

	cfg, used, err := config.Load(opts.config, cmd.Flag("config").Changed)
	if err != nil {
		return err
	}

	if len(used) != 0 {
		opts.status("using config %s\n", used)
	}

	if !cmd.Flag("lang").Changed {
		opts.lang = cfg.Lang
	}

	if !cmd.Flag("untagged").Changed {
		opts.untagged = cfg.Untagged
	}

	if !cmd.Flag("width").Changed {
		opts.width = cfg.Width
	}

	if !cmd.Flag("commonmark").Changed {
		opts.commonmark = cfg.CommonMark
	}

	if opts.width < 0 {
		return config.ErrNegativeWidth
	}

	meta := make(map[string]string, len(opts.meta)+1)
	for k, v := range opts.meta {
		meta[k] = v
	}

	if len(opts.file) != 0 {
		meta[metaFile] = opts.file
	}

	opts.filter, err = filter(opts.lang, opts.untagged, meta)

	return err
}

func rootCmd(opts *options) *cobra.Command {
	defaults := config.Default()

	root := &cobra.Command{ //nolint:exhaustruct
		Use:     appname + " [flags] [filename]",
		Short:   "Extract fenced code blocks from Markdown documents",
		Long:    rootHelp,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// the bare usage line must not depend on a readable config
			if cmd == cmd.Root() && len(args) == 0 {
				return nil
			}

			return opts.prepare(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), usage)

				return err
			}

			return previewRun(cmd.OutOrStdout(), args[0], opts)
		},

		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true}, //nolint:exhaustruct
	}

	flags := root.PersistentFlags()

	flags.StringSliceVarP(&opts.lang, "lang", "l", defaults.Lang, "accepted language tags (glob patterns)")
	flags.BoolVar(&opts.untagged, "untagged", defaults.Untagged, "accept code blocks without a language tag")
	flags.StringVarP(&opts.file, "file", "f", "", "file metadata filter (glob pattern)")
	flags.StringToStringVarP(&opts.meta, "meta", "m", nil, "metadata filters (key=glob)")
	flags.IntVarP(&opts.width, "width", "w", defaults.Width, "preview length in characters")
	flags.BoolVar(&opts.commonmark, "commonmark", defaults.CommonMark, "match fences with a CommonMark parser")
	flags.StringVar(&opts.config, "config", config.DefaultFile, "configuration file")
	quietFlag(root, opts)

	root.AddCommand(listCmd(opts), dumpCmd(opts), execCmd(opts))

	return root
}

func quietFlag(cmd *cobra.Command, opts *options) {
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress status messages")
}

func dirFlag(cmd *cobra.Command, opts *options, desc string) {
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", ".", desc)
}

var version = "dev"

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root := rootCmd(new(options))

	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	return root.Execute()
}

// exitStatus runs the command line and returns the process exit status,
// reporting any error on stderr.
func exitStatus(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if err := run(args, stdin, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "%s: %s\n", appname, err)

		return 1
	}

	return 0
}

// Execute runs the command line and exits the process with status 1 on error.
func Execute(args []string, stdout, stderr io.Writer) {
	if code := exitStatus(args, os.Stdin, stdout, stderr); code != 0 {
		os.Exit(code)
	}
}

func previewRun(out io.Writer, filename string, opts *options) error {
	doc, err := document.Read(filename)
	if err != nil {
		return err
	}

	blocks, err := collect(doc.Source, opts)
	if err != nil {
		return err
	}

	return printPreview(out, blocks, opts.width)
}
