package cmd

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ezerfernandes/mdextract/internal/document"
	"github.com/ezerfernandes/mdextract/internal/mdcode"
	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

//go:embed help/exec.md
var execHelp string

type blockInfo struct {
	index     int
	lang      string
	file      string
	path      string
	startLine int
	endLine   int
}

// stdio carries the streams a command runs with.
type stdio struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func execCmd(opts *options) *cobra.Command {
	var batch bool

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "exec [flags] filename -- command",
		Aliases: []string{"e"},
		Short:   "Execute a shell command on each accepted code block",
		Long:    execHelp,
		Args:    checkargs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scr, args := script(cmd, args)
			if len(scr) == 0 {
				return errMissingCommand
			}

			if !cmd.Flag("dir").Changed {
				dir, err := os.MkdirTemp("", appname+"-exec-")
				if err != nil {
					return err
				}

				opts.dir = dir

				if !opts.keep {
					defer os.RemoveAll(dir)
				}
			}

			streams := stdio{in: cmd.InOrStdin(), out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()}

			return execRun(cmd.Context(), args[0], opts, scr, batch, streams)
		},

		DisableAutoGenTag: true,
	}

	dirFlag(cmd, opts, "working directory for block files (default: temporary directory)")

	cmd.Flags().BoolVar(&batch, "batch", false, "run command once for all blocks instead of once per block")
	cmd.Flags().BoolVarP(&opts.keep, "keep", "k", false, "don't remove temporary directory")

	return cmd
}

// checkargs requires exactly one filename followed by a command after "--".
func checkargs(cmd *cobra.Command, args []string) error {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 || dash == len(args) {
		return errMissingCommand
	}

	if dash != 1 {
		return fmt.Errorf("%w, received %d", errFilenameCount, dash)
	}

	return nil
}

// script splits args at "--" into the shell command and the remaining args.
func script(cmd *cobra.Command, args []string) (string, []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return "", args
	}

	return strings.Join(args[dash:], " "), args[:dash]
}

func execRun(ctx context.Context, filename string, opts *options, scr string, batch bool, streams stdio) error {
	doc, err := document.Read(filename)
	if err != nil {
		return err
	}

	blocks, err := collect(doc.Source, opts)
	if err != nil {
		return err
	}

	dir, err := filepath.Abs(opts.dir)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, dirMode); err != nil {
		return err
	}

	infos := make([]*blockInfo, 0, len(blocks))

	for i, block := range blocks {
		info, err := writeBlock(osFS{}, block, i+1, dir)
		if err != nil {
			opts.status("warning: %v\n", err)

			continue
		}

		infos = append(infos, info)
	}

	if batch {
		return execBatch(ctx, infos, dir, opts, scr, streams)
	}

	return execPerBlock(ctx, infos, filename, dir, opts, scr, streams)
}

func execPerBlock(ctx context.Context, infos []*blockInfo, filename, dir string, opts *options, scr string, streams stdio) error {
	var failures int

	for _, info := range infos {
		opts.status("--- block %d (%s%s) : L%d-%d : %s ---\n",
			info.index, info.lang, fileLabel(info.file), info.startLine, info.endLine, filepath.Base(filename))

		exitCode, err := runCommand(ctx, expandCommand(scr, info, dir), dir, streams)
		if err != nil {
			return err
		}

		if exitCode != 0 {
			failures++

			opts.status("block %d exited with %d\n", info.index, exitCode)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d block(s) failed", failures)
	}

	return nil
}

func execBatch(ctx context.Context, infos []*blockInfo, dir string, opts *options, scr string, streams stdio) error {
	if len(infos) == 0 {
		return nil
	}

	paths := make([]string, len(infos))
	for i, info := range infos {
		paths[i] = info.path
	}

	expanded := strings.ReplaceAll(scr, "{}", strings.Join(paths, " "))
	expanded = strings.ReplaceAll(expanded, "{dir}", dir)

	opts.status("--- batch (%d blocks) ---\n", len(infos))

	exitCode, err := runCommand(ctx, expanded, dir, streams)
	if err != nil {
		return err
	}

	if exitCode != 0 {
		return fmt.Errorf("command exited with %d", exitCode)
	}

	return nil
}

func writeBlock(fsys writeFS, block *mdcode.Block, index int, dir string) (*blockInfo, error) {
	info := &blockInfo{
		index:     index,
		lang:      block.Lang,
		file:      block.Meta.Get(metaFile),
		path:      filepath.Join(dir, tempFilename(block, index)),
		startLine: block.StartLine,
		endLine:   block.EndLine,
	}

	if err := fsys.WriteFile(filepath.ToSlash(info.path), block.Code, fileMode); err != nil {
		return nil, fmt.Errorf("failed to write block %d: %w", index, err)
	}

	return info, nil
}

func tempFilename(block *mdcode.Block, index int) string {
	if file := block.Meta.Get(metaFile); len(file) != 0 {
		return fmt.Sprintf("%d_%s", index, filepath.Base(filepath.FromSlash(file)))
	}

	return fmt.Sprintf("block_%d%s", index, langExtension(block.Lang))
}

func expandCommand(scr string, info *blockInfo, dir string) string {
	expanded := strings.ReplaceAll(scr, "{}", info.path)
	expanded = strings.ReplaceAll(expanded, "{lang}", info.lang)
	expanded = strings.ReplaceAll(expanded, "{index}", strconv.Itoa(info.index))
	expanded = strings.ReplaceAll(expanded, "{dir}", dir)

	return expanded
}

func runCommand(ctx context.Context, command, dir string, streams stdio) (int, error) {
	file, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return -1, err
	}

	runner, err := interp.New(interp.Dir(dir), interp.StdIO(streams.in, streams.out, streams.err))
	if err != nil {
		return -1, err
	}

	if err := runner.Run(ctx, file); err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return int(status), nil
		}

		return -1, err
	}

	return 0, nil
}

func fileLabel(file string) string {
	if len(file) != 0 {
		return ", file=" + file
	}

	return ""
}

var (
	errMissingCommand = errors.New("command is required after '--'")
	errFilenameCount  = errors.New("accepts 1 filename before '--'")
)
