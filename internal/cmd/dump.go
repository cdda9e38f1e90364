package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ezerfernandes/mdextract/internal/document"
	"github.com/ezerfernandes/mdextract/internal/mdcode"
	"github.com/spf13/cobra"
)

// writeFS is the part of a writable filesystem dump needs. Paths are
// slash-separated.
type writeFS interface {
	MkdirAll(path string, perm fs.FileMode) error
	WriteFile(path string, data []byte, perm fs.FileMode) error
}

type osFS struct{}

func (osFS) MkdirAll(name string, perm fs.FileMode) error {
	return os.MkdirAll(filepath.FromSlash(name), perm)
}

func (osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(filepath.FromSlash(name), data, perm)
}

func dumpCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:   "dump [flags] filename",
		Short: "Write the accepted code blocks to files",
		Long: "Write every accepted code block to its own file in the output directory.\n" +
			"A block is written to the path in its file metadata when that path stays\n" +
			"inside the directory, otherwise to block_<index>.<lang>.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.Read(args[0])
			if err != nil {
				return err
			}

			blocks, err := collect(doc.Source, opts)
			if err != nil {
				return err
			}

			return dumpRun(osFS{}, filepath.ToSlash(opts.dir), blocks, opts.status)
		},

		DisableAutoGenTag: true,
	}

	dirFlag(cmd, opts, "output directory")

	return cmd
}

func dumpRun(fsys writeFS, dir string, blocks mdcode.Blocks, status statusFunc) error {
	for i, block := range blocks {
		name := path.Join(dir, blockFilename(block, i+1))

		if err := fsys.MkdirAll(path.Dir(name), dirMode); err != nil {
			return fmt.Errorf("failed to create directory for block %d: %w", i+1, err)
		}

		if err := fsys.WriteFile(name, block.Code, fileMode); err != nil {
			return fmt.Errorf("failed to write block %d: %w", i+1, err)
		}

		status("wrote %s\n", name)
	}

	return nil
}

// blockFilename returns the relative file name for a block: its file
// metadata if that is a local path, else block_<index>.<lang>.
func blockFilename(block *mdcode.Block, index int) string {
	if file := block.Meta.Get(metaFile); len(file) != 0 && filepath.IsLocal(file) {
		return path.Clean(file)
	}

	return fmt.Sprintf("block_%d%s", index, langExtension(block.Lang))
}

func langExtension(lang string) string {
	if len(lang) > 0 {
		return "." + strings.ToLower(reUnsafe.ReplaceAllString(lang, "_"))
	}

	return ".txt"
}

var reUnsafe = regexp.MustCompile(`[/\\:]`)
