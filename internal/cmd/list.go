package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/ezerfernandes/mdextract/internal/document"
	"github.com/ezerfernandes/mdextract/internal/mdcode"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
)

const firstLineWidth = 40

func listCmd(opts *options) *cobra.Command {
	return &cobra.Command{ //nolint:exhaustruct
		Use:     "list [flags] filename",
		Aliases: []string{"ls"},
		Short:   "List the accepted code blocks as a table",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.Read(args[0])
			if err != nil {
				return err
			}

			blocks, err := collect(doc.Source, opts)
			if err != nil {
				return err
			}

			printList(cmd.OutOrStdout(), blocks)

			return nil
		},

		DisableAutoGenTag: true,
	}
}

func printList(out io.Writer, blocks mdcode.Blocks) {
	tbl := table.New("#", "LANG", "LINES", "SIZE", "FILE", "FIRST LINE").WithWriter(out)

	for i, block := range blocks {
		lang := block.Lang
		if len(lang) == 0 {
			lang = "-"
		}

		tbl.AddRow(
			i+1,
			lang,
			fmt.Sprintf("%d-%d", block.StartLine, block.EndLine),
			humanize.Bytes(uint64(len(block.Code))),
			block.Meta.Get(metaFile),
			firstLine(block.Code),
		)
	}

	tbl.Print()
}

func firstLine(code []byte) string {
	line, _, _ := bytes.Cut(code, []byte{'\n'})

	return preview(bytes.TrimRight(line, "\r"), firstLineWidth)
}
