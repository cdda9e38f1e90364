package cmd

import "github.com/ezerfernandes/mdextract/internal/mdcode"

// collect returns the blocks of source accepted by opts.filter, using the
// scanner selected by opts.
func collect(source []byte, opts *options) (mdcode.Blocks, error) {
	if opts.commonmark {
		return mdcode.Unfence(source, opts.filter)
	}

	return mdcode.Extract(source, opts.filter), nil
}
