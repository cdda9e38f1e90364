package cmd

import (
	"fmt"
	"io"

	"github.com/ezerfernandes/mdextract/internal/mdcode"
)

func printPreview(out io.Writer, blocks mdcode.Blocks, width int) error {
	if _, err := fmt.Fprintf(out, "Found %d code blocks\n", len(blocks)); err != nil {
		return err
	}

	for i, block := range blocks {
		if _, err := fmt.Fprintf(out, "\nBlock %d:\n%s\n", i+1, preview(block.Code, width)); err != nil {
			return err
		}
	}

	return nil
}

// preview returns at most width characters from the start of code.
func preview(code []byte, width int) string {
	text := string(code)

	count := 0
	for idx := range text {
		if count == width {
			return text[:idx]
		}

		count++
	}

	return text
}
