package mdcode

import (
	"bytes"
	"unicode"
)

var fence = []byte("```")

// Scan calls walker for every fenced code block found by a plain fence scan.
//
// Fence markers alternate: the first marker after the previous block opens a
// block and the next one closes it, whatever tag follows the closing marker.
// The opening marker may be followed on its line by a language tag and
// metadata. The body runs from the line after the opening marker up to the
// closing marker. An opening marker that is never closed produces no block,
// and neither does a pair of markers on a single line.
func Scan(source []byte, walker Walker) error {
	lines := lineCounter{source: source, line: 1}
	pos := 0

	for {
		open := bytes.Index(source[pos:], fence)
		if open < 0 {
			return nil
		}

		open += pos
		infoStart := open + len(fence)

		eol := bytes.IndexByte(source[infoStart:], '\n')
		if eol < 0 {
			return nil
		}

		info := source[infoStart : infoStart+eol]

		if inline := bytes.Index(info, fence); inline >= 0 {
			pos = infoStart + inline + len(fence)

			continue
		}

		bodyStart := infoStart + eol + 1

		end := bytes.Index(source[bodyStart:], fence)
		if end < 0 {
			return nil
		}

		end += bodyStart
		pos = end + len(fence)

		lang, meta := splitInfo(info)

		block := &Block{
			Lang:      lang,
			Meta:      meta,
			Code:      bytes.Clone(source[bodyStart:end]),
			StartLine: lines.at(open),
			EndLine:   lines.at(end),
		}

		if err := walker(block); err != nil {
			return err
		}
	}
}

// splitInfo splits the rest of an opening fence line into the language tag,
// the run of non-space characters right after the marker, and metadata.
// Unparsable metadata is dropped.
func splitInfo(info []byte) (string, Meta) {
	end := bytes.IndexFunc(info, unicode.IsSpace)
	if end < 0 {
		end = len(info)
	}

	meta, err := parseMeta(bytes.TrimSpace(info[end:]))
	if err != nil {
		meta = nil
	}

	return string(info[:end]), meta
}

// lineCounter maps increasing byte offsets to 1-based line numbers.
type lineCounter struct {
	source []byte
	offset int
	line   int
}

func (lc *lineCounter) at(offset int) int {
	lc.line += bytes.Count(lc.source[lc.offset:offset], []byte{'\n'})
	lc.offset = offset

	return lc.line
}
