package mdcode

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var reInfo = regexp.MustCompile(`\s*(\S+)\s*(.*)\s*`)

// Walk parses source as CommonMark and calls walker for every fenced code
// block. Blocks hidden in an HTML comment wrapped in
// <script type="text/markdown"> are reported too.
func Walk(source []byte, walker Walker) error {
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	return ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			return ast.WalkContinue, nil
		}

		fcb := asFencedCodeBlock(unwrapScriptBlock(node, source))
		if fcb == nil {
			return ast.WalkContinue, nil
		}

		block, err := fencedBlock(fcb, source)
		if err != nil {
			return ast.WalkStop, err
		}

		if err := walker(block); err != nil {
			return ast.WalkStop, err
		}

		return ast.WalkContinue, nil
	})
}

func asFencedCodeBlock(node ast.Node) *ast.FencedCodeBlock {
	if node.Kind() != ast.KindFencedCodeBlock {
		return nil
	}

	fcb, _ := node.(*ast.FencedCodeBlock)

	return fcb
}

func fencedBlock(fcb *ast.FencedCodeBlock, source []byte) (*Block, error) {
	block := new(Block)

	if fcb.Info != nil {
		var err error

		block.Lang, block.Meta, err = parseInfo(fcb.Info.Segment.Value(source))
		if err != nil {
			return nil, err
		}
	}

	var code bytes.Buffer

	lines := fcb.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	block.Code = code.Bytes()
	block.StartLine, block.EndLine = fenceLines(fcb, source)

	return block, nil
}

// fenceLines returns the lines of the opening and closing fence. The closing
// line is assumed to follow the body directly.
func fenceLines(fcb *ast.FencedCodeBlock, source []byte) (int, int) {
	lines := fcb.Lines()

	var start int

	switch {
	case fcb.Info != nil:
		start = lineAt(source, fcb.Info.Segment.Start)
	case lines.Len() > 0:
		start = lineAt(source, lines.At(0).Start) - 1
	default:
		return 0, 0
	}

	if lines.Len() == 0 {
		return start, start + 1
	}

	return start, lineAt(source, lines.At(lines.Len()-1).Stop-1) + 1
}

func lineAt(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}

	return bytes.Count(source[:offset], []byte{'\n'}) + 1
}

func parseInfo(info []byte) (string, Meta, error) {
	all := reInfo.FindSubmatch(info)
	if all == nil {
		return "", nil, nil
	}

	meta, err := parseMeta(bytes.TrimSpace(all[2]))
	if err != nil {
		return "", nil, err
	}

	return string(all[1]), meta, nil
}

var (
	reScriptOpen = regexp.MustCompile(`^\s*(<!--)?\s*<script\s*type=["']text/markdown["']\s*>\s*$`)
	reFences     = regexp.MustCompile("^\\s*```")
)

// unwrapScriptBlock turns an HTML block of the form
//
//	<!--<script type="text/markdown">
//	```js
//	...
//	```
//	</script>-->
//
// into the fenced code block it contains. Other nodes are returned unchanged.
func unwrapScriptBlock(node ast.Node, source []byte) ast.Node { //nolint:ireturn
	if node.Kind() != ast.KindHTMLBlock {
		return node
	}

	html, ok := node.(*ast.HTMLBlock)
	if !ok {
		return node
	}

	const minLines = 3

	lines := html.Lines()
	if lines.Len() < minLines {
		return node
	}

	first := lines.At(0)
	if !reScriptOpen.Match(first.Value(source)) {
		return node
	}

	head, last := lines.At(1), lines.At(lines.Len()-1)

	loc := reFences.FindIndex(head.Value(source))
	if loc == nil || !reFences.Match(last.Value(source)) {
		return node
	}

	info := ast.NewTextSegment(text.NewSegment(head.Start+loc[1], head.Stop-1))
	fcb := ast.NewFencedCodeBlock(info)

	body := text.NewSegments()
	for i := 2; i < lines.Len()-1; i++ {
		body.Append(lines.At(i))
	}

	fcb.SetLines(body)

	return fcb
}
