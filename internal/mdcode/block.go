// Package mdcode finds fenced code blocks in Markdown documents.
package mdcode

// Block is a fenced code block. Code holds the body exactly as it appears in
// the document, without the fence lines.
type Block struct {
	Lang      string
	Meta      Meta
	Code      []byte
	StartLine int
	EndLine   int
}

type Blocks []*Block

// Walker is a callback invoked for each fenced code block, in document order.
type Walker func(block *Block) error

// Filter reports whether a block with the given tag and metadata is wanted.
// An absent tag is passed as the empty string.
type Filter func(lang string, meta Meta) bool

// DefaultTags is the set of tags extracted when no filter is given.
// The empty string stands for an untagged block.
var DefaultTags = []string{"typescript", "tsx", "javascript", "jsx", ""}

// Tags returns a Filter accepting exactly the given tags.
func Tags(tags ...string) Filter {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}

	return func(lang string, _ Meta) bool {
		_, ok := set[lang]

		return ok
	}
}

func (f Filter) orDefault() Filter {
	if f == nil {
		return Tags(DefaultTags...)
	}

	return f
}
