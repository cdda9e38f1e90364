package mdcode

// Extract returns the fenced code blocks of source accepted by filter, in
// document order, using the plain fence scan of [Scan]. A nil filter accepts
// [DefaultTags].
func Extract(source []byte, filter Filter) Blocks {
	filter = filter.orDefault()

	var blocks Blocks

	_ = Scan(source, func(block *Block) error {
		if filter(block.Lang, block.Meta) {
			blocks = append(blocks, block)
		}

		return nil
	})

	return blocks
}

// Unfence is like [Extract] but finds blocks with the CommonMark parser of
// [Walk]. Fences must match in length and kind, so results may differ from
// [Extract] on documents with nested or unbalanced fences.
func Unfence(source []byte, filter Filter) (Blocks, error) {
	filter = filter.orDefault()

	var blocks Blocks

	err := Walk(source, func(block *Block) error {
		if filter(block.Lang, block.Meta) {
			blocks = append(blocks, block)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return blocks, nil
}
