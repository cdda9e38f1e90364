package mdcode

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/shlex"
)

// Meta holds key-value metadata from the info string of a fence, the part
// following the language tag. Both `file=main.ts` words and a JSON object
// are understood.
type Meta map[string]interface{}

// Get returns the value for name as a string, or an empty string if absent.
func (m Meta) Get(name string) string {
	value, has := m[name]
	if !has {
		return ""
	}

	if s, ok := value.(string); ok {
		return s
	}

	return fmt.Sprint(value)
}

var (
	reJSON     = regexp.MustCompile(`^\s*{\s*["}]`)
	reBrackets = regexp.MustCompile(`^\s*{(.*)}$`)
)

// parseMeta parses the metadata part of an info string. Errors come from
// malformed JSON or unbalanced shell quoting. [Scan] drops such metadata and
// keeps the block; [Walk] reports the error.
func parseMeta(input []byte) (Meta, error) {
	if len(input) == 0 {
		return Meta{}, nil
	}

	if reJSON.Match(input) {
		var meta Meta

		if err := json.Unmarshal(input, &meta); err != nil {
			return nil, err
		}

		return meta, nil
	}

	// {file=main.ts} is accepted as well as bare words
	if subs := reBrackets.FindSubmatch(input); subs != nil {
		input = subs[1]
	}

	words, err := shlex.Split(string(input))
	if err != nil {
		return nil, err
	}

	meta := make(Meta, len(words))

	for _, word := range words {
		if key, value, found := strings.Cut(word, "="); found && len(key) != 0 {
			meta[key] = value
		}
	}

	return meta, nil
}
