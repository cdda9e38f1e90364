package mdcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMeta(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Meta
	}{
		{name: "empty", input: "", want: Meta{}},
		{name: "words", input: `file=main.ts title="a b"`, want: Meta{"file": "main.ts", "title": "a b"}},
		{name: "brackets", input: `{file=main.ts}`, want: Meta{"file": "main.ts"}},
		{name: "json", input: `{"file": "main.ts", "line": 3}`, want: Meta{"file": "main.ts", "line": float64(3)}},
		{name: "bare words ignored", input: `readonly file=x`, want: Meta{"file": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := parseMeta([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, meta)
		})
	}
}

func TestMetaGet(t *testing.T) {
	meta := Meta{"file": "a.ts", "line": float64(3)}

	assert.Equal(t, "a.ts", meta.Get("file"))
	assert.Equal(t, "3", meta.Get("line"))
	assert.Equal(t, "", meta.Get("missing"))
	assert.Equal(t, "", Meta(nil).Get("file"))
}
