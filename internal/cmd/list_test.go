package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	stdout, _, err := execute("list", writeDoc(t, guide))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, []string{"#", "LANG", "LINES", "SIZE", "FILE", "FIRST", "LINE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "typescript", "3-5", "13", "B", "src/main.ts", "const", "x", "=", "1;"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2", "jsx", "11-13", "8", "B", "<App", "/>"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"3", "-", "15-17", "9", "B", "untagged"}, strings.Fields(lines[3]))
}

func TestList_requiresFile(t *testing.T) {
	_, _, err := execute("list")

	assert.Error(t, err)
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "first", firstLine([]byte("first\r\nsecond\n")))
	assert.Equal(t, "", firstLine(nil))
	assert.Equal(t, strings.Repeat("x", firstLineWidth), firstLine([]byte(strings.Repeat("x", 80))))
}
