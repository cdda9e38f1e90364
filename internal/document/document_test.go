package document

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/liamg/memoryfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFS(t *testing.T, files map[string][]byte) *memoryfs.FS {
	t.Helper()

	fsys := memoryfs.New()

	for name, data := range files {
		if dir := filepath.Dir(name); dir != "." {
			require.NoError(t, fsys.MkdirAll(dir, 0o755))
		}

		require.NoError(t, fsys.WriteFile(name, data, 0o644))
	}

	return fsys
}

func TestLoad(t *testing.T) {
	fsys := memFS(t, map[string][]byte{
		"guide.md":       []byte("# Guide\n\nHej världen\n"),
		"docs/binary.md": {0xff, 0xfe, 0x00},
		"docs/empty.md":  {},
	})

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "utf8 text", path: "guide.md"},
		{name: "empty file", path: "docs/empty.md"},
		{name: "missing", path: "missing.md", wantErr: ErrNotFound},
		{name: "directory", path: "docs", wantErr: ErrNotFound},
		{name: "not text", path: "docs/binary.md", wantErr: ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Load(fsys, tt.path)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.path)

				var inputErr *InputError
				assert.True(t, errors.As(err, &inputErr))
				assert.Nil(t, doc)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.path, doc.Name)
		})
	}
}

func TestLoad_keepsBytes(t *testing.T) {
	src := []byte("\ufeffline one\r\nline two\n")
	fsys := memFS(t, map[string][]byte{"crlf.md": src})

	doc, err := Load(fsys, "crlf.md")
	require.NoError(t, err)
	assert.Equal(t, src, doc.Source)
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guide.md")

	require.NoError(t, os.WriteFile(path, []byte("text"), 0o600))

	doc, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "text", string(doc.Source))

	_, err = Read(filepath.Join(dir, "nope.md"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, filepath.Join(dir, "nope.md")+": file not found or unreadable: no such file or directory", err.Error())
}
