package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mdextract.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    *Config
		wantErr bool
	}{
		{
			name:    "empty file keeps defaults",
			content: "",
			want:    Default(),
		},
		{
			name:    "partial override",
			content: "lang: [go, rust]\nwidth: 40\n",
			want:    &Config{Lang: []string{"go", "rust"}, Untagged: true, Width: 40},
		},
		{
			name:    "all fields",
			content: "lang:\n  - tsx\nuntagged: false\nwidth: 0\ncommonmark: true\n",
			want:    &Config{Lang: []string{"tsx"}, Width: 0, CommonMark: true},
		},
		{
			name:    "negative width",
			content: "width: -1\n",
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			content: "lang: [tsx\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)

			cfg, used, err := Load(path, true)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, path, used)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestLoad_missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, used, err := Load(path, false)
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, Default(), cfg)

	_, _, err = Load(path, true)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
