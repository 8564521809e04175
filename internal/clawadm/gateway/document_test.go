package gateway

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeepMergeNestedMaps(t *testing.T) {
	base := map[string]any{"a": map[string]any{"x": 1}}
	update := map[string]any{"a": map[string]any{"y": 2}}

	got := DeepMerge(base, update)

	assert.Equal(t, map[string]any{"a": map[string]any{"x": 1, "y": 2}}, got)
	// Inputs stay untouched.
	assert.Equal(t, map[string]any{"a": map[string]any{"x": 1}}, base)
}

func TestDeepMergeReplacesNonMapValues(t *testing.T) {
	cases := []struct {
		name         string
		base, update map[string]any
		want         map[string]any
	}{
		{
			name:   "slices are replaced, never concatenated",
			base:   map[string]any{"a": []any{1}},
			update: map[string]any{"a": []any{2}},
			want:   map[string]any{"a": []any{2}},
		},
		{
			name:   "scalar over map",
			base:   map[string]any{"a": map[string]any{"x": 1}},
			update: map[string]any{"a": "flat"},
			want:   map[string]any{"a": "flat"},
		},
		{
			name:   "map over scalar",
			base:   map[string]any{"a": "flat"},
			update: map[string]any{"a": map[string]any{"x": 1}},
			want:   map[string]any{"a": map[string]any{"x": 1}},
		},
		{
			name:   "disjoint keys union",
			base:   map[string]any{"a": 1},
			update: map[string]any{"b": 2},
			want:   map[string]any{"a": 1, "b": 2},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeepMerge(tc.base, tc.update))
		})
	}
}

func TestLoadDocumentMissingFile(t *testing.T) {
	d, err := LoadDocument(filepath.Join(t.TempDir(), "openclaw.json"))
	require.NoError(t, err)
	assert.Empty(t, d)
}

func TestLoadDocumentInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openclaw.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadDocument(path)
	assert.Error(t, err)
}

func TestSaveWritesIndentedJSONAndBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "openclaw.json")

	first := Document{"gateway": map[string]any{"bind": "loopback"}, "note": "初始"}
	require.NoError(t, first.Save(path))
	// No prior file, no backup.
	_, err := os.Stat(path + ".bak")
	assert.True(t, os.IsNotExist(err))

	second := Document{"gateway": map[string]any{"bind": "lan"}}
	require.NoError(t, second.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "  \"gateway\"")
	assert.Contains(t, string(data), `"lan"`)

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Contains(t, string(backup), `"loopback"`)
	// Non-ASCII text is stored unescaped.
	assert.Contains(t, string(backup), "初始")
	assert.False(t, strings.Contains(string(backup), `\u`))

	roundTrip, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "lan", roundTrip.ensure("gateway")["bind"])
}

func TestSaveKeepsExactlyOneBackupGeneration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openclaw.json")

	require.NoError(t, Document{"gen": 1}.Save(path))
	require.NoError(t, Document{"gen": 2}.Save(path))
	require.NoError(t, Document{"gen": 3}.Save(path))

	backup, err := LoadDocument(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, float64(2), backup["gen"])
}
