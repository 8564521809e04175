package envfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "", s.Get("ARK_API_KEY"))
}

func TestLoadParseRules(t *testing.T) {
	s, err := Load(writeEnvFile(t, `
# comment line
ARK_API_KEY = key-from-file

malformed line without equals
ARK_MODEL_ID=model=with=equals
  WECOM_TOKEN  =  spaced
EMPTY=
`))
	require.NoError(t, err)

	assert.Equal(t, "key-from-file", s.Get("ARK_API_KEY"))
	// Only the first "=" splits; the rest belongs to the value.
	assert.Equal(t, "model=with=equals", s.Get("ARK_MODEL_ID"))
	assert.Equal(t, "spaced", s.Get("WECOM_TOKEN"))
	assert.Equal(t, "", s.Get("EMPTY"))
	assert.Equal(t, 4, s.Len())
}

func TestEnvironmentWinsOverFile(t *testing.T) {
	s, err := Load(writeEnvFile(t, "ARK_API_KEY=from-file\nARK_MODEL_ID=from-file\n"))
	require.NoError(t, err)

	t.Setenv("ARK_API_KEY", "from-env")
	assert.Equal(t, "from-env", s.Get("ARK_API_KEY"))
	assert.Equal(t, "from-file", s.Get("ARK_MODEL_ID"))
}

func TestEmptyEnvironmentValueFallsBack(t *testing.T) {
	s, err := Load(writeEnvFile(t, "TELEGRAM_BOT_TOKEN=from-file\n"))
	require.NoError(t, err)

	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	assert.Equal(t, "from-file", s.Get("TELEGRAM_BOT_TOKEN"))
}
