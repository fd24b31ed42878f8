package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters_Fallbacks(t *testing.T) {
	t.Setenv("FOLHA_TEST_INT", "not-a-number")
	t.Setenv("FOLHA_TEST_BOOL", "true")
	t.Setenv("FOLHA_TEST_DURATION", "250ms")

	assert.Equal(t, "fallback", GetString("FOLHA_TEST_MISSING", "fallback"))
	assert.Equal(t, 7, GetInt("FOLHA_TEST_INT", 7))
	assert.True(t, GetBool("FOLHA_TEST_BOOL", false))
	assert.Equal(t, 250*time.Millisecond, GetDuration("FOLHA_TEST_DURATION", time.Second))
	assert.Equal(t, time.Second, GetDuration("FOLHA_TEST_MISSING", time.Second))
}

func TestLoad_DoesNotOverrideAndSkipsMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FOLHA_TEST_FROM_FILE=file\nFOLHA_TEST_PRESET=file\n"), 0o600))

	t.Setenv("FOLHA_TEST_PRESET", "process")
	t.Cleanup(func() { os.Unsetenv("FOLHA_TEST_FROM_FILE") })

	require.NoError(t, Load(path, filepath.Join(dir, "missing.env")))

	assert.Equal(t, "file", GetString("FOLHA_TEST_FROM_FILE", ""))
	assert.Equal(t, "process", GetString("FOLHA_TEST_PRESET", ""))
}
