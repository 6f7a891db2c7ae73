package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadFromFilesLayering(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{"app_port":"9000","db_driver":"postgres","max_upload_bytes":2048}`)
	yamlPath := writeFile(t, dir, "app.yaml", "app_port: \"9100\"\nredis_addr: cache:6379\n")
	envPath := writeFile(t, dir, ".env", "API_SECRET=\"s3cret\"\n# comment\nAPP_PORT=9200\n")

	require.NoError(t, loadFromFiles(jsonPath, yamlPath, envPath))
	t.Cleanup(func() { values = defaultValues() })

	assert.Equal(t, "9200", get("APP_PORT", ""))
	assert.Equal(t, "postgres", get("DB_DRIVER", ""))
	assert.Equal(t, "cache:6379", get("REDIS_ADDR", ""))
	assert.Equal(t, "s3cret", get("API_SECRET", ""))
	assert.Equal(t, "2048", get("MAX_UPLOAD_BYTES", ""))
}

func TestLoadFromFilesMissingFilesUseDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, loadFromFiles(
		filepath.Join(dir, "none.json"),
		filepath.Join(dir, "none.yaml"),
		filepath.Join(dir, ".env"),
	))
	t.Cleanup(func() { values = defaultValues() })

	assert.Equal(t, defaultAppPort, get("APP_PORT", ""))
	assert.Equal(t, "", get("API_SECRET", ""))
}

func TestEnvironmentOverridesFiles(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "APP_ENV=staging\n")
	require.NoError(t, loadFromFiles(filepath.Join(dir, "x.json"), filepath.Join(dir, "x.yaml"), envPath))
	t.Cleanup(func() { values = defaultValues() })

	t.Setenv("APP_ENV", "production")
	assert.Equal(t, "production", get("APP_ENV", ""))
}

func TestMalformedJSONIsAnError(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{not json`)
	err := loadFromFiles(jsonPath, filepath.Join(dir, "x.yaml"), filepath.Join(dir, ".env"))
	assert.Error(t, err)
}

func TestDatabaseDriverFallsBackToSQLite(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	assert.Equal(t, "sqlite", DatabaseDriver())
}

func TestCORSOriginsSplitsList(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, CORSOrigins())
}
