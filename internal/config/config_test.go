package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "patients", cfg.Firestore.Collection)
	assert.Empty(t, cfg.Firestore.ProjectID)
	assert.Equal(t, 30*time.Second, cfg.Seed.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Empty(t, cfg.Metrics.PushgatewayURL)
	assert.Equal(t, "patient_seed", cfg.Metrics.Job)
	assert.Empty(t, cfg.Events.RedisURL)
	assert.Equal(t, "patients.seeded", cfg.Events.Channel)
}

func TestLoadConfigFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SEED_FIRESTORE_COLLECTION", "patients_staging")
	t.Setenv("SEED_SEED_TIMEOUT", "5s")
	t.Setenv("SEED_LOGGING_FORMAT", "json")
	t.Setenv("SEED_EVENTS_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "patients_staging", cfg.Firestore.Collection)
	assert.Equal(t, 5*time.Second, cfg.Seed.Timeout)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Events.RedisURL)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
firestore:
  collection: patients_demo
  project_id: clinic-demo
metrics:
  pushgateway_url: http://pushgateway:9091
`), 0o600))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "patients_demo", cfg.Firestore.Collection)
	assert.Equal(t, "clinic-demo", cfg.Firestore.ProjectID)
	assert.Equal(t, "http://pushgateway:9091", cfg.Metrics.PushgatewayURL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigExplicitFileMustExist(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SEED_FIRESTORE_COLLECTION", "from_env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("collection", "patients", "")
	flags.String("log-level", "info", "")
	flags.Duration("timeout", 30*time.Second, "")
	require.NoError(t, flags.Parse([]string{"--collection", "from_flag", "--timeout", "2s"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "from_flag", cfg.Firestore.Collection)
	assert.Equal(t, 2*time.Second, cfg.Seed.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigUnsetFlagsKeepEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SEED_FIRESTORE_COLLECTION", "from_env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("collection", "patients", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.Firestore.Collection)
}

func TestLoadConfigValidation(t *testing.T) {
	chdirTemp(t)

	t.Setenv("SEED_LOGGING_FORMAT", "xml")
	_, err := LoadConfig("", nil)
	assert.Error(t, err)

	t.Setenv("SEED_LOGGING_FORMAT", "console")
	t.Setenv("SEED_SEED_TIMEOUT", "0s")
	_, err = LoadConfig("", nil)
	assert.Error(t, err)
}

// chdirTemp moves into an empty directory so no stray config.yaml is found.
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
