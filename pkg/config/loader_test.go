package config_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fsmkit/pkg/config"
)

// Tests in this file mutate the process environment and the package cache,
// so none of them run in parallel.

type defaultsConfig struct {
	Definition string     `env:"FSMCTL_TEST_DEFAULT_DEFINITION" envDefault:"machine.yaml"`
	Strict     bool       `env:"FSMCTL_TEST_DEFAULT_STRICT" envDefault:"false"`
	LogLevel   slog.Level `env:"FSMCTL_TEST_DEFAULT_LOG_LEVEL" envDefault:"warn"`
}

type successConfig struct {
	Definition string     `env:"FSMCTL_TEST_SUCCESS_DEFINITION"`
	Strict     bool       `env:"FSMCTL_TEST_SUCCESS_STRICT"`
	LogLevel   slog.Level `env:"FSMCTL_TEST_SUCCESS_LOG_LEVEL"`
}

type singletonConfig struct {
	Value string `env:"FSMCTL_TEST_SINGLETON" envDefault:"default_value"`
}

type requiredConfig struct {
	Required string `env:"FSMCTL_TEST_REQUIRED,required"`
}

type fileConfig struct {
	Definition   string   `env:"FSMCTL_TEST_DEFINITION"`
	Strict       bool     `env:"FSMCTL_TEST_STRICT"`
	Events       []string `env:"FSMCTL_TEST_EVENTS" envSeparator:","`
	Quoted       string   `env:"FSMCTL_TEST_QUOTED"`
	OnlyOverride string   `env:"FSMCTL_TEST_ONLY_OVERRIDE"`
}

func unsetFileVars(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"FSMCTL_TEST_DEFINITION",
		"FSMCTL_TEST_STRICT",
		"FSMCTL_TEST_EVENTS",
		"FSMCTL_TEST_QUOTED",
		"FSMCTL_TEST_ONLY_OVERRIDE",
	} {
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for _, k := range []string{
			"FSMCTL_TEST_DEFINITION",
			"FSMCTL_TEST_STRICT",
			"FSMCTL_TEST_EVENTS",
			"FSMCTL_TEST_QUOTED",
			"FSMCTL_TEST_ONLY_OVERRIDE",
		} {
			os.Unsetenv(k)
		}
	})
	config.ResetCache()
}

func TestLoad_Success(t *testing.T) {
	t.Setenv("FSMCTL_TEST_SUCCESS_DEFINITION", "daily.yaml")
	t.Setenv("FSMCTL_TEST_SUCCESS_STRICT", "true")
	t.Setenv("FSMCTL_TEST_SUCCESS_LOG_LEVEL", "debug")

	var cfg successConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "daily.yaml", cfg.Definition)
	assert.True(t, cfg.Strict)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_DefaultValues(t *testing.T) {
	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "machine.yaml", cfg.Definition)
	assert.False(t, cfg.Strict)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("FSMCTL_TEST_REQUIRED")
	config.ResetCache()

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.ErrorIs(t, err, config.ErrParsingConfig)

	assert.Panics(t, func() {
		var again requiredConfig
		config.MustLoad(&again)
	})
}

func TestLoad_Cached(t *testing.T) {
	config.ResetCache()
	t.Setenv("FSMCTL_TEST_SINGLETON", "first")

	var first singletonConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	t.Setenv("FSMCTL_TEST_SINGLETON", "second")

	var cached singletonConfig
	require.NoError(t, config.Load(&cached))
	assert.Equal(t, "first", cached.Value, "second load must be served from cache")

	var reloaded singletonConfig
	require.NoError(t, config.ForceReload(&reloaded))
	assert.Equal(t, "second", reloaded.Value)

	var afterReload singletonConfig
	require.NoError(t, config.Load(&afterReload))
	assert.Equal(t, "second", afterReload.Value)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *singletonConfig
	require.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	require.ErrorIs(t, config.ForceReload(cfg), config.ErrNilPointer)
}

func TestLoad_RequiredAfterSetenv(t *testing.T) {
	os.Unsetenv("FSMCTL_TEST_REQUIRED")
	config.ResetCache()

	var cfg requiredConfig
	require.Error(t, config.Load(&cfg))

	t.Setenv("FSMCTL_TEST_REQUIRED", "present")
	require.NoError(t, config.Load(&cfg), "failed loads are not cached")
	assert.Equal(t, "present", cfg.Required)
}

func TestLoadEnv_CustomPath(t *testing.T) {
	unsetFileVars(t)

	require.NoError(t, config.LoadEnv("testdata/.env.custom"))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "testdata/daily.yaml", cfg.Definition)
	assert.True(t, cfg.Strict)
	assert.Equal(t, []string{"study", "get_hungry", "eat"}, cfg.Events)
	assert.Equal(t, "quoted value", cfg.Quoted)
	assert.Empty(t, cfg.OnlyOverride)
}

func TestLoadEnv_MultiplePaths(t *testing.T) {
	unsetFileVars(t)

	require.NoError(t, config.LoadEnv("testdata/.env.custom", "testdata/.env.override"))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "testdata/override.json", cfg.Definition)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "enabled", cfg.OnlyOverride)
}

func TestLoadEnv_NonExistentPath(t *testing.T) {
	err := config.LoadEnv("testdata/missing.env")
	require.ErrorIs(t, err, config.ErrLoadingEnvFile)

	assert.Panics(t, func() { config.MustLoadEnv("testdata/missing.env") })
	assert.NotPanics(t, func() {
		unsetFileVars(t)
		config.MustLoadEnv("testdata/.env.custom")
	})
}
