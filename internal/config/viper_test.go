package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	// Run from a temp directory so no stray config.yaml is picked up
	t.Chdir(t.TempDir())

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.Equal(t, "healthcare_bills.csv", cfg.Store.File)
	assert.False(t, cfg.AI.Enabled)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	assert.ElementsMatch(t,
		[]string{"medical", "dental", "vision", "pharmacy"},
		cfg.HSA.EligibleCategories)
}

func TestInitializeConfig_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HSA_LOG_LEVEL", "debug")
	t.Setenv("HSA_STORE_FILE", "bills/test.csv")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "bills/test.csv", cfg.Store.File)
}

func TestInitializeConfig_AIEnabledRequiresKey(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HSA_AI_ENABLED", "true")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := InitializeConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestValidateConfig_Rejections(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.Log.Level = "info"
		cfg.Log.Format = "text"
		cfg.CSV.Delimiter = ","
		cfg.Store.File = "bills.csv"
		cfg.HSA.EligibleCategories = []string{"medical"}
		return cfg
	}

	cfg := base()
	cfg.Log.Level = "verbose"
	assert.Error(t, validateConfig(cfg))

	cfg = base()
	cfg.Log.Format = "xml"
	assert.Error(t, validateConfig(cfg))

	cfg = base()
	cfg.CSV.Delimiter = ";;"
	assert.Error(t, validateConfig(cfg))

	cfg = base()
	cfg.Store.File = ""
	assert.Error(t, validateConfig(cfg))

	cfg = base()
	cfg.HSA.EligibleCategories = nil
	assert.Error(t, validateConfig(cfg))

	assert.NoError(t, validateConfig(base()))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("HSA_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnv("HSA_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("HSA_TEST_KEY_MISSING", "fallback"))
}
