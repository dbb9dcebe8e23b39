package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Port)
	assert.NotEmpty(t, cfg.DBName)
	assert.NotEmpty(t, cfg.RedisURL)
	assert.NotEmpty(t, cfg.Env)
}

func TestValidateRequiresPort(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.Validate())
}

func TestValidateProductionPassword(t *testing.T) {
	cfg := &Config{
		Port:       "8480",
		Env:        "production",
		DBPassword: "password",
	}
	assert.Error(t, cfg.Validate())

	cfg.DBPassword = "s3cure-and-long"
	assert.NoError(t, cfg.Validate())
}

func TestValidateDevelopmentDefaultsPass(t *testing.T) {
	cfg := &Config{
		Port:       "8480",
		Env:        "development",
		DBPassword: "password",
	}
	assert.NoError(t, cfg.Validate())
}
