package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, cfg.RootPath)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Console)
	assert.True(t, cfg.Logging.Pretty)
	assert.False(t, cfg.Watch.IgnoreHidden)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "127.0.0.1:9464", cfg.Metrics.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestConfigString(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RootPath = "/notes"

	s := cfg.String()
	assert.Contains(t, s, `"root_path": "/notes"`)
	assert.Contains(t, s, `"ignore_hidden": false`)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults",
			modify: func(c *Config) {},
		},
		{
			name:    "invalid log level",
			modify:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "logging",
		},
		{
			name: "metrics address checked when enabled",
			modify: func(c *Config) {
				c.Metrics.Enabled = true
				c.Metrics.Addr = "nope"
			},
			wantErr: "metrics",
		},
		{
			name:   "metrics address ignored when disabled",
			modify: func(c *Config) { c.Metrics.Addr = "nope" },
		},
		{
			name:    "root path with NUL",
			modify:  func(c *Config) { c.RootPath = "/a\x00b" },
			wantErr: "root_path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
