package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/boardfab/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "debug"},
		{"info", "info"},
		{"", "info"},
		{"warn", "warn"},
		{"error", "error"},
		{"unknown", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input).String())
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.LoggingConfig
		wantErr bool
	}{
		{
			name: "json format info level",
			cfg:  &config.LoggingConfig{Level: "info", Format: "json", Output: "stdout"},
		},
		{
			name: "text format debug level",
			cfg:  &config.LoggingConfig{Level: "debug", Format: "text", Output: "stderr"},
		},
		{
			name: "file output",
			cfg:  &config.LoggingConfig{Level: "warn", Format: "json", Output: filepath.Join(t.TempDir(), "boardfab.log")},
		},
		{
			name:    "unwritable file",
			cfg:     &config.LoggingConfig{Output: filepath.Join(t.TempDir(), "missing", "boardfab.log")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, log)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, log)
			_ = log.Sync()
		})
	}
}

func TestNewDefaultAndNop(t *testing.T) {
	log := NewDefault()
	require.NotNil(t, log)
	log.Debug("not shown")

	nop := NewNop()
	require.NotNil(t, nop)
	nop.Info("discarded")
	assert.NoError(t, nop.Sync())
}

func TestBuildEncoder(t *testing.T) {
	assert.NotNil(t, buildEncoder("json"))
	assert.NotNil(t, buildEncoder("text"))
	assert.NotNil(t, buildEncoder("unknown"))
}

func TestContextHelpers(t *testing.T) {
	log := NewNop()

	profileLogger := log.WithProfile("jlcpcb")
	assert.NotSame(t, log, profileLogger)

	chained := profileLogger.WithComponent("R1").WithFootprint("R_0603").WithFields(map[string]interface{}{"qty": 2})
	require.NotNil(t, chained)
	chained.Info("chained context")
}

func TestLoggingOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")

	log, err := New(&config.LoggingConfig{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("tables written")
	log.WithProfile("jlcpcb").WithComponent("U1").Warn("component skipped")
	log.Debug("hidden at info level")
	_ = log.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(content)
	assert.True(t, strings.Contains(text, "tables written"))
	assert.Contains(t, text, `"profile":"jlcpcb"`)
	assert.Contains(t, text, `"ref":"U1"`)
	assert.NotContains(t, text, "hidden at info level")
}
