package pkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInitLog tests the InitLog function with various configurations
func TestInitLog(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name    string
		level   string
		format  string
		file    string
		wantErr bool
	}{
		{
			name:   "Default settings with stderr",
			level:  "",
			format: "",
			file:   "",
		},
		{
			name:   "Debug level with JSON format",
			level:  "debug",
			format: "json",
			file:   "",
		},
		{
			name:   "Warn level with file output",
			level:  "warn",
			format: "json",
			file:   filepath.Join(tempDir, "test.log"),
		},
		{
			name:   "Unknown level falls back to info",
			level:  "chatty",
			format: "text",
			file:   "",
		},
		{
			name:    "Unwritable log file",
			level:   "info",
			format:  "text",
			file:    filepath.Join(tempDir, "missing", "test.log"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitLog(tt.level, tt.format, tt.file)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.file != "" {
				_, err := os.Stat(tt.file)
				assert.NoError(t, err)
			}
		})
	}
}
