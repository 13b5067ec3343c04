package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	tests := []struct {
		name   string
		info   Info
		short  string
		stamp  string
		String string
	}{
		{
			name:   "untagged dev build",
			info:   Info{CommitHash: "dev", BuildTime: "unknown", Version: "dev"},
			short:  "dev",
			stamp:  "dev",
			String: "vkgen dev (commit dev, built unknown)",
		},
		{
			name:   "untagged commit",
			info:   Info{CommitHash: "0123456789abcdef", BuildTime: "2026-01-02", Version: "dev"},
			short:  "0123456",
			stamp:  "dev-0123456",
			String: "vkgen dev (commit 0123456, built 2026-01-02)",
		},
		{
			name:   "release",
			info:   Info{CommitHash: "0123456789abcdef", BuildTime: "2026-01-02", Version: "v0.3.0"},
			short:  "0123456",
			stamp:  "v0.3.0",
			String: "vkgen v0.3.0 (commit 0123456, built 2026-01-02)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.short, tt.info.Short())
			assert.Equal(t, tt.stamp, tt.info.Stamp())
			assert.Equal(t, tt.String, tt.info.String())
		})
	}
}

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}
