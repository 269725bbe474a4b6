package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"discover/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	cfg, err := config.ParseConfig([]byte(`
[feed]
source = "$HOME/featured.json"

[server]
port = 8080

[[resources]]
package_name = "org.kde.foo"
name = "Foo"
icon = "foo-icon"
comment = "A foo app"
screenshot_url = "http://x/shot.png"
`))
	require.NoError(t, err)

	assert.Equal(t, "$HOME/featured.json", cfg.Feed.Source)
	assert.Equal(t, config.DefaultUserAgent, cfg.Feed.UserAgent)
	assert.Equal(t, config.DefaultTimeout, cfg.Feed.TimeoutSeconds)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, config.DefaultDatabase, cfg.Catalog.Database)
	require.Len(t, cfg.Resources, 1)
	assert.Equal(t, "Foo", cfg.Resources[0].Name)
	assert.Equal(t, "http://x/shot.png", cfg.Resources[0].ScreenshotURL)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "invalid toml",
			data: "[feed",
		},
		{
			name: "resource without package name",
			data: "[[resources]]\nname = \"Foo\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.ParseConfig([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "discover.toml")
	require.NoError(t, os.WriteFile(path, []byte("[catalog]\ndatabase = \"other.db\"\n"), 0o644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "other.db", cfg.Catalog.Database)
	assert.Equal(t, config.DefaultFeedSource, cfg.Feed.Source)

	_, err = config.LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
