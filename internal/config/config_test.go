package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camlist-cli/internal/archive"
	"camlist-cli/internal/meta"
)

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	assert.Equal(t, meta.DefaultBootFileName, v.GetString(KeyBootFile))
	assert.Equal(t, "info", v.GetString(KeyLogLevel))
	assert.Equal(t, 3, v.GetInt(KeyHTTPRetries))
	assert.Equal(t, time.Minute, v.GetDuration(KeyHTTPTimeout))
	assert.False(t, v.GetBool(KeyOverwrite))
	assert.Empty(t, v.GetString(KeySource))
	assert.Equal(t, archive.DefaultMaxEntrySize, v.GetInt64(KeyMaxEntrySize))
}

func TestCameras(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
cameras:
  - package: A540-100B-1.4.0-full.zip
    platform: a540
    revision: 100b
    source: 100a
`)))

	cams, err := Cameras(v)
	require.NoError(t, err)

	cam, ok := cams.GetCamera("a540-100b-1.4.0-full.zip")
	require.True(t, ok)
	assert.Equal(t, "a540", cam.Platform)
	assert.Equal(t, "100b", cam.Revision)
	assert.Equal(t, "100a", cam.Source)
}

func TestCameras_Invalid(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
cameras:
  - platform: a540
`)))

	_, err := Cameras(v)
	assert.Error(t, err)
}

func TestCameras_CaseOnlyDuplicate(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
cameras:
  - package: A540-100B-1.4.0-full.zip
    platform: a540
    revision: 100b
  - package: a540-100b-1.4.0-FULL.zip
    platform: a540
    revision: 100c
`)))

	_, err := Cameras(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 1 duplicates package")
}

func TestCameras_Empty(t *testing.T) {
	cams, err := Cameras(viper.New())
	require.NoError(t, err)
	_, ok := cams.GetCamera("anything.zip")
	assert.False(t, ok)
}

func TestInitConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "camlist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("boot_file: PS.FI2\nsource: /srv/camlist.zip\n"), 0o600))

	require.NoError(t, InitConfig(path))
	assert.Equal(t, "PS.FI2", viper.GetString(KeyBootFile))
	assert.Equal(t, "/srv/camlist.zip", viper.GetString(KeySource))
	assert.Equal(t, "info", viper.GetString(KeyLogLevel))

	require.NoError(t, SaveSource("https://example.com/camlist.zip", "abc"))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	assert.Equal(t, "https://example.com/camlist.zip", v.GetString(KeySource))
	assert.Equal(t, "abc", v.GetString(KeyChecksum))
}
