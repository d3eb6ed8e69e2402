package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camlist-cli/internal/archive"
	"camlist-cli/internal/config"
	"camlist-cli/internal/metrics"
	"camlist-cli/pkg/models"
)

func writeArchive(t *testing.T, packages ...string) string {
	t.Helper()

	var pkg bytes.Buffer
	pw := zip.NewWriter(&pkg)
	_, err := pw.Create("DISKBOOT.BIN")
	require.NoError(t, err)
	require.NoError(t, pw.Close())

	var root bytes.Buffer
	rw := zip.NewWriter(&root)
	for _, name := range packages {
		w, err := rw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(pkg.Bytes())
		require.NoError(t, err)
	}
	require.NoError(t, rw.Close())

	path := filepath.Join(t.TempDir(), "packages.zip")
	require.NoError(t, os.WriteFile(path, root.Bytes(), 0o600))
	return path
}

func resetOutputFlags(t *testing.T) {
	t.Cleanup(func() {
		jsonOutput = false
		yamlOutput = false
		viper.Reset()
	})
	config.SetDefaults(viper.GetViper())
}

func TestBuildIndex(t *testing.T) {
	resetOutputFlags(t)
	path := writeArchive(t, "g12-100c-1.3.0-full.zip", "a540-100b-1.4.0-full.zip", "a540-100a-1.4.0-full.zip")

	index, stats, err := buildIndex(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a540", "g12"}, index.Platforms())
	assert.Equal(t, 4, stats.Archives)
	assert.Equal(t, 3, stats.Matches)
}

func TestBuildIndex_ConfiguredOverrides(t *testing.T) {
	resetOutputFlags(t)
	viper.SetConfigType("yaml")
	require.NoError(t, viper.ReadConfig(strings.NewReader(`
cameras:
  - package: custom.zip
    platform: ixus70
    revision: 102c
`)))
	path := writeArchive(t, "custom.zip")

	index, _, err := buildIndex(path)
	require.NoError(t, err)
	require.Contains(t, index, "ixus70")
	assert.Contains(t, index["ixus70"].Revisions, "0x1020300")
}

func TestBuildIndex_Checksum(t *testing.T) {
	resetOutputFlags(t)
	path := writeArchive(t, "g12-100c-1.3.0-full.zip")
	viper.Set(config.KeySource, path)
	viper.Set(config.KeyChecksum, strings.Repeat("0", 64))

	_, _, err := buildIndex(path)
	assert.Error(t, err)
}

func TestBuildIndex_InvalidCameras(t *testing.T) {
	resetOutputFlags(t)
	viper.SetConfigType("yaml")
	require.NoError(t, viper.ReadConfig(strings.NewReader(`
cameras:
  - package: custom.zip
`)))
	path := writeArchive(t, "g12-100c-1.3.0-full.zip")

	_, _, err := buildIndex(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs package and platform")

	// The exporter reports the failure instead of exiting.
	c := &metrics.CatalogCollector{
		Build: func() (models.PlatformIndex, archive.Stats, error) {
			return buildIndex(path)
		},
	}
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(c))
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP camlist_up Was the last catalog build successful.
# TYPE camlist_up gauge
camlist_up 0
`), "camlist_up"))
}

func TestBuildIndex_MaxEntrySize(t *testing.T) {
	resetOutputFlags(t)
	path := writeArchive(t, "g12-100c-1.3.0-full.zip")
	viper.Set(config.KeyMaxEntrySize, 8)

	_, _, err := buildIndex(path)
	assert.ErrorIs(t, err, archive.ErrEntryTooLarge)

	viper.Set(config.KeyMaxEntrySize, 0)
	index, _, err := buildIndex(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"g12"}, index.Platforms())
}

func TestWriteDocument(t *testing.T) {
	resetOutputFlags(t)

	a540 := models.NewPlatformData()
	a540.Revisions["0x1000200"] = &models.RevisionData{Source: models.SourceData{Platform: "a540", Revision: "100b"}}
	a540.Revisions["0x1000100"] = &models.RevisionData{Source: models.SourceData{Platform: "a540", Revision: "100a"}}
	index := models.PlatformIndex{"g12": models.NewPlatformData(), "a540": a540}

	var buf bytes.Buffer
	ok, err := writeDocument(&buf, index)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, buf.String())

	jsonOutput = true
	ok, err = writeDocument(&buf, index)
	require.NoError(t, err)
	assert.True(t, ok)
	out := buf.String()
	assert.Less(t, strings.Index(out, `"a540"`), strings.Index(out, `"g12"`))
	assert.Less(t, strings.Index(out, `"0x1000100"`), strings.Index(out, `"0x1000200"`))
	assert.Contains(t, out, `"revision": "100b"`)

	jsonOutput = false
	yamlOutput = true
	buf.Reset()
	ok, err = writeDocument(&buf, index)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), "a540:")
	assert.Contains(t, buf.String(), "revision: 100a")
}
