package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"camlist-cli/internal/archive"
	"camlist-cli/internal/meta"
	"camlist-cli/pkg/models"
)

// Config keys
const (
	KeySource       = "source"
	KeyChecksum     = "checksum"
	KeyBootFile     = "boot_file"
	KeyOverwrite    = "overwrite"
	KeyLogLevel     = "log_level"
	KeyHTTPRetries  = "http_retries"
	KeyHTTPTimeout  = "http_timeout"
	KeyHTTPInsecure = "http_insecure"
	KeyMaxSize      = "max_download_size"
	KeyMaxEntrySize = "max_entry_size"
	KeyExporterPort = "exporter_port"
	KeyCameras      = "cameras"
)

const configName = ".camlist-cli"

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBootFile, meta.DefaultBootFileName)
	v.SetDefault(KeyOverwrite, false)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyHTTPRetries, 3)
	v.SetDefault(KeyHTTPTimeout, 60*time.Second)
	v.SetDefault(KeyHTTPInsecure, false)
	v.SetDefault(KeyMaxSize, int64(0))
	v.SetDefault(KeyMaxEntrySize, archive.DefaultMaxEntrySize)
	v.SetDefault(KeyExporterPort, "9110")
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) error {
	SetDefaults(viper.GetViper())

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}

		// Search config in home directory with name ".camlist-cli" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(configName)
	}

	// CAMLIST_BOOT_FILE, CAMLIST_SOURCE, ...
	viper.SetEnvPrefix("camlist")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine, defaults and env still apply
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// SaveSource updates the config file with the default archive location
func SaveSource(location, checksum string) error {
	viper.Set(KeySource, location)
	viper.Set(KeyChecksum, checksum)

	// Ensure the file exists before writing
	if err := viper.WriteConfig(); err != nil {
		// If file doesn't exist, create it
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return viper.SafeWriteConfig()
		}
		// If it exists but failed to write, try writing to default path
		home, _ := os.UserHomeDir()
		path := filepath.Join(home, configName+".yaml")
		return viper.WriteConfigAs(path)
	}
	return nil
}

// CameraOverride is one entry of the "cameras" table. It pins the camera a
// package name resolves to, ahead of package name parsing.
type CameraOverride struct {
	Package  string `mapstructure:"package"`
	Platform string `mapstructure:"platform"`
	Revision string `mapstructure:"revision"`
	Version  string `mapstructure:"version"`
	Source   string `mapstructure:"source"`
}

// Cameras returns the configured overrides keyed by package file name.
// Package names contain dots, so the table is a list rather than a map.
func Cameras(v *viper.Viper) (meta.MapProvider, error) {
	var overrides []CameraOverride
	if err := v.UnmarshalKey(KeyCameras, &overrides); err != nil {
		return nil, fmt.Errorf("invalid %s table: %w", KeyCameras, err)
	}

	cams := make(meta.MapProvider, len(overrides))
	seen := make(map[string]int, len(overrides))
	for i, o := range overrides {
		if o.Package == "" || o.Platform == "" {
			return nil, fmt.Errorf("invalid %s table: entry %d needs package and platform", KeyCameras, i)
		}
		// lookups ignore case, so keys must be unique ignoring case too
		folded := strings.ToLower(o.Package)
		if j, ok := seen[folded]; ok {
			return nil, fmt.Errorf("invalid %s table: entry %d duplicates package %q of entry %d", KeyCameras, i, o.Package, j)
		}
		seen[folded] = i
		cams[o.Package] = models.CameraDescriptor{
			Platform: o.Platform,
			Revision: o.Revision,
			Version:  o.Version,
			Source:   o.Source,
		}
	}
	return cams, nil
}
