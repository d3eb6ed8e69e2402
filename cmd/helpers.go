package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/viper"

	"camlist-cli/internal/archive"
	"camlist-cli/internal/catalog"
	"camlist-cli/internal/client"
	"camlist-cli/internal/config"
	"camlist-cli/internal/meta"
	"camlist-cli/internal/source"
	"camlist-cli/pkg/models"
)

// Helper to build the camera provider chain: config overrides first, then package names
func setupCameraProvider() (meta.CameraProvider, error) {
	overrides, err := config.Cameras(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return meta.ChainProvider{overrides, meta.PackageNameProvider{}}, nil
}

// Helper to initialize the list builder from stored config
func setupBuilder() (*catalog.Builder, error) {
	cameras, err := setupCameraProvider()
	if err != nil {
		return nil, err
	}

	walker := archive.NewWalker(
		cameras,
		meta.StaticBootProvider(viper.GetString(config.KeyBootFile)),
		logger,
		archive.WithMaxEntrySize(viper.GetInt64(config.KeyMaxEntrySize)),
	)

	opts := []catalog.Option{catalog.WithLogger(logger)}
	if viper.GetBool(config.KeyOverwrite) {
		opts = append(opts, catalog.WithOverwrite())
	}
	return catalog.NewBuilder(walker, opts...), nil
}

// Helper to initialize the archive loader from stored config
func setupLoader() *source.Loader {
	api := client.New(client.ClientConfig{
		Retries:   viper.GetInt(config.KeyHTTPRetries),
		Timeout:   viper.GetDuration(config.KeyHTTPTimeout),
		Insecure:  viper.GetBool(config.KeyHTTPInsecure),
		MaxSize:   viper.GetInt64(config.KeyMaxSize),
		UserAgent: "camlist-cli",
	})
	return source.New(api)
}

// archiveLocation returns the first argument or the configured source
func archiveLocation(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	location := viper.GetString(config.KeySource)
	if location == "" {
		fatalf("no archive given. Pass a path or URL, or run 'camlist-cli source' first.")
	}
	return location
}

// buildIndex loads the archive at location and builds its camera list
func buildIndex(location string) (models.PlatformIndex, archive.Stats, error) {
	checksum := ""
	if location == viper.GetString(config.KeySource) {
		checksum = viper.GetString(config.KeyChecksum)
	}

	builder, err := setupBuilder()
	if err != nil {
		return nil, archive.Stats{}, err
	}

	data, err := setupLoader().Load(location, checksum)
	if err != nil {
		return nil, archive.Stats{}, err
	}

	return builder.GetCameraListStats(bytes.NewReader(data), int64(len(data)))
}

// writeDocument encodes v as JSON or YAML depending on the output flags.
// It returns false when neither is requested.
func writeDocument(w io.Writer, v any) (bool, error) {
	switch {
	case jsonOutput:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case yamlOutput:
		out, err := yaml.Marshal(v)
		if err != nil {
			return true, err
		}
		_, err = w.Write(out)
		return true, err
	}
	return false, nil
}

// printDocument writes a JSON/YAML document to stdout if requested
func printDocument(v any) bool {
	done, err := writeDocument(os.Stdout, v)
	if err != nil {
		fatalf("encoding output: %v", err)
	}
	return done
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
