package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"camlist-cli/internal/archive"
	"camlist-cli/internal/config"
	"camlist-cli/internal/metrics"
	"camlist-cli/pkg/models"
)

// Variables to hold flag values
var (
	expSource     string
	serviceAction string // "install", "uninstall", "start", "stop"
)

// --- SERVICE WRAPPER ---

// program implements the kardianos/service interface
type program struct {
	exit      chan struct{}
	server    *http.Server
	collector *metrics.CatalogCollector
	port      string
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	p.exit = make(chan struct{})
	go p.run()
	return nil
}

func (p *program) run() {
	registry := prometheus.NewRegistry()
	registry.MustRegister(p.collector)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: logger.StandardLog(),
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	mux.HandleFunc("/cameras.json", p.serveCameraList)

	addr := fmt.Sprintf(":%s", p.port)
	p.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("camlist exporter listening", "addr", addr)

	// Blocking call to listen
	if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("HTTP server error", "err", err)
	}
}

// serveCameraList returns the index of the last successful scrape
func (p *program) serveCameraList(w http.ResponseWriter, r *http.Request) {
	index, built := p.collector.Latest()
	if index == nil {
		http.Error(w, "catalog not built yet, scrape /metrics first", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Last-Modified", built.UTC().Format(http.TimeFormat))
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(index); err != nil {
		logger.Error("encoding camera list", "err", err)
	}
}

func (p *program) Stop(s service.Service) error {
	// Stop should not block. Signal the app to stop.
	logger.Info("stopping service")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "err", err)
		}
	}
	close(p.exit)
	return nil
}

// --- COMMAND ---

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start Prometheus exporter service",
	Long: `Starts a long-running HTTP server that rebuilds the camera list on every
scrape of /metrics and serves the latest list at /cameras.json.
Can be installed as a system service.`,
	Run: func(cmd *cobra.Command, args []string) {
		location := expSource
		if location == "" {
			location = archiveLocation(nil)
		}
		port := viper.GetString(config.KeyExporterPort)

		// Scrapes report a bad cameras table as camlist_up 0, but refuse to start with one
		if _, err := setupCameraProvider(); err != nil {
			fatalf("%v", err)
		}

		// 1. Define Service Configuration
		svcConfig := &service.Config{
			Name:        "camlist-exporter",
			DisplayName: "Camera List Prometheus Exporter",
			Description: "Exposes the CHDK camera firmware catalog to Prometheus",
			// Arguments passed to the binary when run as a service
			Arguments: []string{
				"exporter",
				"--source", location,
				"--port", port,
				"--boot-file", viper.GetString(config.KeyBootFile),
			},
		}
		if cfgFile != "" {
			svcConfig.Arguments = append(svcConfig.Arguments, "--config", cfgFile)
		}

		prg := &program{
			port: port,
			collector: &metrics.CatalogCollector{
				Build: func() (models.PlatformIndex, archive.Stats, error) {
					return buildIndex(location)
				},
				Logger: logger,
			},
		}

		s, err := service.New(prg, svcConfig)
		if err != nil {
			fatalf("%v", err)
		}

		// 2. Handle Service Control Actions (Install, Start, Stop, Uninstall)
		if serviceAction != "" {
			err = service.Control(s, serviceAction)
			if err != nil {
				fatalf("failed to %s service: %v", serviceAction, err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		// 3. Run the Service (Blocking)
		// This happens when the Service Manager starts the binary, OR when run interactively without flags
		svcLogger, err := s.Logger(nil)
		if err != nil {
			fatalf("%v", err)
		}
		if err = s.Run(); err != nil {
			_ = svcLogger.Error(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exporterCmd)
	exporterCmd.Flags().StringVar(&expSource, "source", "", "Archive path or URL (default is the configured source)")
	exporterCmd.Flags().String("port", "9110", "Port to listen on")
	_ = viper.BindPFlag(config.KeyExporterPort, exporterCmd.Flags().Lookup("port"))

	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
