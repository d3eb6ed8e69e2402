// Package metrics exposes catalog builds as prometheus metrics.
package metrics

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"camlist-cli/internal/archive"
	"camlist-cli/pkg/models"
)

// BuildFunc builds a fresh index and reports what the walk saw.
type BuildFunc func() (models.PlatformIndex, archive.Stats, error)

var (
	upDesc = prometheus.NewDesc(
		"camlist_up", "Was the last catalog build successful.", nil, nil,
	)
	buildDurationDesc = prometheus.NewDesc(
		"camlist_build_duration_seconds", "Time taken to build the catalog.", nil, nil,
	)
	platformCountDesc = prometheus.NewDesc(
		"camlist_platforms_total", "Number of platforms in the catalog.", nil, nil,
	)
	revisionCountDesc = prometheus.NewDesc(
		"camlist_platform_revisions", "Number of revisions per platform.", []string{"platform"}, nil,
	)
	revisionInfoDesc = prometheus.NewDesc(
		"camlist_revision_info", "Revision present in the catalog.", []string{"platform", "revision", "key"}, nil,
	)
	archivesDesc = prometheus.NewDesc(
		"camlist_archives_walked", "Archive levels opened by the last build.", nil, nil,
	)
	unresolvedDesc = prometheus.NewDesc(
		"camlist_unresolved_packages", "Metadata entries whose package name was not recognised.", nil, nil,
	)
)

// CatalogCollector rebuilds the catalog on every scrape.
type CatalogCollector struct {
	Build  BuildFunc
	Logger *log.Logger

	mu    sync.Mutex
	last  models.PlatformIndex
	built time.Time
}

// Latest returns the index of the last successful build and when it was built.
func (c *CatalogCollector) Latest() (models.PlatformIndex, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, c.built
}

func (c *CatalogCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- buildDurationDesc
	ch <- platformCountDesc
	ch <- revisionCountDesc
	ch <- revisionInfoDesc
	ch <- archivesDesc
	ch <- unresolvedDesc
}

func (c *CatalogCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	start := time.Now()

	index, stats, err := c.Build()
	duration := time.Since(start).Seconds()
	ch <- prometheus.MustNewConstMetric(buildDurationDesc, prometheus.GaugeValue, duration)

	if err != nil {
		if c.Logger != nil {
			c.Logger.Error("catalog build failed", "err", err)
		}
		ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, 0)
		return
	}

	c.last = index
	c.built = start

	ch <- prometheus.MustNewConstMetric(platformCountDesc, prometheus.GaugeValue, float64(len(index)))
	for _, platform := range index.Platforms() {
		data := index[platform]
		ch <- prometheus.MustNewConstMetric(revisionCountDesc, prometheus.GaugeValue, float64(len(data.Revisions)), platform)
		for _, key := range data.RevisionKeys() {
			ch <- prometheus.MustNewConstMetric(revisionInfoDesc, prometheus.GaugeValue, 1,
				platform, data.Revisions[key].Source.Revision, key)
		}
	}
	ch <- prometheus.MustNewConstMetric(archivesDesc, prometheus.GaugeValue, float64(stats.Archives))
	ch <- prometheus.MustNewConstMetric(unresolvedDesc, prometheus.GaugeValue, float64(stats.Unresolved))
	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, 1)
}
