package client

import (
	"crypto/tls"
	"time"

	"github.com/go-resty/resty/v2"
)

// ArchiveClient downloads firmware archives over HTTP.
type ArchiveClient struct {
	HTTP   *resty.Client
	Config ClientConfig
}

type ClientConfig struct {
	Retries   int           // Retries after a transport error or 5xx response
	Timeout   time.Duration // Per request, zero means none
	Insecure  bool          // Skip TLS verification for mirrors with self-signed certs
	UserAgent string        // Sent when not empty
	MaxSize   int64         // Download cap in bytes, zero means no limit
}

func New(cfg ClientConfig) *ArchiveClient {
	r := resty.New()

	r.SetHeader("Accept", "application/zip, application/octet-stream")
	if cfg.UserAgent != "" {
		r.SetHeader("User-Agent", cfg.UserAgent)
	}
	if cfg.Timeout > 0 {
		r.SetTimeout(cfg.Timeout)
	}

	// Retry transient failures, 4xx answers are final
	r.SetRetryCount(cfg.Retries)
	r.SetRetryWaitTime(500 * time.Millisecond)
	r.SetRetryMaxWaitTime(5 * time.Second)
	r.AddRetryCondition(func(resp *resty.Response, err error) bool {
		return err != nil || resp.StatusCode() >= 500
	})

	if cfg.Insecure {
		r.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	return &ArchiveClient{
		HTTP:   r,
		Config: cfg,
	}
}
