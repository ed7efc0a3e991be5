// Package download fetches remote files to disk with streaming progress
// and cooperative cancellation.
package download

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/extpack-labs/extpack/internal/branding"
	"github.com/extpack-labs/extpack/internal/faults"
)

const chunkSize = 32 * 1024

// ProgressFunc receives download progress in [0,1]. When the server does
// not announce a content length, it is called once with 1 at completion.
type ProgressFunc func(fraction float64)

// Client downloads files over HTTP.
type Client struct {
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(d *Client) {
		d.httpClient = c
	}
}

// New creates a download Client.
func New(opts ...Option) *Client {
	d := &Client{httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Fetch downloads uri to destPath, creating parent directories on demand.
// Cancellation is checked between chunk reads; a partially written file
// is left in place on failure.
func (d *Client) Fetch(ctx context.Context, uri, destPath string, onProgress ProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return faults.IO(err, "creating request for %s", uri)
	}
	req.Header.Set("User-Agent", branding.CLIName())

	resp, err := d.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return faults.Canceled(ctx.Err())
		}
		return faults.IO(err, "downloading %s", uri)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return faults.IO(nil, "downloading %s: status %d", uri, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return faults.IO(err, "creating directory for %s", destPath)
	}
	f, err := os.Create(destPath)
	if err != nil {
		return faults.IO(err, "creating %s", destPath)
	}
	defer f.Close()

	total := resp.ContentLength
	var written int64

	buf := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return faults.Canceled(err)
		}
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := f.Write(buf[:n]); writeErr != nil {
				return faults.IO(writeErr, "writing %s", destPath)
			}
			written += int64(n)
			if onProgress != nil && total > 0 {
				onProgress(min(float64(written)/float64(total), 1))
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			if ctx.Err() != nil {
				return faults.Canceled(ctx.Err())
			}
			return faults.IO(readErr, "reading download stream for %s", uri)
		}
	}

	if onProgress != nil {
		onProgress(1)
	}
	return nil
}
