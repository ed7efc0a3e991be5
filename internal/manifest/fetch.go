package manifest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/extpack-labs/extpack/internal/branding"
	"github.com/extpack-labs/extpack/internal/faults"
)

// maxManifestBytes bounds how much of a manifest response is read.
const maxManifestBytes = 8 << 20

// Fetcher retrieves and validates catalog manifests.
type Fetcher struct {
	httpClient *http.Client
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

// NewFetcher creates a manifest Fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the manifest at rawURI, validates it against the
// catalog schema, and decodes it. Schema violations surface as
// validation faults so callers can distinguish a malformed catalog
// from network trouble.
func (f *Fetcher) Fetch(ctx context.Context, rawURI string) (*Manifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURI, nil)
	if err != nil {
		return nil, faults.IO(err, "creating manifest request for %s", rawURI)
	}
	req.Header.Set("User-Agent", branding.CLIName())
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, faults.Canceled(ctx.Err())
		}
		return nil, faults.IO(err, "fetching manifest %s", rawURI)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, faults.IO(nil, "fetching manifest %s: status %d", rawURI, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxManifestBytes))
	if err != nil {
		return nil, faults.IO(err, "reading manifest %s", rawURI)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, faults.IO(err, "validating manifest %s", rawURI)
	}
	if !result.Valid {
		msgs := make([]string, len(result.Issues))
		for i, issue := range result.Issues {
			msgs[i] = issue.String()
		}
		return nil, faults.Validation("manifest %s failed schema validation: %s",
			rawURI, strings.Join(msgs, "; "))
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, faults.IO(err, "decoding manifest %s", rawURI)
	}
	return &m, nil
}
