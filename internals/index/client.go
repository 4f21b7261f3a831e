package index

import (
	"context"
	"encoding/json"
	"net/url"
	"path"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// HTTPChannel queries a channel over http(s). The channel is expected to
// serve one JSON document per package at <base>/<name>/index.json
type HTTPChannel struct {
	BaseURL url.URL
	Client  *resty.Client
}

// NewHTTPChannel returns a channel client for the given base URL
func NewHTTPChannel(baseURL string) (*HTTPChannel, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid channel url %q", baseURL)
	}

	client := resty.New().
		SetTimeout(30 * time.Second).
		SetTransport(NewThrottleTransport(nil, rate.NewLimiter(rate.Limit(10), 5)))

	return &HTTPChannel{BaseURL: *parsed, Client: client}, nil
}

// Releases implements Channel
func (c *HTTPChannel) Releases(ctx context.Context, name string) ([]Release, error) {
	fileURL := c.BaseURL
	fileURL.Path = path.Join(fileURL.Path, name, "index.json")

	resp, err := c.Client.R().
		SetContext(ctx).
		Get(fileURL.String())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query channel for %q", name)
	}

	if resp.StatusCode() == 404 {
		return nil, &ErrPackageNotFound{Name: name, Channel: c.BaseURL.String()}
	}
	if resp.IsError() {
		return nil, errors.Errorf(
			"channel returned %s for package %q", resp.Status(), name,
		)
	}

	var pkgIndex PackageIndex
	if err := json.Unmarshal(resp.Body(), &pkgIndex); err != nil {
		return nil, errors.Wrapf(err, "channel returned invalid JSON for %q", name)
	}

	return pkgIndex.Releases, nil
}
