// Package pypi implements the index client for PyPI-compatible package
// indexes using their JSON API.
package pypi

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.trai.ch/zerr"

	"go.velin.dev/pipfile/internal/core/domain"
	"go.velin.dev/pipfile/internal/core/ports"
)

const (
	requestTimeout = 30 * time.Second
	maxBodySize    = 32 << 20
)

// Client implements ports.IndexClient against the JSON API exposed at
// <index root>/pypi/<name>/json.
type Client struct {
	client   *http.Client
	insecure *http.Client
	cache    *diskCache
	logger   ports.Logger
}

var _ ports.IndexClient = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithCache enables the on-disk response cache rooted at dir.
func WithCache(dir string, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = newDiskCache(dir, ttl)
	}
}

// WithHTTPClient overrides the HTTP client used for verified requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
		c.insecure = hc
	}
}

// NewClient creates a new index client.
func NewClient(logger ports.Logger, opts ...Option) *Client {
	insecureTransport := http.DefaultTransport.(*http.Transport).Clone()
	insecureTransport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // honoring verify_ssl = false

	c := &Client{
		client:   &http.Client{Timeout: requestTimeout},
		insecure: &http.Client{Timeout: requestTimeout, Transport: insecureTransport},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Project fetches the release listing for the named package.
func (c *Client) Project(ctx context.Context, source domain.Source, name string) (*domain.Project, error) {
	normalized := domain.NormalizeName(name)
	endpoint := projectURL(source.URL, normalized)

	body, ok := c.cachedResponse(source, normalized)
	if !ok {
		var err error
		body, err = c.fetch(ctx, source, endpoint, name)
		if err != nil {
			return nil, err
		}
		c.storeResponse(source, normalized, body)
	}

	project, err := decodeProject(normalized, body)
	if err != nil {
		return nil, zerr.With(err, "package", name)
	}
	return project, nil
}

func (c *Client) fetch(ctx context.Context, source domain.Source, endpoint, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build index request")
	}
	req.Header.Set("Accept", "application/json")

	httpClient := c.client
	if !source.VerifySSL {
		httpClient = c.insecure
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		unavailable := zerr.Wrap(err, domain.ErrIndexUnavailable.Error())
		unavailable = zerr.With(unavailable, "index", source.Name)
		return nil, zerr.With(unavailable, "url", endpoint)
	}
	defer resp.Body.Close() //nolint:errcheck // Best effort close in defer

	switch {
	case resp.StatusCode == http.StatusNotFound:
		notFound := zerr.With(domain.ErrPackageNotFound, "package", name)
		return nil, zerr.With(notFound, "index", source.Name)
	case resp.StatusCode != http.StatusOK:
		unavailable := zerr.With(domain.ErrIndexUnavailable, "index", source.Name)
		return nil, zerr.With(unavailable, "status", fmt.Sprintf("%d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read index response")
	}
	return body, nil
}

func (c *Client) cachedResponse(source domain.Source, name string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	body, ok := c.cache.get(cacheKey(source.URL, name))
	return body, ok
}

func (c *Client) storeResponse(source domain.Source, name string, body []byte) {
	if c.cache == nil {
		return
	}
	if err := c.cache.put(cacheKey(source.URL, name), body); err != nil {
		// A cold cache on the next run is the only consequence.
		c.logger.Warn("failed to cache index response: " + err.Error())
	}
}

// projectURL derives the JSON API endpoint from a declared index URL. Pipfile
// sources conventionally point at the simple index; the JSON API lives at the
// index root.
func projectURL(indexURL, name string) string {
	root := strings.TrimSuffix(indexURL, "/")
	root = strings.TrimSuffix(root, "/simple")
	return root + "/pypi/" + name + "/json"
}

// projectDocument is the JSON API response shape, reduced to what resolution
// needs.
type projectDocument struct {
	Releases map[string][]releaseFile `json:"releases"`
}

type releaseFile struct {
	Digests        map[string]string `json:"digests"`
	RequiresPython string            `json:"requires_python"`
	Yanked         bool              `json:"yanked"`
}

func decodeProject(name string, body []byte) (*domain.Project, error) {
	var doc projectDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, zerr.Wrap(err, "failed to decode index response")
	}

	project := &domain.Project{Name: name}

	for versionStr, files := range doc.Releases {
		version, err := domain.ParseVersion(versionStr)
		if err != nil {
			// Indexes carry legacy uploads with unparsable versions; they
			// cannot be constrained, so they cannot be selected.
			continue
		}

		release := domain.Release{Version: version, Yanked: len(files) > 0}
		for _, f := range files {
			if !f.Yanked {
				release.Yanked = false
			}
			if digest, ok := f.Digests["sha256"]; ok && digest != "" {
				release.Hashes = append(release.Hashes, "sha256:"+digest)
			}
			if f.RequiresPython != "" && release.RequiresPython.IsAny() {
				if spec, err := domain.ParseSpecifierSet(f.RequiresPython); err == nil {
					release.RequiresPython = spec
				}
			}
		}
		sort.Strings(release.Hashes)

		project.Releases = append(project.Releases, release)
	}

	sort.Slice(project.Releases, func(i, j int) bool {
		return project.Releases[i].Version.Compare(project.Releases[j].Version) < 0
	})

	return project, nil
}
