package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgregistry "github.com/goliatone/go-zwavegen/pkg/registry"
	"go.uber.org/zap"
)

const maxRecordBytes = 8 << 20

// Client implements pkgregistry.Fetcher over HTTP.
type Client struct {
	http       *http.Client
	productURL string
	timeout    time.Duration
	logger     *zap.Logger
}

// Ensure the implementation satisfies the public interface.
var _ pkgregistry.Fetcher = (*Client)(nil)

// New constructs a Client from pre-resolved options.
func New(options pkgregistry.FetcherOptions) *Client {
	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:       httpClient,
		productURL: options.ProductURL,
		timeout:    options.RequestTimeout,
		logger:     logger,
	}
}

// Fetch retrieves the product record for id. Every failure is reported as
// pkgregistry.ErrInvalidIdentifier with the cause attached.
func (c *Client) Fetch(ctx context.Context, id string) (pkgregistry.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pkgregistry.Record{}, fmt.Errorf("%w: identifier is empty", pkgregistry.ErrInvalidIdentifier)
	}

	endpoint := c.endpoint(id)
	c.logger.Debug("fetching registry record", zap.String("id", id), zap.String("url", endpoint))

	data, err := c.get(ctx, endpoint)
	if err != nil {
		return pkgregistry.Record{}, fmt.Errorf("%w: %q: %v", pkgregistry.ErrInvalidIdentifier, id, err)
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		return pkgregistry.Record{}, fmt.Errorf("%w: %q: response is not a JSON object", pkgregistry.ErrInvalidIdentifier, id)
	}

	var record pkgregistry.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return pkgregistry.Record{}, fmt.Errorf("%w: %q: decode: %v", pkgregistry.ErrInvalidIdentifier, id, err)
	}
	return record, nil
}

func (c *Client) endpoint(id string) string {
	pattern := c.productURL
	if pattern == "" {
		pattern = pkgregistry.DefaultProductURL
	}
	escaped := url.PathEscape(id)
	if !strings.Contains(pattern, "%s") {
		return strings.TrimRight(pattern, "/") + "/" + escaped
	}
	return fmt.Sprintf(pattern, escaped)
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	if c.http == nil {
		return nil, errors.New("registry: http client is not configured")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if c.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("unexpected status " + resp.Status)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxRecordBytes))
}
