package gitlab

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/sbbwagh/gitlab-mcp/internal/config"
)

// Client handles GitLab API operations
type Client struct {
	config config.GitLabConfig
	http   *http.Client
}

// APIError represents a non-success response from the GitLab API.
// The status line and raw body are preserved verbatim so callers can tell
// authorization failures, not-found and remote validation errors apart.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitLab API error %d: %s", e.StatusCode, e.Body)
}

// createHTTPClient creates an HTTP client with custom TLS configuration
func createHTTPClient(cfg config.GitLabConfig) (*http.Client, error) {
	transport := &http.Transport{}

	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12, // Enforce TLS 1.2 minimum for security
	}

	if cfg.InsecureTLS {
		tlsConfig.InsecureSkipVerify = true
	}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate from %s: %w", cfg.CACertPath, err)
		}

		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA certificate from %s", cfg.CACertPath)
		}

		tlsConfig.RootCAs = caCertPool
	}

	transport.TLSClientConfig = tlsConfig

	return &http.Client{
		Transport: transport,
	}, nil
}

// NewClient creates a new GitLab API client
func NewClient(cfg config.GitLabConfig) *Client {
	httpClient, err := createHTTPClient(cfg)
	if err != nil {
		// Fallback to default client if TLS configuration fails
		httpClient = &http.Client{}
	}

	if cfg.PerPage <= 0 {
		cfg.PerPage = config.DefaultPerPage
	}

	return &Client{
		config: cfg,
		http:   httpClient,
	}
}

// projectPath percent-encodes a project reference (numeric ID or namespace/path)
// for embedding in a URL path segment. The reference itself is never inspected.
func projectPath(projectRef string) string {
	return url.PathEscape(projectRef)
}

// apiURL joins the configured API base URL with a request path.
func (c *Client) apiURL(path string) string {
	return strings.TrimRight(c.config.BaseURL, "/") + path
}

// do sends one API request and returns the raw response body on success.
// A non-2xx status yields an *APIError carrying the status line and body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, contentType string) ([]byte, error) {
	requestURL := c.apiURL(path)
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s %s request: %w", method, path, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(data),
		}
	}

	return data, nil
}

// getJSON issues a GET request and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}, what string) error {
	data, err := c.do(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	return decodeResponse(data, out, what)
}

// postJSON issues a POST request with a JSON body and decodes the response into out.
func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, out interface{}, what string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", what, err)
	}
	data, err := c.do(ctx, http.MethodPost, path, nil, body, "application/json")
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeResponse(data, out, what)
}

// putJSON issues a PUT request with a JSON body and decodes the response into out.
func (c *Client) putJSON(ctx context.Context, path string, payload interface{}, out interface{}, what string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", what, err)
	}
	data, err := c.do(ctx, http.MethodPut, path, nil, body, "application/json")
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeResponse(data, out, what)
}

// postForm issues a POST request with URL-encoded form fields and decodes the
// response into out. Used where GitLab expects bracketed form keys for nested
// structures (discussion positions).
func (c *Client) postForm(ctx context.Context, path string, form url.Values, out interface{}, what string) error {
	data, err := c.do(ctx, http.MethodPost, path, nil, []byte(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeResponse(data, out, what)
}

// decodeResponse parses a successful response body against the expected shape.
// A mismatch here is a contract violation by the remote API, not recoverable locally.
func decodeResponse(data []byte, out interface{}, what string) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", what, err)
	}
	return nil
}

// maxPages bounds the pagination accumulator so a remote that keeps returning
// full pages cannot spin the loop forever.
const maxPages = 1000

// collectPages fetches a paged list resource starting at page 1 and concatenates
// results in ascending page order until a page shorter than the page size
// (including an empty one) signals the end.
func collectPages[T any](ctx context.Context, c *Client, path string, query url.Values, what string) ([]T, error) {
	perPage := c.config.PerPage
	all := make([]T, 0, perPage)

	for page := 1; ; page++ {
		if page > maxPages {
			return nil, fmt.Errorf("listing %s exceeded %d pages, aborting", what, maxPages)
		}

		pageQuery := url.Values{}
		for key, values := range query {
			pageQuery[key] = values
		}
		pageQuery.Set("page", strconv.Itoa(page))
		pageQuery.Set("per_page", strconv.Itoa(perPage))

		data, err := c.do(ctx, http.MethodGet, path, pageQuery, nil, "")
		if err != nil {
			return nil, err
		}

		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("failed to decode %s response (page %d): %w", what, page, err)
		}

		all = append(all, items...)

		if len(items) < perPage {
			return all, nil
		}
	}
}
