// Package sonarapi implements the metrics source against the SonarCloud and
// SonarQube web API.
package sonarapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sonarsheet/sonarsheet/internal/contract"
	"github.com/sonarsheet/sonarsheet/schema"
)

// pageSize is the page size used when listing projects.
const pageSize = 500

// Client talks to a SonarCloud or SonarQube server. It is safe for
// concurrent use by the collection workers.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Compile-time check that Client satisfies the source contract.
var _ contract.MetricsSource = (*Client)(nil)

// NewClient builds a client from the validated config.
func NewClient(cfg *contract.Config) *Client {
	return &Client{
		baseURL:    cfg.ServerURL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// ListProjects returns all projects under the given organization key,
// following pagination until the listing is complete.
func (c *Client) ListProjects(ctx context.Context, orgKey string) ([]schema.Project, error) {
	var projects []schema.Project

	for page := 1; ; page++ {
		params := url.Values{
			"organization": {orgKey},
			"ps":           {strconv.Itoa(pageSize)},
			"p":            {strconv.Itoa(page)},
		}

		var resp struct {
			Paging struct {
				PageIndex int `json:"pageIndex"`
				PageSize  int `json:"pageSize"`
				Total     int `json:"total"`
			} `json:"paging"`
			Components []schema.Project `json:"components"`
		}
		if err := c.get(ctx, "/api/components/search", params, &resp); err != nil {
			return nil, err
		}

		projects = append(projects, resp.Components...)
		if len(resp.Components) == 0 || len(projects) >= resp.Paging.Total {
			break
		}
	}

	return projects, nil
}

// FetchMetrics returns the raw measures for one project. Metrics the server
// has no value for are simply absent from the response.
func (c *Client) FetchMetrics(ctx context.Context, projectKey string, metricKeys string) ([]schema.RawMetricSample, error) {
	params := url.Values{
		"component":  {projectKey},
		"metricKeys": {metricKeys},
	}

	var resp struct {
		Component struct {
			Measures []schema.RawMetricSample `json:"measures"`
		} `json:"component"`
	}
	if err := c.get(ctx, "/api/measures/component", params, &resp); err != nil {
		return nil, err
	}

	return resp.Component.Measures, nil
}

// FetchLastAnalysisDate returns the timestamp of the most recent analysis,
// or nil when the project was never analyzed.
func (c *Client) FetchLastAnalysisDate(ctx context.Context, projectKey string) (*string, error) {
	params := url.Values{
		"project": {projectKey},
		"ps":      {"1"},
	}

	var resp struct {
		Analyses []struct {
			Date string `json:"date"`
		} `json:"analyses"`
	}
	if err := c.get(ctx, "/api/project_analyses/search", params, &resp); err != nil {
		return nil, err
	}

	if len(resp.Analyses) == 0 {
		return nil, nil
	}
	return &resp.Analyses[0].Date, nil
}

// get issues one authenticated GET request and decodes the JSON body.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	fullURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	if c.token != "" {
		// Tokens authenticate as the basic-auth username with no password.
		req.SetBasicAuth(c.token, "")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
