package overpass

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/osm"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Client posts queries to an Overpass interpreter endpoint.
type Client struct {
	URL  string
	HTTP *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		URL:  endpoint,
		HTTP: &http.Client{Timeout: timeout},
	}
}

// Fetch runs query and decodes the JSON answer.
func (c *Client) Fetch(ctx context.Context, query string) (*osm.OSM, error) {
	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, eris.Wrap(err, "overpass: build request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	zap.L().Info("querying overpass", zap.String("url", c.URL))
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "overpass: request")
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			zap.L().Warn("failed to close response body", zap.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, eris.Errorf("overpass: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var o osm.OSM
	if err := json.NewDecoder(resp.Body).Decode(&o); err != nil {
		return nil, eris.Wrap(err, "overpass: decode response")
	}
	zap.L().Info("overpass answered",
		zap.Int("ways", len(o.Ways)),
		zap.Int("nodes", len(o.Nodes)),
		zap.Duration("elapsed", time.Since(start)))
	return &o, nil
}
