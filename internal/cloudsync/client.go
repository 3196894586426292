package cloudsync

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

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymrota/internal/telemetry/tracing"
)

const (
	DefaultBaseURL = "https://jsonblob.com/api/jsonBlob"

	maxBlobSize = 10 * 1024 * 1024
)

var (
	ErrBlobNotFound = errors.New("cloud data not found")
	ErrNoLocation   = errors.New("blob created but no location returned")
)

// Client talks to a jsonblob compatible store: POST creates a blob and
// returns its location, PUT and GET address it by id.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) blobURL(syncID string) string {
	return c.baseURL + "/" + url.PathEscape(syncID)
}

// Upload creates a new blob when syncID is empty, otherwise it overwrites
// the existing one. Returns the id of the written blob.
func (c *Client) Upload(ctx context.Context, syncID string, blob map[string]string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cloudSyncClient.upload")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	body, err := json.Marshal(blob)
	if err != nil {
		return "", fmt.Errorf("marshal blob: %w", err)
	}

	method, reqURL := http.MethodPost, c.baseURL
	if syncID != "" {
		method, reqURL = http.MethodPut, c.blobURL(syncID)
	}
	span.SetAttributes(
		attribute.String("sync.method", method),
		attribute.Int("sync.keys", len(blob)),
	)

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("upload failed, status: %d", resp.StatusCode)
	}

	if method == http.MethodPut {
		return syncID, nil
	}

	location := strings.TrimSuffix(resp.Header.Get("Location"), "/")
	if location == "" {
		return "", ErrNoLocation
	}
	newID := location[strings.LastIndex(location, "/")+1:]
	if newID == "" {
		return "", ErrNoLocation
	}

	log.Debugf("cloud sync: new blob created: %s", newID)
	return newID, nil
}

// Download fetches the whole blob. Non-string values are kept as their JSON text.
func (c *Client) Download(ctx context.Context, syncID string) (_ map[string]string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cloudSyncClient.download")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.blobURL(syncID), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warnf("cloud sync: download %s, status: %d", syncID, resp.StatusCode)
		return nil, ErrBlobNotFound
	}

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBlobSize))
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(respBytes, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal blob: %w", err)
	}

	blob := make(map[string]string, len(raw))
	for k, v := range raw {
		if string(v) == "null" {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			blob[k] = s
			continue
		}
		blob[k] = string(v)
	}

	span.SetAttributes(attribute.Int("sync.keys", len(blob)))
	return blob, nil
}
