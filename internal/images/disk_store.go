package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymrota/internal/telemetry/tracing"
	"github.com/2beens/gymrota/pkg"
)

const (
	handleScheme = "file://"
	maxImageSize = 10 * 1024 * 1024
)

var (
	ErrFileNotFound  = errors.New("file not found")
	ErrImageTooLarge = errors.New("image too large")
)

// DiskStore keeps downloaded exercise images under a single root dir.
// Handles are file:// URIs of the stored files.
type DiskStore struct {
	rootPath   string
	httpClient *http.Client
}

func NewDiskStore(rootPath string, httpClient *http.Client) (*DiskStore, error) {
	if rootPath == "" {
		return nil, errors.New("root path cannot be empty")
	}

	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("abs root path: %w", err)
	}
	if err := pkg.EnsureDir(absRoot); err != nil {
		return nil, err
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &DiskStore{
		rootPath:   absRoot,
		httpClient: httpClient,
	}, nil
}

func (ds *DiskStore) RootPath() string {
	return ds.rootPath
}

// Download fetches the remote image and stores it under filename,
// returning the local handle
func (ds *DiskStore) Download(ctx context.Context, remoteURL, filename string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "diskStore.download")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("image.url", remoteURL))

	filename = filepath.Base(filename)
	if filename == "." || filename == string(filepath.Separator) {
		return "", fmt.Errorf("invalid filename: %q", filename)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}

	resp, err := ds.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("download %s: unexpected status %d", remoteURL, resp.StatusCode)
	}

	// write to a temp file first, so a failed download never leaves a partial image behind
	tmp, err := os.CreateTemp(ds.rootPath, ".download-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	written, err := io.Copy(tmp, io.LimitReader(resp.Body, maxImageSize+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	if written > maxImageSize {
		return "", ErrImageTooLarge
	}

	dst := filepath.Join(ds.rootPath, filename)
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("move image in place: %w", err)
	}

	span.SetAttributes(attribute.Int64("image.size", written))
	log.Debugf("disk store: image %s saved as %s (%d bytes)", remoteURL, filename, written)

	return handleScheme + dst, nil
}

// Exists reports whether the handle points to an existing file inside the store
func (ds *DiskStore) Exists(handle string) bool {
	path, ok := ds.pathOf(handle)
	if !ok {
		return false
	}
	exists, err := pkg.PathExists(path, false)
	if err != nil {
		log.Warnf("disk store: check %s: %s", handle, err)
		return false
	}
	return exists
}

// Open returns the stored file with the given name
func (ds *DiskStore) Open(name string) (io.ReadCloser, error) {
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, ErrFileNotFound
	}
	f, err := os.Open(filepath.Join(ds.rootPath, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return f, nil
}

// pathOf maps a handle to its file path; handles from other hosts map to nothing
func (ds *DiskStore) pathOf(handle string) (string, bool) {
	if !strings.HasPrefix(handle, handleScheme) {
		return "", false
	}
	path := filepath.Clean(strings.TrimPrefix(handle, handleScheme))
	if filepath.Dir(path) != ds.rootPath {
		return "", false
	}
	return path, true
}
