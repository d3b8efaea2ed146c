// Package images implements driven.ImageLoader for the image references a
// CV can contain: http(s) URLs, data URIs from uploads, and local files.
package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/custodia-labs/cvboard/internal/core/domain"
	"github.com/custodia-labs/cvboard/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.ImageLoader = (*Loader)(nil)

// maxImageBytes caps the size of a single image.
const maxImageBytes = 10 << 20

// ErrUnsupportedSource indicates an image reference the loader cannot read.
var ErrUnsupportedSource = errors.New("unsupported image source")

// Loader fetches and decodes images.
type Loader struct {
	client  *http.Client
	limiter *RateLimiter
	baseDir string
	timeout time.Duration
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		l.client = c
	}
}

// WithBaseDir resolves relative file paths against dir.
func WithBaseDir(dir string) Option {
	return func(l *Loader) {
		l.baseDir = dir
	}
}

// NewLoader creates a loader from image settings.
func NewLoader(cfg domain.ImageSettings, opts ...Option) *Loader {
	l := &Loader{
		client:  http.DefaultClient,
		limiter: NewRateLimiter(cfg.RatePerSecond, 1),
		timeout: cfg.Timeout,
	}
	if l.timeout <= 0 {
		l.timeout = domain.DefaultImageTimeout
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches and decodes the image at src.
func (l *Loader) Load(ctx context.Context, src string) (image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	data, err := l.read(ctx, src)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", shorten(src), err)
	}
	return img, nil
}

func (l *Loader) read(ctx context.Context, src string) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		return decodeDataURI(src)
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return l.fetch(ctx, src)
	case strings.HasPrefix(src, "file://"):
		u, err := url.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedSource, err)
		}
		return l.readFile(u.Path)
	case strings.Contains(src, "://"):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, shorten(src))
	default:
		return l.readFile(src)
	}
}

func (l *Loader) fetch(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "image/png,image/jpeg,image/webp,image/gif,image/bmp")

	resp, err := doWithRetry(ctx, l.client, req, l.limiter, 0)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", src, resp.StatusCode)
	}
	return readLimited(resp.Body)
}

func (l *Loader) readFile(path string) ([]byte, error) {
	if !filepath.IsAbs(path) && l.baseDir != "" {
		path = filepath.Join(l.baseDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()
	return readLimited(f)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image larger than %d bytes", maxImageBytes)
	}
	return data, nil
}

// decodeDataURI extracts the payload of a data: URI.
func decodeDataURI(src string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(src, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("%w: malformed data URI", ErrUnsupportedSource)
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decoding data URI: %w", err)
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding data URI: %w", err)
	}
	return []byte(s), nil
}

// shorten trims long sources such as data URIs for error messages.
func shorten(src string) string {
	const maxLen = 48
	if len(src) <= maxLen {
		return src
	}
	return src[:maxLen] + "..."
}
