// Package fetch downloads remote documents to local storage.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 60 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; TextMine/1.0)"

// Error represents an error while retrieving a document.
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	// Client overrides the HTTP client built from Timeout.
	Client *http.Client
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

func (o *Options) client() *http.Client {
	if o.Client != nil {
		return o.Client
	}
	return &http.Client{Timeout: o.Timeout}
}

// FileName returns the base name of the resource addressed by urlStr, which is
// the name Download stores it under.
func FileName(urlStr string) (string, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	// The last path segment, which is empty for a trailing slash.
	name := parsedURL.Path[strings.LastIndex(parsedURL.Path, "/")+1:]
	if name == "" || name == "." || name == ".." {
		return "", &Error{
			URL:     urlStr,
			Message: "URL has no file name",
		}
	}
	return name, nil
}

// Download retrieves urlStr and stores it as destDir/<base name of the URL
// path>. The directory is created if needed. The returned path is only
// written once the whole body has been received.
func Download(ctx context.Context, urlStr, destDir string, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	name, err := FileName(urlStr)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := opts.client().Do(req)
	if err != nil {
		return "", &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{
			URL:        urlStr,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", &Error{
			URL:     urlStr,
			Message: "failed to create destination directory",
			Cause:   err,
		}
	}

	dest := filepath.Join(destDir, name)
	if err := writeAtomic(dest, resp.Body); err != nil {
		return "", &Error{
			URL:     urlStr,
			Message: "failed to write " + dest,
			Cause:   err,
		}
	}

	return dest, nil
}

// writeAtomic copies r into a temp file next to dest and renames it into
// place, so dest never holds a partial body.
func writeAtomic(dest string, r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.part")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return err
	}
	committed = true
	return nil
}

// Downloader adapts Download to a reusable retriever with fixed options.
type Downloader struct {
	Options *Options
}

// NewDownloader creates a Downloader; nil opts uses DefaultOptions.
func NewDownloader(opts *Options) *Downloader {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Downloader{Options: opts}
}

// Download retrieves urlStr into destDir.
func (d *Downloader) Download(ctx context.Context, urlStr, destDir string) (string, error) {
	return Download(ctx, urlStr, destDir, d.Options)
}
