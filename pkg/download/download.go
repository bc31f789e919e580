// Package download fetches model artifacts over HTTP into a directory.
//
// A failed request is a soft failure: it is reported, no file is created and
// the caller carries on. Only local write failures are returned as errors.
// Bodies are streamed in fixed-size chunks and every chunk is synced to disk
// before the next one is read.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/arthur-debert/plugboot/internal/version"
	"github.com/arthur-debert/plugboot/pkg/errors"
	"github.com/arthur-debert/plugboot/pkg/filesystem"
	"github.com/arthur-debert/plugboot/pkg/logging"
	"github.com/arthur-debert/plugboot/pkg/report"
	"github.com/rs/zerolog"
)

// DefaultChunkSize is the number of bytes read and synced at a time
const DefaultChunkSize = 8 * 1024

// Result describes one download attempt
type Result struct {
	URL        string
	Path       string
	OK         bool
	StatusCode int
	Reason     string
	Bytes      int64
}

// Downloader streams URLs to files
type Downloader struct {
	fs        filesystem.FS
	client    *http.Client
	chunkSize int
	userAgent string
	reporter  report.Reporter
	logger    zerolog.Logger
}

// Option configures a Downloader
type Option func(*Downloader)

// WithClient sets the HTTP client
func WithClient(c *http.Client) Option {
	return func(d *Downloader) {
		if c != nil {
			d.client = c
		}
	}
}

// WithChunkSize sets how many bytes are written between syncs
func WithChunkSize(n int) Option {
	return func(d *Downloader) {
		if n > 0 {
			d.chunkSize = n
		}
	}
}

// WithReporter sets where failed downloads are reported
func WithReporter(r report.Reporter) Option {
	return func(d *Downloader) {
		if r != nil {
			d.reporter = r
		}
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(d *Downloader) {
		if ua != "" {
			d.userAgent = ua
		}
	}
}

// NewClient returns an HTTP client that gives up when no response headers
// arrive within headerTimeout. The body transfer has no deadline; zero waits
// for headers forever too.
func NewClient(headerTimeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = headerTimeout
	return &http.Client{Transport: transport}
}

// New creates a downloader writing into fs; a nil fs means the OS filesystem
func New(fs filesystem.FS, opts ...Option) *Downloader {
	if fs == nil {
		fs = filesystem.NewOS()
	}
	d := &Downloader{
		fs:        fs,
		client:    http.DefaultClient,
		chunkSize: DefaultChunkSize,
		userAgent: "plugboot/" + version.Version,
		reporter:  report.NewLogReporter("download"),
		logger:    logging.GetLogger("download"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FileName returns the last segment of the URL path
func FileName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid url %q", rawURL)
	}
	name := path.Base(u.Path)
	if u.Path == "" || name == "/" || name == "." {
		return "", errors.Newf(errors.ErrInvalidInput, "url %q has no file name", rawURL)
	}
	return name, nil
}

// TargetPath returns where rawURL is saved inside dir
func TargetPath(rawURL, dir string) (string, error) {
	if dir == "" {
		return "", errors.New(errors.ErrInvalidInput, "download directory must not be empty")
	}
	name, err := FileName(rawURL)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// Missing reports whether the target of rawURL is absent from dir
func Missing(fs filesystem.FS, rawURL, dir string) (bool, error) {
	target, err := TargetPath(rawURL, dir)
	if err != nil {
		return false, err
	}
	return !filesystem.Exists(fs, target), nil
}

// Download fetches rawURL into dir. It does not check whether the target
// already exists.
func (d *Downloader) Download(ctx context.Context, rawURL, dir string) (Result, error) {
	target, err := TargetPath(rawURL, dir)
	if err != nil {
		return Result{URL: rawURL}, err
	}
	result := Result{URL: rawURL, Path: target}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return result, errors.Wrapf(err, errors.ErrInvalidInput, "invalid url %q", rawURL)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		result.Reason = err.Error()
		d.fail(result)
		return result, nil
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result.Reason = resp.Status
		d.fail(result)
		return result, nil
	}

	d.logger.Debug().Str("file", filepath.Base(target)).Str("dir", dir).Msg("Saving download")

	n, err := d.save(resp.Body, target)
	result.Bytes = n
	if errors.IsErrorCode(err, errors.ErrDownloadFailed) {
		// the body broke off mid-stream, drop the partial file
		_ = d.fs.Remove(target)
		result.Bytes = 0
		result.Reason = err.Error()
		d.fail(result)
		return result, nil
	}
	if err != nil {
		return result, err
	}

	result.OK = true
	d.logger.Info().Str("url", rawURL).Str("path", target).Int64("bytes", n).Msg("Download complete")
	return result, nil
}

func (d *Downloader) save(body io.Reader, target string) (int64, error) {
	f, err := d.fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrDownloadWrite, "failed to open %s", target)
	}

	var written int64
	buf := make([]byte, d.chunkSize)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, err := f.Write(buf[:n]); err != nil {
				_ = f.Close()
				return written, errors.Wrapf(err, errors.ErrDownloadWrite, "failed to write %s", target)
			}
			if err := f.Sync(); err != nil {
				_ = f.Close()
				return written, errors.Wrapf(err, errors.ErrDownloadWrite, "failed to sync %s", target)
			}
			written += int64(n)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = f.Close()
			return written, errors.Wrapf(readErr, errors.ErrDownloadFailed, "failed to read body for %s", target)
		}
	}

	if err := f.Close(); err != nil {
		return written, errors.Wrapf(err, errors.ErrDownloadWrite, "failed to close %s", target)
	}
	return written, nil
}

func (d *Downloader) fail(result Result) {
	d.logger.Warn().Str("url", result.URL).Int("status", result.StatusCode).Str("reason", result.Reason).Msg("Download failed")
	d.reporter.Error(fmt.Sprintf("Download of %s failed!", result.URL))
}

// Err returns the soft DOWNLOAD_FAILED error describing a failed result, or
// nil when the download worked
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return errors.Newf(errors.ErrDownloadFailed, "download of %s failed: %s", r.URL, r.Reason).
		WithDetail("url", r.URL).
		WithDetail("status", r.StatusCode)
}
