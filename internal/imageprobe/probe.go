// Package imageprobe checks that a URL points at a loadable image before the
// console stores it.
package imageprobe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// sniffLen is how much of the body mimetype needs for image formats.
const sniffLen = 3072

var (
	ErrInvalidURL  = errors.New("image url must be an absolute http(s) url")
	ErrUnreachable = errors.New("image could not be loaded")
	ErrNotImage    = errors.New("url does not point to an image")
)

type Checker interface {
	Probe(ctx context.Context, rawURL string) error
}

type Prober struct {
	client  *http.Client
	timeout time.Duration
}

func New(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Prober{client: &http.Client{}, timeout: timeout}
}

// Probe fetches rawURL and succeeds only for a 2xx response whose content
// sniffs as an image.
func (p *Prober) Probe(ctx context.Context, rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidURL
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return ErrInvalidURL
	}
	req.Header.Set("Accept", "image/*")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode)
	}

	head, err := io.ReadAll(io.LimitReader(resp.Body, sniffLen))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	mt := mimetype.Detect(head)
	if !strings.HasPrefix(mt.String(), "image/") {
		return fmt.Errorf("%w: got %s", ErrNotImage, mt.String())
	}
	return nil
}
