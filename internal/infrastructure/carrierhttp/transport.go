// Package carrierhttp is the net/http implementation of ports.Transport.
package carrierhttp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 10 << 20
)

type Transport struct {
	client *http.Client
	log    zerolog.Logger
}

var _ ports.Transport = (*Transport)(nil)

// New returns a Transport whose requests time out after timeout. A zero
// timeout falls back to 30s.
func New(timeout time.Duration, log zerolog.Logger) *Transport {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Transport{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

func (t *Transport) Post(ctx context.Context, url string, body []byte, headers http.Header) ([]byte, error) {
	return t.do(ctx, http.MethodPost, url, body, headers)
}

func (t *Transport) Get(ctx context.Context, url string, headers http.Header) ([]byte, error) {
	return t.do(ctx, http.MethodGet, url, nil, headers)
}

func (t *Transport) do(ctx context.Context, method, url string, body []byte, headers http.Header) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	t.log.Debug().
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Int("bytes", len(payload)).
		Dur("elapsed", time.Since(start)).
		Msg("carrier exchange")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.HTTPError{StatusCode: resp.StatusCode, Body: payload}
	}
	return payload, nil
}
