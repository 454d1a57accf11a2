// Package api is the typed client for the Strength's Best storefront
// backend. All payloads are JSON over HTTP; every call goes through the
// shared circuit breaker, and idempotent GETs are additionally retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/auth"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/config"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/pkg/circuit"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/pkg/retry"
)

// authReporter is implemented by token stores that want to know about
// server-side 401s (auth.Store does).
type authReporter interface {
	ReportFailure(auth.FailureKind)
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  auth.TokenSource
	breaker *circuit.Breaker
	retry   config.Retry
	logger  *zap.Logger
}

func New(cfg config.API, tokens auth.TokenSource, breaker *circuit.Breaker, retryPolicy config.Retry, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		tokens:  tokens,
		breaker: breaker,
		retry:   retryPolicy,
		logger:  logger,
	}
}

// get retries per the client's retry policy; mutating verbs go through
// doJSON directly and are never retried automatically.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return retry.Do(ctx, c.retry, func() error {
		err := c.doJSON(ctx, http.MethodGet, path, nil, out)
		if err != nil && isPermanent(err) {
			return retry.Stop(err)
		}
		return err
	})
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

func (c *Client) del(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	return c.doRequest(ctx, method, path, nil, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, headers map[string]string, body, out any) error {
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			return err
		}
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	// The token is attached when present; public catalog endpoints work
	// without one. A locally-expired token fails fast without a request.
	tok, tokErr := c.tokens.Token()
	switch {
	case tokErr == nil:
		req.Header.Set("Authorization", "Bearer "+tok)
	case errors.Is(tokErr, domain.ErrTokenExpired):
		return tokErr
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if c.breaker != nil {
			c.breaker.Failure()
		}
		c.logger.Warn("backend unreachable",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := decodeError(resp)
		// Only server-side failures trip the breaker; a 4xx means the
		// backend is healthy and rejected this particular request.
		if c.breaker != nil {
			if resp.StatusCode >= 500 {
				c.breaker.Failure()
			} else {
				c.breaker.Success()
			}
		}
		if resp.StatusCode == http.StatusUnauthorized {
			return c.handleUnauthorized(apiErr)
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, apiErr.Message)
		}
		return apiErr
	}

	if c.breaker != nil {
		c.breaker.Success()
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) handleUnauthorized(apiErr *Error) error {
	kind := auth.FailureInvalid
	err := domain.ErrTokenInvalid
	if apiErr.IsTokenExpired() {
		kind = auth.FailureExpired
		err = domain.ErrTokenExpired
	}
	if r, ok := c.tokens.(authReporter); ok {
		r.ReportFailure(kind)
	}
	return fmt.Errorf("%w: %s", err, apiErr.Message)
}

func isPermanent(err error) bool {
	if errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrTokenExpired) ||
		errors.Is(err, domain.ErrTokenInvalid) ||
		errors.Is(err, circuit.ErrOpen) {
		return true
	}
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status < 500
}
