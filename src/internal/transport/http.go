// FILE: logship/src/internal/transport/http.go
package transport

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"logship/src/internal/config"
	ltls "logship/src/internal/tls"
	"logship/src/internal/version"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lixenwraith/log"
	"github.com/valyala/fasthttp"
)

// HTTPSender posts payloads using a request template built once from config.
type HTTPSender struct {
	config      *config.HTTPOptions
	contentType string
	client      *fasthttp.Client
	logger      *log.Logger

	// Static Authorization header value for basic/bearer
	authHeader string

	// Cached JWT for "jwt" auth
	tokenMu     sync.Mutex
	token       string
	tokenExpiry time.Time

	closed atomic.Bool
}

// NewHTTPSender creates a new HTTP sender.
func NewHTTPSender(opts *config.HTTPOptions, contentType string, logger *log.Logger) (*HTTPSender, error) {
	if opts == nil {
		return nil, fmt.Errorf("HTTP sender options cannot be nil")
	}

	h := &HTTPSender{
		config:      opts,
		contentType: contentType,
		logger:      logger,
	}
	if opts.ContentType != "" {
		h.contentType = opts.ContentType
	}

	// Timeouts come from the per-send context deadline
	h.client = &fasthttp.Client{
		MaxConnsPerHost:               10,
		MaxIdleConnDuration:           10 * time.Second,
		DisableHeaderNamesNormalizing: true,
	}

	tlsManager, err := ltls.NewClientManager(opts.TLS, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create TLS client manager: %w", err)
	}
	if tlsCfg := tlsManager.GetConfig(); tlsCfg != nil {
		h.client.TLSConfig = tlsCfg
	} else if strings.HasPrefix(opts.URL, "https://") && opts.InsecureSkipVerify {
		h.client.TLSConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
		logger.Warn("msg", "TLS certificate verification disabled",
			"component", "http_sender",
			"url", opts.URL)
	}

	if opts.Auth != nil {
		switch opts.Auth.Type {
		case "basic":
			creds := opts.Auth.Username + ":" + opts.Auth.Password
			h.authHeader = "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
		case "bearer":
			h.authHeader = "Bearer " + opts.Auth.Token
		case "jwt":
			if opts.Auth.JWTSecret == "" {
				return nil, fmt.Errorf("jwt auth requires a secret")
			}
		}
	}

	return h, nil
}

// Send performs one request. Non-2xx answers fail with ErrStatus unless
// the destination ignores status codes.
func (h *HTTPSender) Send(ctx context.Context, body []byte) error {
	if h.closed.Load() {
		return ErrNotConnected
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	authHeader, err := h.authorization()
	if err != nil {
		return err
	}

	// Acquire resources, release immediately after use
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(h.config.URL)
	req.Header.SetMethod(h.config.Method)
	req.Header.SetContentType(h.contentType)
	req.Header.Set("User-Agent", version.UserAgent())
	for k, v := range h.config.Headers {
		req.Header.Set(k, v)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	req.SetBody(body)

	if deadline, ok := ctx.Deadline(); ok {
		err = h.client.DoDeadline(req, resp, deadline)
	} else {
		err = h.client.Do(req, resp)
	}
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	statusCode := resp.StatusCode()
	if h.config.IgnoreStatus || (statusCode >= 200 && statusCode < 300) {
		h.logger.Debug("msg", "Batch accepted",
			"component", "http_sender",
			"status_code", statusCode,
			"bytes", len(body))
		return nil
	}

	respBody := resp.Body()
	if len(respBody) > 256 {
		respBody = respBody[:256]
	}
	return fmt.Errorf("%w: %d: %s", ErrStatus, statusCode, respBody)
}

// authorization returns the Authorization header value, minting a JWT when configured.
func (h *HTTPSender) authorization() (string, error) {
	if h.config.Auth == nil || h.config.Auth.Type != "jwt" {
		return h.authHeader, nil
	}

	h.tokenMu.Lock()
	defer h.tokenMu.Unlock()

	now := time.Now()
	ttl := time.Duration(h.config.Auth.JWTTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	// Renew once half the lifetime is gone
	if h.token != "" && now.Before(h.tokenExpiry.Add(-ttl/2)) {
		return "Bearer " + h.token, nil
	}

	expiry := now.Add(ttl)
	claims := jwt.MapClaims{
		"iss": h.config.Auth.JWTIssuer,
		"iat": now.Unix(),
		"exp": expiry.Unix(),
	}
	if h.config.Auth.JWTSubject != "" {
		claims["sub"] = h.config.Auth.JWTSubject
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.config.Auth.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT: %w", err)
	}

	h.token = signed
	h.tokenExpiry = expiry
	return "Bearer " + signed, nil
}

func (h *HTTPSender) Name() string {
	return "http"
}

// Close releases idle connections.
func (h *HTTPSender) Close() error {
	if h.closed.CompareAndSwap(false, true) {
		h.client.CloseIdleConnections()
	}
	return nil
}
