// FILE: logship/src/internal/transport/http_test.go
package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"logship/src/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

type recordedRequest struct {
	method      string
	contentType string
	auth        string
	custom      string
	body        string
}

func newRecordingServer(t *testing.T, status int) (*httptest.Server, func() []recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	var reqs []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{
			method:      r.Method,
			contentType: r.Header.Get("Content-Type"),
			auth:        r.Header.Get("Authorization"),
			custom:      r.Header.Get("X-Custom"),
			body:        string(body),
		})
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte("rejected"))
	}))
	t.Cleanup(srv.Close)

	return srv, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), reqs...)
	}
}

func TestHTTPSender_Send(t *testing.T) {
	srv, requests := newRecordingServer(t, http.StatusOK)

	sender, err := NewHTTPSender(&config.HTTPOptions{
		URL:     srv.URL,
		Method:  "PUT",
		Headers: map[string]string{"X-Custom": "yes"},
	}, "application/json", newTestLogger())
	require.NoError(t, err)
	defer sender.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, sender.Send(ctx, []byte(`[{"message":"a"}]`)))

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "PUT", reqs[0].method)
	assert.Equal(t, "application/json", reqs[0].contentType)
	assert.Equal(t, "yes", reqs[0].custom)
	assert.Equal(t, `[{"message":"a"}]`, reqs[0].body)
}

func TestHTTPSender_StatusCheck(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusServiceUnavailable)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	t.Run("NonSuccessFails", func(t *testing.T) {
		sender, err := NewHTTPSender(&config.HTTPOptions{URL: srv.URL, Method: "POST"}, "text/plain", newTestLogger())
		require.NoError(t, err)

		err = sender.Send(ctx, []byte("x"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrStatus))
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("IgnoreStatus", func(t *testing.T) {
		sender, err := NewHTTPSender(&config.HTTPOptions{URL: srv.URL, Method: "POST", IgnoreStatus: true}, "text/plain", newTestLogger())
		require.NoError(t, err)

		assert.NoError(t, sender.Send(ctx, []byte("x")))
	})
}

func TestHTTPSender_Auth(t *testing.T) {
	srv, requests := newRecordingServer(t, http.StatusNoContent)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	t.Run("Basic", func(t *testing.T) {
		sender, err := NewHTTPSender(&config.HTTPOptions{
			URL: srv.URL, Method: "POST",
			Auth: &config.HTTPAuthConfig{Type: "basic", Username: "user", Password: "pass"},
		}, "text/plain", newTestLogger())
		require.NoError(t, err)
		require.NoError(t, sender.Send(ctx, []byte("x")))

		reqs := requests()
		assert.Equal(t, "Basic dXNlcjpwYXNz", reqs[len(reqs)-1].auth)
	})

	t.Run("Bearer", func(t *testing.T) {
		sender, err := NewHTTPSender(&config.HTTPOptions{
			URL: srv.URL, Method: "POST",
			Auth: &config.HTTPAuthConfig{Type: "bearer", Token: "abc"},
		}, "text/plain", newTestLogger())
		require.NoError(t, err)
		require.NoError(t, sender.Send(ctx, []byte("x")))

		reqs := requests()
		assert.Equal(t, "Bearer abc", reqs[len(reqs)-1].auth)
	})

	t.Run("JWT", func(t *testing.T) {
		secret := "0123456789abcdef0123"
		sender, err := NewHTTPSender(&config.HTTPOptions{
			URL: srv.URL, Method: "POST",
			Auth: &config.HTTPAuthConfig{
				Type: "jwt", JWTSecret: secret, JWTIssuer: "logship", JWTSubject: "agent-1", JWTTTLSeconds: 60,
			},
		}, "text/plain", newTestLogger())
		require.NoError(t, err)
		require.NoError(t, sender.Send(ctx, []byte("x")))
		require.NoError(t, sender.Send(ctx, []byte("y")))

		reqs := requests()
		first := reqs[len(reqs)-2].auth
		second := reqs[len(reqs)-1].auth
		assert.Equal(t, first, second, "token should be reused within its lifetime")
		require.True(t, strings.HasPrefix(first, "Bearer "))

		token, err := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"})).Parse(
			strings.TrimPrefix(first, "Bearer "),
			func(*jwt.Token) (any, error) { return []byte(secret), nil },
		)
		require.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, "logship", claims["iss"])
		assert.Equal(t, "agent-1", claims["sub"])
	})
}

func TestHTTPSender_Failures(t *testing.T) {
	t.Run("Unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		sender, err := NewHTTPSender(&config.HTTPOptions{URL: url, Method: "POST"}, "text/plain", newTestLogger())
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		assert.Error(t, sender.Send(ctx, []byte("x")))
	})

	t.Run("Timeout", func(t *testing.T) {
		block := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-block
		}))
		defer srv.Close()
		defer close(block)

		sender, err := NewHTTPSender(&config.HTTPOptions{URL: srv.URL, Method: "POST"}, "text/plain", newTestLogger())
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		assert.Error(t, sender.Send(ctx, []byte("x")))
	})

	t.Run("AfterClose", func(t *testing.T) {
		sender, err := NewHTTPSender(&config.HTTPOptions{URL: "http://127.0.0.1:1", Method: "POST"}, "text/plain", newTestLogger())
		require.NoError(t, err)
		require.NoError(t, sender.Close())

		assert.ErrorIs(t, sender.Send(context.Background(), []byte("x")), ErrNotConnected)
	})
}
