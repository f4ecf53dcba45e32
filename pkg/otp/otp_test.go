package otp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubSendVerify(t *testing.T) {
	p := NewStubProvider("", "")
	ctx := context.Background()

	orderID, err := p.Send(ctx, "+9647701234567")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(orderID, "dev-+9647701234567-"))

	code, ok := StubCode(orderID)
	require.True(t, ok)
	assert.Len(t, code, 6)

	good, err := p.Verify(ctx, orderID, code)
	require.NoError(t, err)
	assert.True(t, good)

	bad, err := p.Verify(ctx, orderID, "000000")
	require.NoError(t, err)
	assert.False(t, bad)

	foreign, err := p.Verify(ctx, "abc123", code)
	require.NoError(t, err)
	assert.False(t, foreign)
}

func TestStubFixedTestPair(t *testing.T) {
	p := NewStubProvider("+9647700000000", "123456")
	orderID, err := p.Send(context.Background(), "+9647700000000")
	require.NoError(t, err)
	code, _ := StubCode(orderID)
	assert.Equal(t, "123456", code)
}

func newOTPDevServer(t *testing.T, verified bool) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "cid" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/send":
			assert.Equal(t, "app", body["app_id"])
			assert.Equal(t, "sms", body["channel"])
			_, _ = w.Write([]byte(`{"order_id":"ord-` + body["phone_number"] + `"}`))
		case "/verify":
			if body["code"] == "400400" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"message":"invalid code"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]bool{"verified": verified})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestOTPDevProvider(t *testing.T) {
	srv := newOTPDevServer(t, true)
	defer srv.Close()

	p := NewOTPDevProvider(srv.URL, "app", "cid", "secret", "")
	ctx := context.Background()

	orderID, err := p.Send(ctx, "+9647701234567")
	require.NoError(t, err)
	assert.Equal(t, "ord-+9647701234567", orderID)

	ok, err := p.Verify(ctx, orderID, "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Verify(ctx, orderID, "400400")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOTPDevProviderErrors(t *testing.T) {
	srv := newOTPDevServer(t, false)
	defer srv.Close()

	p := NewOTPDevProvider(srv.URL, "app", "cid", "wrong", "sms")
	_, err := p.Send(context.Background(), "+9647701234567")
	assert.ErrorIs(t, err, ErrProviderUnavailable)

	srv.Close()
	_, err = NewOTPDevProvider(srv.URL, "app", "cid", "secret", "sms").Send(context.Background(), "+9647701234567")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}
