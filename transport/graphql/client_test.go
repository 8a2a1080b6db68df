package graphql

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendCarriesHeadersAndVariables(t *testing.T) {
	var gotHeaders http.Header
	var gotBody Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"ok":true}}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, map[string]string{
		"user-agent": "test-agent",
		"Cookie":     "session=abc",
	}, 5*time.Second, "")
	require.NoError(t, err)

	resp, err := client.Send(context.Background(), "query { ok }", map[string]any{"id": "x1"})
	require.NoError(t, err)
	assert.True(t, resp.HasData())
	assert.NoError(t, resp.Err())

	assert.Equal(t, "test-agent", gotHeaders.Get("User-Agent"))
	assert.Equal(t, "session=abc", gotHeaders.Get("Cookie"))
	assert.Equal(t, "query { ok }", gotBody.Query)
	assert.Equal(t, map[string]any{"id": "x1"}, gotBody.Variables)
}

func TestSendSurfacesEnvelopeErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"unauthenticated"}]}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, nil, 5*time.Second, "")
	require.NoError(t, err)

	// Application-level errors ride inside the envelope over HTTP 200.
	resp, err := client.Send(context.Background(), "query { ok }", nil)
	require.NoError(t, err)
	assert.False(t, resp.HasData())
	assert.EqualError(t, resp.Err(), "unauthenticated")
	assert.EqualError(t, resp.Decode(&struct{}{}), "unauthenticated")
}

func TestPostJSONRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, nil, 5*time.Second, "")
	require.NoError(t, err)

	err = client.PostJSON(context.Background(), srv.URL, map[string]any{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestNewClientRejectsBadProxy(t *testing.T) {
	_, err := NewClient("http://example.com", nil, time.Second, "://bad")
	assert.Error(t, err)
}

func TestHeaderIsolation(t *testing.T) {
	client, err := NewClient("http://example.com", map[string]string{"a": "1"}, time.Second, "")
	require.NoError(t, err)

	copied := client.Headers()
	copied["a"] = "mutated"
	assert.Equal(t, "1", client.Headers()["a"], "Headers must return a copy")

	source := map[string]string{"b": "2"}
	client.ReplaceHeaders(source)
	source["b"] = "mutated"
	assert.Equal(t, "2", client.Headers()["b"], "ReplaceHeaders must copy its input")
}

func TestResponseDecode(t *testing.T) {
	resp := &Response{Data: json.RawMessage(`{"account":{"resources":[{"symbol":"COIN","amount":"1"}]}}`)}
	var data ResourcesData
	require.NoError(t, resp.Decode(&data))
	require.Len(t, data.Account.Resources, 1)
	assert.Equal(t, "COIN", data.Account.Resources[0].Symbol)

	empty := &Response{Data: json.RawMessage(`null`)}
	assert.False(t, empty.HasData())
	assert.EqualError(t, empty.Decode(&data), "empty graphql response")
}
