package indexer

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const henContract = "KT1RJ6PbjHpwc3M5rw5s2Nbmefwbuwbdxton"

func TestTzktToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/tokens", r.URL.Path)
		assert.Equal(t, henContract, r.URL.Query().Get("contract"))
		assert.Equal(t, "152", r.URL.Query().Get("tokenId"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`[{
			"id": 1,
			"contract": {"address": "` + henContract + `", "alias": "hic et nunc NFTs"},
			"tokenId": "152",
			"totalSupply": "10",
			"firstMinter": {"address": "tz1UBZUkXpKGhYsP5KtzDNqLLchwF4uHrGjw"},
			"metadata": {
				"name": "Sunrise",
				"displayUri": "ipfs://QmDisplay",
				"attributes": [{"name": "mood", "value": "calm"}, {"name": "level", "value": 3}]
			}
		}]`))
	}))
	defer server.Close()

	c := NewTzkt(server.URL, nil)
	token, err := c.Token(context.Background(), henContract, "152")
	require.NoError(t, err)
	assert.Equal(t, "152", token.TokenID)
	assert.Equal(t, "10", token.TotalSupply)
	require.NotNil(t, token.Metadata)
	assert.Equal(t, "Sunrise", token.Metadata.Name)
	require.Len(t, token.Metadata.Attributes, 2)
	assert.Equal(t, AttrValue("3"), token.Metadata.Attributes[1].Value)
}

func TestTzktTokenNestedObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"account": {"address": "tz1holder", "alias": "holder"},
			"token": {"tokenId": "7", "metadata": {"name": "Nested"}}
		}`))
	}))
	defer server.Close()

	token, err := NewTzkt(server.URL, nil).Token(context.Background(), henContract, "7")
	require.NoError(t, err)
	assert.Equal(t, "7", token.TokenID)
	assert.Equal(t, "Nested", token.Metadata.Name)
	require.NotNil(t, token.Account)
	assert.Equal(t, "holder", token.Account.Alias)
}

func TestTzktErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   error
	}{
		{"empty array", http.StatusOK, `[]`, ErrNotFound},
		{"server error", http.StatusBadGateway, `bad gateway`, ErrHTTP},
		{"garbage", http.StatusOK, `[{"tokenId": 5}`, ErrTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewTzkt(server.URL, nil).Token(context.Background(), henContract, "1")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
			var ie *Error
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, EndpointTzktTokens, ie.Endpoint)
		})
	}
}

func TestTzktTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := NewTzkt(server.URL, nil, WithTimeout(20*time.Millisecond)).Token(context.Background(), henContract, "1")
	assert.True(t, errors.Is(err, ErrTransport), "got %v", err)
}

func TestWithTimeoutKeepsCallerClient(t *testing.T) {
	hc := &http.Client{Timeout: time.Minute}
	c := NewTzkt("", nil, WithHTTPClient(hc), WithTimeout(time.Second))
	assert.Equal(t, time.Minute, hc.Timeout)
	assert.Equal(t, time.Second, c.http.Timeout)
	assert.NotSame(t, hc, c.http)
}

func TestTzktRateLimited(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`[{"tokenId": "1", "metadata": {"name": "x"}}]`))
	}))
	defer server.Close()

	c := NewTzkt(server.URL, NewGate(1, nil))
	_, err := c.Token(context.Background(), henContract, "1")
	require.NoError(t, err)
	_, err = c.Token(context.Background(), henContract, "1")
	assert.True(t, errors.Is(err, ErrRateLimited), "got %v", err)
	assert.Equal(t, 1, calls)
}
