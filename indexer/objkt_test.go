package indexer

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// graphQLServer answers every request with body and records the last request.
func graphQLServer(t *testing.T, body string, last *graphQLRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if last != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(last))
		}
		_, _ = w.Write([]byte(body))
	}))
}

func TestObjktToken(t *testing.T) {
	var req graphQLRequest
	server := graphQLServer(t, `{"data": {"token": [{
		"token_id": "42",
		"fa_contract": "`+henContract+`",
		"name": "Glass",
		"supply": 10,
		"listings_active": [{"price": 5000000, "amount_left": 3, "currency_id": 1}],
		"english_auctions_active": [{"reserve": "1000000", "highest_bid": null}]
	}]}}`, &req)
	defer server.Close()

	token, err := NewObjkt(server.URL, nil).Token(context.Background(), henContract, "42")
	require.NoError(t, err)
	assert.Contains(t, req.Query, "TokenDetail")
	assert.Equal(t, henContract, req.Variables["contract"])
	assert.Equal(t, "42", req.Variables["tokenId"])

	assert.Equal(t, "Glass", token.Name)
	require.NotNil(t, token.Supply)
	assert.Equal(t, int64(10), *token.Supply)
	require.Len(t, token.ListingsActive, 1)
	assert.Equal(t, "5000000", token.ListingsActive[0].Price.String())
	assert.Equal(t, int64(3), token.ListingsActive[0].AmountLeft)
	require.Len(t, token.EnglishAuctionsActive, 1)
	assert.False(t, token.EnglishAuctionsActive[0].HighestBid.Valid)
	assert.Nil(t, token.OpenEditionActive)
}

func TestObjktTokenNotFound(t *testing.T) {
	server := graphQLServer(t, `{"data": {"token": []}}`, nil)
	defer server.Close()

	_, err := NewObjkt(server.URL, nil).Token(context.Background(), henContract, "1")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestObjktGraphQLErrors(t *testing.T) {
	server := graphQLServer(t, `{"errors": [{"message": "field \"x\" not found"}]}`, nil)
	defer server.Close()

	_, err := NewObjkt(server.URL, nil).Collection(context.Background(), henContract)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
	assert.True(t, strings.Contains(err.Error(), `field "x" not found`))
}

func TestObjktContractByPath(t *testing.T) {
	var req graphQLRequest
	server := graphQLServer(t, `{"data": {"fa": [{"contract": "KT1LjmAdYQCLBjwv4S2oFkEzyHVkomAf5MrW"}]}}`, &req)
	defer server.Close()

	contract, err := NewObjkt(server.URL, nil).ContractByPath(context.Background(), "versum")
	require.NoError(t, err)
	assert.Equal(t, "KT1LjmAdYQCLBjwv4S2oFkEzyHVkomAf5MrW", contract)
	assert.Equal(t, "versum", req.Variables["path"])
}

func TestObjktCollection(t *testing.T) {
	var req graphQLRequest
	server := graphQLServer(t, `{"data": {"fa": [{
		"contract": "`+henContract+`",
		"name": "hic et nunc",
		"owners": 90000,
		"floor_price": 100000,
		"volume_24h": null,
		"creator": {"address": "tz1UBZUkXpKGhYsP5KtzDNqLLchwF4uHrGjw"},
		"collaborators": [{"collaborator_address": "tz1b"}]
	}]}}`, &req)
	defer server.Close()

	fa, err := NewObjkt(server.URL, nil).Collection(context.Background(), henContract)
	require.NoError(t, err)
	assert.Contains(t, req.Query, "CollectionDetail")
	assert.Equal(t, henContract, req.Variables["contract"])
	assert.Equal(t, "hic et nunc", fa.Name)
	require.NotNil(t, fa.Owners)
	assert.Equal(t, int64(90000), *fa.Owners)
	assert.True(t, fa.FloorPrice.Valid)
	assert.Equal(t, "100000", fa.FloorPrice.Decimal.String())
	assert.False(t, fa.Volume24h.Valid)
	require.NotNil(t, fa.Creator)
	require.Len(t, fa.Collaborators, 1)

	empty := graphQLServer(t, `{"data": {"fa": []}}`, nil)
	defer empty.Close()
	_, err = NewObjkt(empty.URL, nil).Collection(context.Background(), henContract)
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestObjktGalleryQuerySelection(t *testing.T) {
	tests := []struct {
		ref    string
		query  string
		withID bool
	}{
		{"1234", "GalleryByID", true},
		{"my-project", "GalleryBySlug", false},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			var req graphQLRequest
			server := graphQLServer(t, `{"data": {"gallery": [{"gallery_id": "1234", "name": "Project", "tokens": [{"token": {"fa_contract": "`+henContract+`"}}]}]}}`, &req)
			defer server.Close()

			g, err := NewObjkt(server.URL, nil).Gallery(context.Background(), tt.ref)
			require.NoError(t, err)
			assert.Contains(t, req.Query, tt.query)
			_, hasID := req.Variables["id"]
			assert.Equal(t, tt.withID, hasID)
			assert.Equal(t, tt.ref, req.Variables["ref"])
			require.Len(t, g.Tokens, 1)
			assert.Equal(t, henContract, g.Tokens[0].Token.FaContract)
		})
	}
}
