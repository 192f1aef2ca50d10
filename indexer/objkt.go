package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

const (
	DefaultObjktURL = "https://data.objkt.com/v3/graphql"

	EndpointObjktToken   = "objkt.token"
	EndpointObjktResolve = "objkt.resolve"
	EndpointObjktFa      = "objkt.fa"
	EndpointObjktGallery = "objkt.gallery"
)

// Objkt is the marketplace indexer client. It speaks GraphQL over a single endpoint.
type Objkt struct {
	client
}

func NewObjkt(url string, gate *Gate, opts ...Option) *Objkt {
	if url == "" {
		url = DefaultObjktURL
	}
	return &Objkt{client: newClient(url, gate, opts...)}
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLResponse[T any] struct {
	Data   *T `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// graphQL posts one query and decodes `data` into T.
func graphQL[T any](ctx context.Context, c *client, endpoint, query string, vars map[string]interface{}) (*T, error) {
	b, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return nil, newError(ErrTransport, endpoint, "marshal request: %s", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(b))
	if err != nil {
		return nil, newError(ErrTransport, endpoint, "create request: %s", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(ctx, endpoint, req)
	if err != nil {
		return nil, err
	}
	var resp graphQLResponse[T]
	if err = json.Unmarshal(body, &resp); err != nil {
		return nil, newError(ErrTransport, endpoint, "decode response: %s", err)
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, newError(ErrTransport, endpoint, "%s", strings.Join(msgs, "; "))
	}
	if resp.Data == nil {
		return nil, &Error{Kind: ErrNotFound, Endpoint: endpoint}
	}
	return resp.Data, nil
}

// Token queries one token with its active listings, auctions and open edition.
func (o *Objkt) Token(ctx context.Context, contract, tokenID string) (*ObjktToken, error) {
	data, err := graphQL[struct {
		Token []ObjktToken `json:"token"`
	}](ctx, &o.client, EndpointObjktToken, queryToken, map[string]interface{}{
		"contract": contract,
		"tokenId":  tokenID,
	})
	if err != nil {
		return nil, err
	}
	if len(data.Token) == 0 {
		return nil, newError(ErrNotFound, EndpointObjktToken, "token %s/%s", contract, tokenID)
	}
	return &data.Token[0], nil
}

// ContractByPath resolves a marketplace path (alias) to its contract.
func (o *Objkt) ContractByPath(ctx context.Context, path string) (string, error) {
	data, err := graphQL[struct {
		Fa []struct {
			Contract string `json:"contract"`
		} `json:"fa"`
	}](ctx, &o.client, EndpointObjktResolve, queryFaByPath, map[string]interface{}{
		"path": path,
	})
	if err != nil {
		return "", err
	}
	if len(data.Fa) == 0 || data.Fa[0].Contract == "" {
		return "", newError(ErrNotFound, EndpointObjktResolve, "path %s", path)
	}
	return data.Fa[0].Contract, nil
}

// Collection queries a collection (fa) by contract.
func (o *Objkt) Collection(ctx context.Context, contract string) (*ObjktFa, error) {
	data, err := graphQL[struct {
		Fa []ObjktFa `json:"fa"`
	}](ctx, &o.client, EndpointObjktFa, queryCollection, map[string]interface{}{
		"contract": contract,
	})
	if err != nil {
		return nil, err
	}
	if len(data.Fa) == 0 {
		return nil, newError(ErrNotFound, EndpointObjktFa, "collection %s", contract)
	}
	return &data.Fa[0], nil
}

// Gallery looks a generative project up by numeric id, slug or name,
// case-insensitive, with up to ten sample tokens.
func (o *Objkt) Gallery(ctx context.Context, ref string) (*ObjktGallery, error) {
	query := queryGalleryBySlug
	vars := map[string]interface{}{"ref": ref}
	if _, err := strconv.ParseUint(ref, 10, 64); err == nil {
		query = queryGalleryByID
		vars["id"] = ref
	}
	data, err := graphQL[struct {
		Gallery []ObjktGallery `json:"gallery"`
	}](ctx, &o.client, EndpointObjktGallery, query, vars)
	if err != nil {
		return nil, err
	}
	if len(data.Gallery) == 0 {
		return nil, newError(ErrNotFound, EndpointObjktGallery, "gallery %s", ref)
	}
	return &data.Gallery[0], nil
}
