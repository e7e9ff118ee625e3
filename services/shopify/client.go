package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/arcuswear/storefront/lib/myerrors"
	"github.com/arcuswear/storefront/lib/mylog"
)

const apiVersion = "2024-10"

type storefrontClient struct {
	apiURL      string
	accessToken string
	httpClient  *http.Client
	logger      mylog.Logger
}

func NewClient(storeDomain string, accessToken string) Client {
	return NewClientWithURL(fmt.Sprintf("https://%s/api/%s/graphql.json", storeDomain, apiVersion), accessToken)
}

// NewClientWithURL exists so tests can point the client at a local server.
func NewClientWithURL(apiURL string, accessToken string) Client {
	return &storefrontClient{
		apiURL:      apiURL,
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: mylog.New("shopify"),
	}
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

func (sc *storefrontClient) FetchProducts(c context.Context, first int) ([]Product, error) {
	resp := struct {
		Products Connection[Product] `json:"products"`
	}{}

	err := sc.execute(c, getProductsQuery, map[string]interface{}{"first": first}, &resp)
	if err != nil {
		return nil, err
	}

	return resp.Products.Nodes(), nil
}

// FetchProductByHandle returns nil without error when the handle is unknown.
func (sc *storefrontClient) FetchProductByHandle(c context.Context, handle string) (*Product, error) {
	resp := struct {
		Product *Product `json:"product"`
	}{}

	err := sc.execute(c, getProductByHandleQuery, map[string]interface{}{"handle": handle}, &resp)
	if err != nil {
		return nil, err
	}

	return resp.Product, nil
}

// FetchVariant returns nil without error when the variant is unknown.
func (sc *storefrontClient) FetchVariant(c context.Context, variantUID string) (*Variant, error) {
	resp := struct {
		ProductVariant *Variant `json:"productVariant"`
	}{}

	err := sc.execute(c, getVariantQuery, map[string]interface{}{"id": variantUID}, &resp)
	if err != nil {
		return nil, err
	}

	return resp.ProductVariant, nil
}

func (sc *storefrontClient) CreateCart(c context.Context, lines []CartLine) (CreatedCart, error) {
	resp := struct {
		CartCreate struct {
			Cart       *CreatedCart `json:"cart"`
			UserErrors []UserError  `json:"userErrors"`
		} `json:"cartCreate"`
	}{}

	err := sc.execute(c, createCartMutation, map[string]interface{}{
		"input": map[string]interface{}{
			"lines": lines,
		},
	}, &resp)
	if err != nil {
		return CreatedCart{}, err
	}

	if len(resp.CartCreate.UserErrors) > 0 {
		messages := make([]string, 0, len(resp.CartCreate.UserErrors))
		for _, userError := range resp.CartCreate.UserErrors {
			messages = append(messages, userError.Message)
		}
		return CreatedCart{}, myerrors.NewInvalidInputError(fmt.Errorf("cart creation failed: %s", strings.Join(messages, ", ")))
	}

	if resp.CartCreate.Cart == nil {
		return CreatedCart{}, myerrors.NewInternalError(fmt.Errorf("cart creation returned no cart"))
	}

	return *resp.CartCreate.Cart, nil
}

func (sc *storefrontClient) execute(c context.Context, query string, variables map[string]interface{}, target interface{}) error {
	requestBody, err := json.Marshal(graphqlRequest{
		Query:     query,
		Variables: variables,
	})
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error marshalling graphql request: %s", err))
	}

	httpRequest, err := http.NewRequestWithContext(c, http.MethodPost, sc.apiURL, bytes.NewReader(requestBody))
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error creating graphql request: %s", err))
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("X-Shopify-Storefront-Access-Token", sc.accessToken)

	httpResponse, err := sc.httpClient.Do(httpRequest)
	if err != nil {
		return myerrors.NewUnavailableError(fmt.Errorf("error calling storefront api: %s", err))
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return myerrors.NewUnavailableError(fmt.Errorf("storefront api returned http status %d", httpResponse.StatusCode))
	}

	resp := graphqlResponse{}
	err = json.NewDecoder(httpResponse.Body).Decode(&resp)
	if err != nil {
		return myerrors.NewUnavailableError(fmt.Errorf("error decoding graphql response: %s", err))
	}

	if len(resp.Errors) > 0 {
		messages := make([]string, 0, len(resp.Errors))
		for _, respError := range resp.Errors {
			messages = append(messages, respError.Message)
		}
		return myerrors.NewUnavailableError(fmt.Errorf("storefront api error: %s", strings.Join(messages, ", ")))
	}

	err = json.Unmarshal(resp.Data, target)
	if err != nil {
		return myerrors.NewUnavailableError(fmt.Errorf("error unmarshalling graphql data: %s", err))
	}

	return nil
}
