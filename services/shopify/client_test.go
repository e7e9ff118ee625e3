package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token-123", r.Header.Get("X-Shopify-Storefront-Access-Token"))

		req := graphqlRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		assert.NoError(t, err)
		assert.Contains(t, req.Query, "query getProducts")
		assert.Equal(t, float64(10), req.Variables["first"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": {
				"products": {
					"edges": [
						{
							"node": {
								"id": "gid://shopify/Product/1",
								"title": "ARCUS Tee",
								"handle": "arcus-tee",
								"description": "Heavyweight tee",
								"priceRange": {"minVariantPrice": {"amount": "17.0", "currencyCode": "EUR"}},
								"images": {"edges": [{"node": {"id": "img-1", "url": "https://cdn.example.com/1.png"}}]},
								"variants": {"edges": [{"node": {
									"id": "gid://shopify/ProductVariant/111",
									"title": "S",
									"price": {"amount": "17.0", "currencyCode": "EUR"},
									"availableForSale": true,
									"quantityAvailable": 4,
									"selectedOptions": [{"name": "Size", "value": "S"}]
								}}]}
							}
						}
					]
				}
			}
		}`))
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL, "token-123")

	products, err := client.FetchProducts(context.TODO(), 10)

	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "arcus-tee", products[0].Handle)
	assert.Equal(t, "17.0", products[0].PriceRange.MinVariantPrice.Amount)
	assert.Len(t, products[0].Variants.Nodes(), 1)
	assert.Equal(t, "S", products[0].Variants.Nodes()[0].SelectedOptions[0].Value)
}

func TestFetchProductByHandleNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"product": null}}`))
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL, "token-123")

	product, err := client.FetchProductByHandle(context.TODO(), "no-such-tee")

	assert.NoError(t, err)
	assert.Nil(t, product)
}

func TestGraphqlErrorsSurfaceAsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"errors": [{"message": "Throttled"}]}`))
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL, "token-123")

	_, err := client.FetchProducts(context.TODO(), 10)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Throttled")
}

func TestCreateCart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := graphqlRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		assert.NoError(t, err)
		assert.Contains(t, req.Query, "mutation cartCreate")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": {
				"cartCreate": {
					"cart": {
						"id": "gid://shopify/Cart/abc",
						"checkoutUrl": "https://shop.example.com/checkouts/abc",
						"totalQuantity": 2,
						"cost": {"totalAmount": {"amount": "35.0", "currencyCode": "EUR"}}
					},
					"userErrors": []
				}
			}
		}`))
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL, "token-123")

	cart, err := client.CreateCart(context.TODO(), []CartLine{
		{MerchandiseUID: "gid://shopify/ProductVariant/111", Quantity: 1},
		{MerchandiseUID: "gid://shopify/ProductVariant/222", Quantity: 1},
	})

	assert.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/checkouts/abc", cart.CheckoutURL)
	assert.Equal(t, 2, cart.TotalQuantity)
}

func TestCreateCartUserErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": {
				"cartCreate": {
					"cart": null,
					"userErrors": [{"field": ["input", "lines"], "message": "Invalid merchandise id"}]
				}
			}
		}`))
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL, "token-123")

	_, err := client.CreateCart(context.TODO(), []CartLine{{MerchandiseUID: "bogus", Quantity: 1}})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid merchandise id")
}
