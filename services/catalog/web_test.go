package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/arcuswear/storefront/lib/mystore"
	"github.com/arcuswear/storefront/services/shopify"
)

func TestCatalogService(t *testing.T) {

	t.Run("List products", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, storer, client := setup(t, ctrl)

		// given
		client.EXPECT().FetchProducts(gomock.Any(), maxProducts).Return([]shopify.Product{arcusTeeUpstream()}, nil)

		// when
		request, _ := http.NewRequest(http.MethodGet, "/api/products", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), `"handle": "arcus-tee"`)
		assert.Contains(t, response.Body.String(), `"price": 17`)
		assert.Contains(t, response.Body.String(), `"size": "S"`)

		// a successful fetch refreshes the cache
		cached, exists, _ := storer.Get(c, "arcus-tee")
		assert.True(t, exists)
		assert.Equal(t, 17.0, cached.Price)
	})

	t.Run("List products serves cache when the platform is down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, storer, client := setup(t, ctrl)

		// given
		storer.Put(c, "arcus-tee", newProduct(arcusTeeUpstream()))
		client.EXPECT().FetchProducts(gomock.Any(), maxProducts).Return(nil, fmt.Errorf("connection refused"))

		// when
		request, _ := http.NewRequest(http.MethodGet, "/api/products", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), `"handle": "arcus-tee"`)
	})

	t.Run("List products with platform down and empty cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, client := setup(t, ctrl)

		// given
		client.EXPECT().FetchProducts(gomock.Any(), maxProducts).Return(nil, fmt.Errorf("connection refused"))

		// when
		request, _ := http.NewRequest(http.MethodGet, "/api/products", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusServiceUnavailable, response.Code)
	})

	t.Run("Get product by handle", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, client := setup(t, ctrl)

		// given
		upstream := arcusTeeUpstream()
		client.EXPECT().FetchProductByHandle(gomock.Any(), "arcus-tee").Return(&upstream, nil)

		// when
		request, _ := http.NewRequest(http.MethodGet, "/api/products/arcus-tee", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), `"title": "ARCUS Tee"`)
		assert.Contains(t, response.Body.String(), `"availableForSale": true`)
	})

	t.Run("Get unknown product", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, client := setup(t, ctrl)

		// given
		client.EXPECT().FetchProductByHandle(gomock.Any(), "no-such-tee").Return(nil, nil)

		// when
		request, _ := http.NewRequest(http.MethodGet, "/api/products/no-such-tee", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusNotFound, response.Code)
		assert.Contains(t, response.Body.String(), "not found")
	})

	t.Run("Get variant availability", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, client := setup(t, ctrl)

		// given
		upstream := arcusTeeUpstream().Variants.Nodes()[0]
		client.EXPECT().FetchVariant(gomock.Any(), "gid://shopify/ProductVariant/111").Return(&upstream, nil)

		// when
		request, _ := http.NewRequest(http.MethodGet, "/api/variants/gid://shopify/ProductVariant/111", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), `"availableForSale": true`)
		assert.Contains(t, response.Body.String(), `"quantityAvailable": 4`)
	})

	t.Run("Get unknown variant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, client := setup(t, ctrl)

		// given
		client.EXPECT().FetchVariant(gomock.Any(), "gid://shopify/ProductVariant/999").Return(nil, nil)

		// when
		request, _ := http.NewRequest(http.MethodGet, "/api/variants/gid://shopify/ProductVariant/999", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusNotFound, response.Code)
	})

	t.Run("Get product serves cache when the platform is down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, storer, client := setup(t, ctrl)

		// given
		storer.Put(c, "arcus-tee", newProduct(arcusTeeUpstream()))
		client.EXPECT().FetchProductByHandle(gomock.Any(), "arcus-tee").Return(nil, fmt.Errorf("connection refused"))

		// when
		request, _ := http.NewRequest(http.MethodGet, "/api/products/arcus-tee", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), `"handle": "arcus-tee"`)
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, *mystore.InMemoryStore[Product], *shopify.MockClient) {
	c := context.TODO()
	router := mux.NewRouter()
	storer, _, _ := mystore.NewInMemoryStore[Product](c)
	client := shopify.NewMockClient(ctrl)

	sut := NewService(client, storer)
	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, storer, client
}

func arcusTeeUpstream() shopify.Product {
	product := shopify.Product{
		UID:         "gid://shopify/Product/1",
		Title:       "ARCUS Tee",
		Handle:      "arcus-tee",
		Description: "Heavyweight tee",
	}
	product.PriceRange.MinVariantPrice = shopify.Money{Amount: "17.0", CurrencyCode: "EUR"}
	product.Images = shopify.NewConnection(
		shopify.Image{UID: "img-1", URL: "https://cdn.example.com/arcus-tee-front.png"})
	product.Variants = shopify.NewConnection(
		shopify.Variant{
			UID:               "gid://shopify/ProductVariant/111",
			Title:             "S",
			Price:             shopify.Money{Amount: "17.0", CurrencyCode: "EUR"},
			AvailableForSale:  true,
			QuantityAvailable: 4,
			SelectedOptions:   []shopify.SelectedOption{{Name: "Size", Value: "S"}},
		})
	return product
}
