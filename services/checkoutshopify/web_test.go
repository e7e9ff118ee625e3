package checkoutshopify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/arcuswear/storefront/lib/mypublisher"
	"github.com/arcuswear/storefront/lib/mystore"
	"github.com/arcuswear/storefront/lib/mytime"
	"github.com/arcuswear/storefront/services/cart"
	"github.com/arcuswear/storefront/services/checkoutevents"
	"github.com/arcuswear/storefront/services/shopify"
)

const sessionUID = "session-123"

func TestCheckoutService(t *testing.T) {

	t.Run("Start checkout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, cartStore, checkoutStore, client, publisher, nower := setup(t, ctrl)

		// given
		storeCartWithBundle(c, cartStore)
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		client.EXPECT().CreateCart(gomock.Any(), []shopify.CartLine{
			{MerchandiseUID: "gid://shopify/ProductVariant/111", Quantity: 1},
			{MerchandiseUID: "gid://shopify/ProductVariant/222", Quantity: 1},
		}).Return(createdCart(), nil)
		publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, checkoutevents.CheckoutStarted{
			CheckoutUID:  sessionUID,
			ProviderName: "shopify",
			Amount:       35.00,
			Currency:     "EUR",
			ItemCount:    2,
		}).Return(nil)

		// when
		request, _ := http.NewRequest(http.MethodPost, "/shopify/checkout/"+sessionUID, nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), "https://shop.example.com/checkouts/abc?return_to=")
		assert.Contains(t, response.Body.String(), "status%2Fsuccess")

		stored, exists, _ := checkoutStore.Get(c, sessionUID)
		assert.True(t, exists)
		assert.Equal(t, "gid://shopify/Cart/abc", stored.PlatformCartUID)
		assert.Equal(t, 35.00, stored.Amount)
	})

	t.Run("Start checkout with empty cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _, _ := setup(t, ctrl)

		// when
		request, _ := http.NewRequest(http.MethodPost, "/shopify/checkout/"+sessionUID, nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
		assert.Contains(t, response.Body.String(), "empty cart")
	})

	t.Run("Finalize checkout with success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, _, checkoutStore, _, publisher, nower := setup(t, ctrl)

		// given
		checkoutStore.Put(c, sessionUID, CheckoutContext{
			SessionUID:      sessionUID,
			PlatformCartUID: "gid://shopify/Cart/abc",
			CreatedAt:       mytime.ExampleTime,
		})
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, checkoutevents.CheckoutCompleted{
			CheckoutUID:  sessionUID,
			ProviderName: "shopify",
			Status:       checkoutevents.CheckoutStatusSuccess,
		}).Return(nil)

		// when
		request, _ := http.NewRequest(http.MethodGet, "/shopify/checkout/"+sessionUID+"/status/success", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)

		stored, _, _ := checkoutStore.Get(c, sessionUID)
		assert.Equal(t, checkoutevents.CheckoutStatusSuccess, stored.Status)
		assert.Equal(t, mytime.ExampleTime, *stored.FinalizedAt)
	})

	t.Run("Finalize checkout twice publishes only once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, _, checkoutStore, _, publisher, nower := setup(t, ctrl)

		// given
		checkoutStore.Put(c, sessionUID, CheckoutContext{
			SessionUID: sessionUID,
			CreatedAt:  mytime.ExampleTime,
		})
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.Any()).Return(nil).Times(1)

		// when
		for i := 0; i < 2; i++ {
			request, _ := http.NewRequest(http.MethodGet, "/shopify/checkout/"+sessionUID+"/status/cancelled", nil)
			response := httptest.NewRecorder()
			router.ServeHTTP(response, request)
			assert.Equal(t, http.StatusOK, response.Code)
		}
	})

	t.Run("Finalize unknown checkout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _, _ := setup(t, ctrl)

		// when
		request, _ := http.NewRequest(http.MethodGet, "/shopify/checkout/unknown-session/status/success", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusNotFound, response.Code)
	})

	t.Run("Finalize checkout with unknown status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _, _ := setup(t, ctrl)

		// when
		request, _ := http.NewRequest(http.MethodGet, "/shopify/checkout/"+sessionUID+"/status/paid-maybe", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
		assert.Contains(t, response.Body.String(), "unknown checkout status")
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, *mystore.InMemoryStore[cart.Cart], *mystore.InMemoryStore[CheckoutContext], *shopify.MockClient, *mypublisher.MockPublisher, *mytime.MockNower) {
	c := context.TODO()
	router := mux.NewRouter()
	cartStore, _, _ := mystore.NewInMemoryStore[cart.Cart](c)
	checkoutStore, _, _ := mystore.NewInMemoryStore[CheckoutContext](c)
	client := shopify.NewMockClient(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)
	nower := mytime.NewMockNower(ctrl)

	publisher.EXPECT().CreateTopic(gomock.Any(), checkoutevents.TopicName).Return(nil)

	sut := NewService(client, cartStore, checkoutStore, publisher, nower)
	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, cartStore, checkoutStore, client, publisher, nower
}

func storeCartWithBundle(c context.Context, cartStore *mystore.InMemoryStore[cart.Cart]) {
	shopperCart := cart.Cart{SessionUID: sessionUID}.
		Add(cart.LineItem{
			VariantUID:    "gid://shopify/ProductVariant/111",
			ProductHandle: "arcus-tee",
			Price:         17.00,
		}).
		Add(cart.LineItem{
			VariantUID:    "gid://shopify/ProductVariant/222",
			ProductHandle: "all-paths-tee",
			Price:         20.00,
		})
	cartStore.Put(c, sessionUID, shopperCart)
}

func createdCart() shopify.CreatedCart {
	created := shopify.CreatedCart{
		UID:           "gid://shopify/Cart/abc",
		CheckoutURL:   "https://shop.example.com/checkouts/abc",
		TotalQuantity: 2,
	}
	created.Cost.TotalAmount = shopify.Money{Amount: "37.0", CurrencyCode: "EUR"}
	return created
}
