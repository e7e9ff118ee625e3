package checkoutstripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/mock/gomock"

	"github.com/arcuswear/storefront/lib/mypublisher"
	"github.com/arcuswear/storefront/lib/mystore"
	"github.com/arcuswear/storefront/lib/mytime"
	"github.com/arcuswear/storefront/services/cart"
	"github.com/arcuswear/storefront/services/checkoutevents"
	"github.com/arcuswear/storefront/services/checkoutshopify"
)

const sessionUID = "session-123"

var sessionResp = stripe.CheckoutSession{
	ID:          "cs_456",
	AmountTotal: int64(3500),
	Currency:    "eur",
	URL:         "https://checkout.stripe.com/pay/cs_456",
}

func TestStripeCheckoutService(t *testing.T) {

	t.Run("Start checkout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, cartStore, checkoutStore, payer, publisher, nower := setup(t, ctrl)

		// given
		storeCartWithBundle(c, cartStore)
		payer.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).Return(sessionResp, nil)
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, checkoutevents.CheckoutStarted{
			CheckoutUID:  sessionUID,
			ProviderName: "stripe",
			Amount:       35.00,
			Currency:     "eur",
			ItemCount:    2,
		}).Return(nil)

		// when
		request, _ := http.NewRequest(http.MethodPost, "/stripe/checkout/"+sessionUID, strings.NewReader(`returnUrl=http://localhost:8080/thank-you`))
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		request.Host = "localhost:8888"
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusSeeOther, response.Code)
		assert.Equal(t, "https://checkout.stripe.com/pay/cs_456", response.Header().Get("Location"))

		stored, exists, _ := checkoutStore.Get(c, sessionUID)
		assert.True(t, exists)
		assert.Equal(t, "cs_456", stored.PlatformCartUID)
		assert.Equal(t, "http://localhost:8080/thank-you", stored.OriginalReturnURL)
		assert.Equal(t, 35.00, stored.Amount)
	})

	t.Run("Start checkout with empty cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _, _ := setup(t, ctrl)

		// when
		request, _ := http.NewRequest(http.MethodPost, "/stripe/checkout/"+sessionUID, nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
		assert.Contains(t, response.Body.String(), "empty cart")
	})

	t.Run("Handle checkout status redirect", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, _, checkoutStore, _, _, nower := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		checkoutStore.Put(c, sessionUID, checkoutshopify.CheckoutContext{
			SessionUID:        sessionUID,
			ProviderName:      "stripe",
			PlatformCartUID:   "cs_456",
			OriginalReturnURL: "http://localhost:8080/thank-you",
			CreatedAt:         mytime.ExampleTime,
		})

		// when
		request, _ := http.NewRequest(http.MethodGet, "/stripe/checkout/"+sessionUID+"/status/success", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusSeeOther, response.Code)
		assert.Equal(t, "http://localhost:8080/thank-you?status=success", response.Header().Get("Location"))

		stored, _, _ := checkoutStore.Get(c, sessionUID)
		assert.Equal(t, checkoutevents.CheckoutStatusSuccess, stored.Status)
	})

	t.Run("Handle payment webhook", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, _, checkoutStore, _, publisher, nower := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, checkoutevents.CheckoutCompleted{
			CheckoutUID:   sessionUID,
			ProviderName:  "stripe",
			PaymentMethod: "ideal",
			Status:        checkoutevents.CheckoutStatusSuccess,
			StatusDetails: "payment_intent.succeeded",
		}).Return(nil)
		checkoutStore.Put(c, sessionUID, checkoutshopify.CheckoutContext{
			SessionUID:      sessionUID,
			ProviderName:    "stripe",
			PlatformCartUID: "cs_456",
			CreatedAt:       mytime.ExampleTime,
		})

		// when
		request, _ := http.NewRequest(http.MethodPost, "/stripe/checkout/webhook/event", strings.NewReader(`{
			"id": "evt_1",
			"object": "event",
			"type": "payment_intent.succeeded",
			"data": {
				"object": {
					"metadata": {
						"sessionUID": "`+sessionUID+`"
					},
					"payment_method_types": ["ideal"]
				}
			}
		}`))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)

		stored, _, _ := checkoutStore.Get(c, sessionUID)
		assert.Equal(t, checkoutevents.CheckoutStatusSuccess, stored.Status)
		assert.Equal(t, mytime.ExampleTime, *stored.FinalizedAt)
	})

	t.Run("Irrelevant webhook events are ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _, _ := setup(t, ctrl)

		// when
		request, _ := http.NewRequest(http.MethodPost, "/stripe/checkout/webhook/event", strings.NewReader(`{
			"id": "evt_2",
			"object": "event",
			"type": "charge.updated",
			"data": {
				"object": {
					"metadata": {
						"sessionUID": "`+sessionUID+`"
					}
				}
			}
		}`))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, *mystore.InMemoryStore[cart.Cart], *mystore.InMemoryStore[checkoutshopify.CheckoutContext], *MockPayer, *mypublisher.MockPublisher, *mytime.MockNower) {
	c := context.TODO()
	router := mux.NewRouter()
	cartStore, _, _ := mystore.NewInMemoryStore[cart.Cart](c)
	checkoutStore, _, _ := mystore.NewInMemoryStore[checkoutshopify.CheckoutContext](c)
	payer := NewMockPayer(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)
	nower := mytime.NewMockNower(ctrl)

	payer.EXPECT().UseAPIKey("my_api_key")
	publisher.EXPECT().CreateTopic(gomock.Any(), checkoutevents.TopicName).Return(nil)

	sut := NewWebService("my_api_key", payer, cartStore, checkoutStore, publisher, nower)
	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, cartStore, checkoutStore, payer, publisher, nower
}

func storeCartWithBundle(c context.Context, cartStore *mystore.InMemoryStore[cart.Cart]) {
	shopperCart := cart.Cart{SessionUID: sessionUID}.
		Add(arcusTee()).
		Add(allPathsTee())
	cartStore.Put(c, sessionUID, shopperCart)
}
