package checkoutshopify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arcuswear/storefront/lib/mycontext"
	"github.com/arcuswear/storefront/lib/myerrors"
	"github.com/arcuswear/storefront/lib/myhttp"
	"github.com/arcuswear/storefront/lib/mylog"
	"github.com/arcuswear/storefront/lib/mypublisher"
	"github.com/arcuswear/storefront/lib/mystore"
	"github.com/arcuswear/storefront/lib/mytime"
	"github.com/arcuswear/storefront/services/cart"
	"github.com/arcuswear/storefront/services/checkoutevents"
	"github.com/arcuswear/storefront/services/shopify"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(client shopify.Client, cartStore mystore.Store[cart.Cart], checkoutStore mystore.Store[CheckoutContext], publisher mypublisher.Publisher, nower mytime.Nower) *webService {
	logger := mylog.New("checkoutshopify")

	return &webService{
		logger:  logger,
		service: newService(client, cartStore, checkoutStore, publisher, nower, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/shopify/checkout/{sessionUID}", s.startCheckoutPage()).Methods("POST")
	router.HandleFunc("/shopify/checkout/{sessionUID}/status/{status}", s.finalizeCheckoutPage()).Methods("GET")

	return s.service.CreateTopics(c)
}

// CheckoutResponse carries the hosted page the browser must redirect to.
type CheckoutResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
}

func (s *webService) startCheckoutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		sessionUID := mux.Vars(r)["sessionUID"]

		err := r.ParseForm()
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		returnURL := r.Form.Get("returnUrl")
		if returnURL == "" {
			returnURL = fmt.Sprintf("%s/shopify/checkout/%s/status/success", myhttp.HostnameWithScheme(r), sessionUID)
		}

		checkoutContext, err := s.service.startCheckout(c, sessionUID, returnURL)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, CheckoutResponse{CheckoutURL: checkoutContext.CheckoutURL})
	}
}

func (s *webService) finalizeCheckoutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		sessionUID := mux.Vars(r)["sessionUID"]

		status, err := parseStatus(mux.Vars(r)["status"])
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		_, err = s.service.finalizeCheckout(c, sessionUID, status)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: fmt.Sprintf("checkout %s", status),
		})
	}
}

func parseStatus(status string) (checkoutevents.CheckoutStatus, error) {
	switch checkoutevents.CheckoutStatus(status) {
	case checkoutevents.CheckoutStatusSuccess:
		return checkoutevents.CheckoutStatusSuccess, nil
	case checkoutevents.CheckoutStatusCancelled:
		return checkoutevents.CheckoutStatusCancelled, nil
	case checkoutevents.CheckoutStatusFailed:
		return checkoutevents.CheckoutStatusFailed, nil
	default:
		return checkoutevents.CheckoutStatusUndefined, myerrors.NewInvalidInputError(fmt.Errorf("unknown checkout status %s", status))
	}
}
