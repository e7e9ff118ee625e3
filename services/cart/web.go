package cart

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/arcuswear/storefront/lib/mycontext"
	"github.com/arcuswear/storefront/lib/myerrors"
	"github.com/arcuswear/storefront/lib/myhttp"
	"github.com/arcuswear/storefront/lib/mylog"
	"github.com/arcuswear/storefront/lib/mypubsub"
	"github.com/arcuswear/storefront/lib/mystore"
	"github.com/arcuswear/storefront/lib/mytime"
	"github.com/arcuswear/storefront/lib/myuuid"
	"github.com/arcuswear/storefront/services/cartapi"
	"github.com/arcuswear/storefront/services/checkoutevents"
)

const sessionCookieName = "arcus_cart_session"

type webService struct {
	logger  mylog.Logger
	service *service
	uuider  myuuid.UUIDer
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(store mystore.Store[Cart], nower mytime.Nower, uuider myuuid.UUIDer, subscriber mypubsub.PubSub) *webService {
	logger := mylog.New("cart")

	return &webService{
		logger:  logger,
		service: newService(store, subscriber, nower, logger),
		uuider:  uuider,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/cart", s.getCartPage()).Methods("GET")
	router.HandleFunc("/api/cart", s.clearCartPage()).Methods("DELETE")
	router.HandleFunc("/api/cart/items", s.addItemPage()).Methods("POST")
	// variant uids are Shopify gids with embedded slashes, so match the full remainder
	router.HandleFunc("/api/cart/items/{variantUID:.+}", s.updateQuantityPage()).Methods("PUT")
	router.HandleFunc("/api/cart/items/{variantUID:.+}", s.removeItemPage()).Methods("DELETE")

	// push-subscription endpoint for checkout events
	router.HandleFunc("/api/cart/event", s.handleEventPage()).Methods("POST")

	return s.service.Subscribe(c)
}

// CartResponse is what every cart endpoint returns: the cart itself plus the
// priced receipt as presented at the checkout boundary.
type CartResponse struct {
	Cart    Cart    `json:"cart"`
	Receipt Receipt `json:"receipt"`
}

func newCartResponse(cart Cart) CartResponse {
	return CartResponse{
		Cart:    cart,
		Receipt: cart.MakeReceipt(),
	}
}

func (s *webService) getCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		cart := s.service.getCart(c, s.sessionUID(w, r))

		responseWriter.Write(c, w, http.StatusOK, newCartResponse(cart))
	}
}

func (s *webService) addItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		req, err := cartapi.NewFromRequest(r)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		cart := s.service.addItem(c, s.sessionUID(w, r), LineItem{
			VariantUID:    req.VariantUID,
			ProductUID:    req.ProductUID,
			ProductHandle: req.ProductHandle,
			ProductTitle:  req.ProductTitle,
			VariantTitle:  req.VariantTitle,
			Size:          req.Size,
			Price:         req.Price,
			ImageURL:      req.ImageURL,
		})

		responseWriter.Write(c, w, http.StatusOK, newCartResponse(cart))
	}
}

func (s *webService) updateQuantityPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		variantUID := mux.Vars(r)["variantUID"]

		err := r.ParseForm()
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		quantity, err := strconv.Atoi(r.Form.Get("quantity"))
		if err != nil {
			responseWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(fmt.Errorf("invalid quantity '%s' (%s)", r.Form.Get("quantity"), err)))
			return
		}

		cart := s.service.updateQuantity(c, s.sessionUID(w, r), variantUID, quantity)

		responseWriter.Write(c, w, http.StatusOK, newCartResponse(cart))
	}
}

func (s *webService) removeItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		variantUID := mux.Vars(r)["variantUID"]

		cart := s.service.removeItem(c, s.sessionUID(w, r), variantUID)

		responseWriter.Write(c, w, http.StatusOK, newCartResponse(cart))
	}
}

func (s *webService) clearCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		cart := s.service.clear(c, s.sessionUID(w, r))

		responseWriter.Write(c, w, http.StatusOK, newCartResponse(cart))
	}
}

func (s *webService) handleEventPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		err := checkoutevents.DispatchEvent(c, r.Body, s.service)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{})
	}
}

// sessionUID identifies the shopper's cart: one cart per browser session,
// carried in a cookie. A missing cookie starts a fresh session.
func (s *webService) sessionUID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	uid := s.uuider.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    uid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return uid
}
