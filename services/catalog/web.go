package catalog

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arcuswear/storefront/lib/mycontext"
	"github.com/arcuswear/storefront/lib/myhttp"
	"github.com/arcuswear/storefront/lib/mylog"
	"github.com/arcuswear/storefront/lib/mystore"
	"github.com/arcuswear/storefront/services/shopify"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(client shopify.Client, productStore mystore.Store[Product]) *webService {
	logger := mylog.New("catalog")

	return &webService{
		logger:  logger,
		service: newService(client, productStore, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/products", s.listProductsPage()).Methods("GET")
	router.HandleFunc("/api/products/{handle}", s.getProductPage()).Methods("GET")
	// variant uids are Shopify gids with embedded slashes, so match the full remainder
	router.HandleFunc("/api/variants/{variantUID:.+}", s.getVariantPage()).Methods("GET")

	return nil
}

type ProductListResponse struct {
	Products []Product `json:"products"`
}

func (s *webService) listProductsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		products, err := s.service.listProducts(c)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, ProductListResponse{Products: products})
	}
}

func (s *webService) getProductPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		product, err := s.service.getProduct(c, mux.Vars(r)["handle"])
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, product)
	}
}

func (s *webService) getVariantPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		variant, err := s.service.getVariant(c, mux.Vars(r)["variantUID"])
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, variant)
	}
}
