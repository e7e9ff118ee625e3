package catalog

import (
	"github.com/arcuswear/storefront/lib/mylog"
	"github.com/arcuswear/storefront/lib/mystore"
	"github.com/arcuswear/storefront/services/shopify"
)

// The store acts as a fallback cache: every successful fetch refreshes it, and
// when the commerce platform is unreachable the last known catalog is served.

const maxProducts = 20

type service struct {
	client       shopify.Client
	productStore mystore.Store[Product]
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(client shopify.Client, productStore mystore.Store[Product], logger mylog.Logger) *service {
	return &service{
		client:       client,
		productStore: productStore,
		logger:       logger,
	}
}
