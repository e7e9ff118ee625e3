package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/arcuswear/storefront/lib/myerrors"
	"github.com/arcuswear/storefront/lib/mylog"
)

func (s *service) listProducts(c context.Context) ([]Product, error) {
	fetched, err := s.client.FetchProducts(c, maxProducts)
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Error fetching products, serving cached catalog: %s", err)
		return s.cachedProducts(c, err)
	}

	products := make([]Product, 0, len(fetched))
	for _, p := range fetched {
		product := newProduct(p)
		products = append(products, product)
		s.cache(c, product)
	}

	return products, nil
}

func (s *service) getProduct(c context.Context, handle string) (Product, error) {
	fetched, err := s.client.FetchProductByHandle(c, handle)
	if err != nil {
		s.logger.Log(c, handle, mylog.SeverityWarn, "Error fetching product %s, trying cache: %s", handle, err)
		return s.cachedProduct(c, handle, err)
	}

	if fetched == nil {
		return Product{}, myerrors.NewNotFoundError(fmt.Errorf("product with handle %s not found", handle))
	}

	product := newProduct(*fetched)
	s.cache(c, product)

	return product, nil
}

// getVariant asks the platform for live availability of a single variant.
func (s *service) getVariant(c context.Context, variantUID string) (Variant, error) {
	fetched, err := s.client.FetchVariant(c, variantUID)
	if err != nil {
		return Variant{}, myerrors.NewUnavailableError(fmt.Errorf("variant %s unavailable: %s", variantUID, err))
	}
	if fetched == nil {
		return Variant{}, myerrors.NewNotFoundError(fmt.Errorf("variant %s not found", variantUID))
	}

	return newVariant(*fetched), nil
}

// cache is best effort: a failing cache write never fails the request.
func (s *service) cache(c context.Context, product Product) {
	err := s.productStore.Put(c, product.Handle, product)
	if err != nil {
		s.logger.Log(c, product.Handle, mylog.SeverityWarn, "Error caching product %s: %s", product.Handle, err)
	}
}

func (s *service) cachedProducts(c context.Context, fetchError error) ([]Product, error) {
	products, err := s.productStore.List(c)
	if err != nil || len(products) == 0 {
		return nil, myerrors.NewUnavailableError(fmt.Errorf("catalog unavailable: %s", fetchError))
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].Handle < products[j].Handle
	})

	return products, nil
}

func (s *service) cachedProduct(c context.Context, handle string, fetchError error) (Product, error) {
	product, found, err := s.productStore.Get(c, handle)
	if err != nil || !found {
		return Product{}, myerrors.NewUnavailableError(fmt.Errorf("product %s unavailable: %s", handle, fetchError))
	}

	return product, nil
}
