package cartapi

import (
	"fmt"
	"net/http"
	"net/url"

	formcodec "github.com/go-playground/form/v4"

	"github.com/arcuswear/storefront/lib/myerrors"
)

// AddItemRequest is what a product page posts when the shopper hits "add to cart".
// Quantity is deliberately absent: an add always means one more unit.
type AddItemRequest struct {
	VariantUID    string  `form:"variantUid"`
	ProductUID    string  `form:"productUid"`
	ProductHandle string  `form:"productHandle"`
	ProductTitle  string  `form:"productTitle"`
	VariantTitle  string  `form:"variantTitle"`
	Size          string  `form:"size"`
	Price         float64 `form:"price"`
	ImageURL      string  `form:"image"`
}

func NewFromRequest(r *http.Request) (AddItemRequest, error) {
	err := r.ParseForm()
	if err != nil {
		return AddItemRequest{}, myerrors.NewInvalidInputError(err)
	}
	return NewFromValues(r.Form)
}

func NewFromValues(values url.Values) (AddItemRequest, error) {
	req := AddItemRequest{}
	err := formcodec.NewDecoder().Decode(&req, values)
	if err != nil {
		return req, myerrors.NewInvalidInputError(fmt.Errorf("error decoding form: %s", err))
	}

	if req.VariantUID == "" {
		return req, myerrors.NewInvalidInputError(fmt.Errorf("missing variantUid"))
	}
	if req.Price < 0 {
		return req, myerrors.NewInvalidInputError(fmt.Errorf("negative price"))
	}

	return req, nil
}

func (r AddItemRequest) ToForm() (url.Values, error) {
	values, err := formcodec.NewEncoder().Encode(r)
	if err != nil {
		return nil, fmt.Errorf("error encoding form: %s", err)
	}

	return values, nil
}
